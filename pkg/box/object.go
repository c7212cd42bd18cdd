package box

import (
	"context"
	"encoding/json"
	"maps"
	"net/url"
	"strings"

	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// Object is the generic base of every resource handle. It knows the
// resource's item type, id, and URL, and offers the get, update, and delete
// calls shared by all resources.
type Object struct {
	session  types.Session
	itemType string
	id       string
	url      string
	raw      map[string]any
}

// fieldsQuery is the query for partial responses.
type fieldsQuery struct {
	Fields string `url:"fields,omitempty"`
}

func newObject(s types.Session, itemType, id string, raw map[string]any) Object {
	return Object{
		session:  s,
		itemType: itemType,
		id:       id,
		url:      typeURL(s, itemType) + "/" + url.PathEscape(id),
		raw:      raw,
	}
}

// typeURL returns the collection URL for itemType, e.g. <api>/comments.
func typeURL(s types.Session, itemType string) string {
	return s.APIURL() + "/" + itemType + "s"
}

// ItemType returns the resource type, e.g. "comment".
func (o *Object) ItemType() string { return o.itemType }

// ID returns the resource id.
func (o *Object) ID() string { return o.id }

// TypeURL returns the collection URL for this resource type.
func (o *Object) TypeURL() string { return typeURL(o.session, o.itemType) }

// URL returns this resource's URL with extra path segments appended.
func (o *Object) URL(extra ...string) string {
	u := o.url
	for _, seg := range extra {
		u += "/" + url.PathEscape(seg)
	}
	return u
}

// Raw returns a copy of the response this handle was built from. It is nil
// for handles created from an id alone.
func (o *Object) Raw() map[string]any {
	return maps.Clone(o.raw)
}

// GetInfo fetches the resource. Non-empty fields limit the response to the
// named attributes.
func (o *Object) GetInfo(ctx context.Context, fields ...string) (map[string]any, error) {
	var out map[string]any
	q := fieldsQuery{Fields: strings.Join(fields, ",")}
	if err := o.session.Get(ctx, o.URL(), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateInfo sends data as a PUT to the resource and returns the updated
// representation.
func (o *Object) UpdateInfo(ctx context.Context, data any) (map[string]any, error) {
	var out map[string]any
	if err := o.session.Put(ctx, o.URL(), data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the resource.
func (o *Object) Delete(ctx context.Context) error {
	return o.session.Delete(ctx, o.URL())
}

// hydrate decodes a raw response into a typed value.
func hydrate(raw map[string]any, v any) error {
	if raw == nil {
		return nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

