package box

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// MetadataTemplate is a handle for a metadata template schema, addressed by
// scope and template key rather than by id.
type MetadataTemplate struct {
	Object
	Scope       string
	TemplateKey string
	Info        types.MetadataTemplate
}

func newMetadataTemplate(s types.Session, scope, templateKey string) *MetadataTemplate {
	o := newObject(s, types.ItemTypeMetadataTemplate, "", nil)
	o.url = typeURL(s, types.ItemTypeMetadataTemplate) + "/" + url.PathEscape(scope) + "/" + url.PathEscape(templateKey) + "/schema"
	return &MetadataTemplate{Object: o, Scope: scope, TemplateKey: templateKey}
}

// templateFromResponse builds a handle from a decoded template schema.
func templateFromResponse(s types.Session, raw map[string]any) (*MetadataTemplate, error) {
	var info types.MetadataTemplate
	if err := hydrate(raw, &info); err != nil {
		return nil, fmt.Errorf("decode metadata template: %w", err)
	}
	t := newMetadataTemplate(s, info.Scope, info.TemplateKey)
	t.id = info.ID
	t.raw = raw
	t.Info = info
	return t, nil
}

// Get fetches the template schema.
func (t *MetadataTemplate) Get(ctx context.Context) (*MetadataTemplate, error) {
	raw, err := t.GetInfo(ctx)
	if err != nil {
		return nil, err
	}
	return templateFromResponse(t.session, raw)
}

// Update submits the operations accumulated in u as one request. The server
// applies them in order; the refreshed schema is returned.
func (t *MetadataTemplate) Update(ctx context.Context, u *types.TemplateUpdate) (*MetadataTemplate, error) {
	if u == nil {
		u = types.NewTemplateUpdate()
	}
	raw, err := t.UpdateInfo(ctx, u)
	if err != nil {
		return nil, err
	}
	return templateFromResponse(t.session, raw)
}
