package box

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// Comment is a handle for a comment resource. Info holds the decoded
// response the handle was built from; handles are not modified after
// construction, and calls that return a comment return a new handle.
type Comment struct {
	Object
	Info types.Comment
}

func newComment(s types.Session, id string) *Comment {
	return &Comment{Object: newObject(s, types.ItemTypeComment, id, nil)}
}

// commentFromResponse builds a handle for id from a decoded response.
func commentFromResponse(s types.Session, id string, raw map[string]any) (*Comment, error) {
	c := newComment(s, id)
	c.raw = raw
	if err := hydrate(raw, &c.Info); err != nil {
		return nil, fmt.Errorf("decode comment %s: %w", id, err)
	}
	return c, nil
}

// createComment posts a new comment on item and returns its handle.
func createComment(ctx context.Context, s types.Session, item types.Item, message string) (*Comment, error) {
	data := types.MessageParams(message)
	data["item"] = item

	var raw map[string]any
	if err := s.Post(ctx, typeURL(s, types.ItemTypeComment), data, &raw); err != nil {
		return nil, err
	}
	id, _ := raw["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("create comment on %s %s: %w", item.Type, item.ID, types.ErrMissingID)
	}
	return commentFromResponse(s, id, raw)
}

// Reply posts message as a reply to this comment and returns the new
// comment. The receiver is left untouched.
func (c *Comment) Reply(ctx context.Context, message string) (*Comment, error) {
	return createComment(ctx, c.session, types.Item{Type: types.ItemTypeComment, ID: c.ID()}, message)
}

// Edit replaces the comment's message and returns a handle holding the
// updated comment. The id does not change.
func (c *Comment) Edit(ctx context.Context, message string) (*Comment, error) {
	raw, err := c.UpdateInfo(ctx, types.MessageParams(message))
	if err != nil {
		return nil, err
	}
	return commentFromResponse(c.session, c.ID(), raw)
}

// Get fetches the comment, optionally limited to fields.
func (c *Comment) Get(ctx context.Context, fields ...string) (*Comment, error) {
	raw, err := c.GetInfo(ctx, fields...)
	if err != nil {
		return nil, err
	}
	return commentFromResponse(c.session, c.ID(), raw)
}
