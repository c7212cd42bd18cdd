package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// CommentsTable stores comments. A comment whose item is another comment is a
// reply.
type CommentsTable struct {
	store *Store
}

const selectComment = "SELECT comment_id, message, tagged, item_type, item_id, created_at, modified_at FROM comments"

// Create stores a new comment on item and returns it with a generated id and
// timestamps.
func (t *CommentsTable) Create(ctx context.Context, msg types.Message, item types.Item) (*types.Comment, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, ErrStoreClosed
	}

	id := NewID()
	ts := formatTime(now())
	_, err := t.store.db.ExecContext(ctx,
		"INSERT INTO comments (comment_id, message, tagged, item_type, item_id, created_at, modified_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, msg.Text, msg.Tagged, item.Type, item.ID, ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}
	return t.get(ctx, id)
}

// Get returns the comment with the given id or ErrNotFound.
func (t *CommentsTable) Get(ctx context.Context, id string) (*types.Comment, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, ErrStoreClosed
	}
	return t.get(ctx, id)
}

// UpdateMessage replaces the message of comment id and returns the result.
func (t *CommentsTable) UpdateMessage(ctx context.Context, id string, msg types.Message) (*types.Comment, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, ErrStoreClosed
	}

	res, err := t.store.db.ExecContext(ctx,
		"UPDATE comments SET message = ?, tagged = ?, modified_at = ? WHERE comment_id = ?",
		msg.Text, msg.Tagged, formatTime(now()), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating comment %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return t.get(ctx, id)
}

// Delete removes comment id or returns ErrNotFound.
func (t *CommentsTable) Delete(ctx context.Context, id string) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return ErrStoreClosed
	}

	res, err := t.store.db.ExecContext(ctx, "DELETE FROM comments WHERE comment_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comment %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// get reads a comment. The caller must hold the store read lock.
func (t *CommentsTable) get(ctx context.Context, id string) (*types.Comment, error) {
	row := t.store.db.QueryRowContext(ctx, selectComment+" WHERE comment_id = ?", id)
	c, err := hydrateComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting comment %s: %w", id, err)
	}
	return c, nil
}

// hydrateComment converts a row into a *types.Comment.
func hydrateComment(row *sql.Row) (*types.Comment, error) {
	var (
		c                     types.Comment
		text                  string
		tagged                bool
		item                  types.Item
		createdAt, modifiedAt string
	)
	if err := row.Scan(&c.ID, &text, &tagged, &item.Type, &item.ID, &createdAt, &modifiedAt); err != nil {
		return nil, err
	}
	c.Type = types.ItemTypeComment
	c.Message = text
	if tagged {
		c.TaggedMessage = text
	}
	c.IsReplyComment = item.Type == types.ItemTypeComment
	c.Item = &item

	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	modified, err := parseTime(modifiedAt)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = &created
	c.ModifiedAt = &modified
	return &c, nil
}
