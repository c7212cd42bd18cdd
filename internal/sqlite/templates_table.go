package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// TemplatesTable stores metadata template schemas keyed by scope and
// template key. Fields are kept as a JSON column.
type TemplatesTable struct {
	store *Store
}

const selectTemplate = "SELECT template_id, scope, template_key, display_name, hidden, copy_instance_on_item_copy, fields FROM metadata_templates"

// Create stores tpl, assigning its id. It returns ErrDuplicateKey when the
// scope already has a template with the same key.
func (t *TemplatesTable) Create(ctx context.Context, tpl *types.MetadataTemplate) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return ErrStoreClosed
	}

	tpl.ID = NewID()
	tpl.Type = types.ItemTypeMetadataTemplate
	fields, err := encodeFields(tpl.Fields)
	if err != nil {
		return err
	}
	_, err = t.store.db.ExecContext(ctx,
		"INSERT INTO metadata_templates (template_id, scope, template_key, display_name, hidden, copy_instance_on_item_copy, fields) VALUES (?, ?, ?, ?, ?, ?, ?)",
		tpl.ID, tpl.Scope, tpl.TemplateKey, tpl.DisplayName, tpl.Hidden, tpl.CopyInstanceOnItemCopy, fields,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateKey
		}
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

// Get returns the template for scope and key or ErrNotFound.
func (t *TemplatesTable) Get(ctx context.Context, scope, key string) (*types.MetadataTemplate, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, ErrStoreClosed
	}
	return getTemplate(ctx, t.store.db, scope, key)
}

// Update loads the template, passes it to mutate, and writes the result back
// in one transaction. When mutate fails nothing is written and its error is
// returned unchanged.
func (t *TemplatesTable) Update(ctx context.Context, scope, key string, mutate func(*types.MetadataTemplate) error) (*types.MetadataTemplate, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, ErrStoreClosed
	}

	tx, err := t.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	tpl, err := getTemplate(ctx, tx, scope, key)
	if err != nil {
		return nil, err
	}
	if err := mutate(tpl); err != nil {
		return nil, err
	}

	fields, err := encodeFields(tpl.Fields)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE metadata_templates SET display_name = ?, hidden = ?, copy_instance_on_item_copy = ?, fields = ? WHERE template_id = ?",
		tpl.DisplayName, tpl.Hidden, tpl.CopyInstanceOnItemCopy, fields, tpl.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating template: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing template: %w", err)
	}
	return tpl, nil
}

// Delete removes the template for scope and key or returns ErrNotFound.
func (t *TemplatesTable) Delete(ctx context.Context, scope, key string) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return ErrStoreClosed
	}

	res, err := t.store.db.ExecContext(ctx,
		"DELETE FROM metadata_templates WHERE scope = ? AND template_key = ?", scope, key,
	)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getTemplate(ctx context.Context, q queryRower, scope, key string) (*types.MetadataTemplate, error) {
	row := q.QueryRowContext(ctx, selectTemplate+" WHERE scope = ? AND template_key = ?", scope, key)
	tpl, err := hydrateTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting template %s/%s: %w", scope, key, err)
	}
	return tpl, nil
}

// hydrateTemplate converts a row into a *types.MetadataTemplate.
func hydrateTemplate(row *sql.Row) (*types.MetadataTemplate, error) {
	var (
		tpl    types.MetadataTemplate
		fields string
	)
	if err := row.Scan(&tpl.ID, &tpl.Scope, &tpl.TemplateKey, &tpl.DisplayName, &tpl.Hidden, &tpl.CopyInstanceOnItemCopy, &fields); err != nil {
		return nil, err
	}
	tpl.Type = types.ItemTypeMetadataTemplate
	if err := json.NewDecoder(strings.NewReader(fields)).Decode(&tpl.Fields); err != nil {
		return nil, fmt.Errorf("decoding fields: %w", err)
	}
	if tpl.Fields == nil {
		tpl.Fields = []types.TemplateField{}
	}
	return &tpl, nil
}

func encodeFields(fields []types.TemplateField) (string, error) {
	if fields == nil {
		fields = []types.TemplateField{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encoding fields: %w", err)
	}
	return string(b), nil
}
