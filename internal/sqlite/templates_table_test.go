package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

func sampleTemplate() *types.MetadataTemplate {
	return &types.MetadataTemplate{
		Scope:       types.ScopeEnterprise,
		TemplateKey: "contract",
		DisplayName: "Contract",
		Fields: []types.TemplateField{
			{ID: "f1", Type: types.FieldTypeString, Key: "customer", DisplayName: "Customer"},
			{ID: "f2", Type: types.FieldTypeEnum, Key: "status", DisplayName: "Status",
				Options: []types.EnumOption{{ID: "o1", Key: "open"}, {ID: "o2", Key: "closed"}}},
		},
	}
}

func TestTemplatesTable_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	templates, err := openStore(t).Templates()
	require.NoError(t, err)

	tpl := sampleTemplate()
	require.NoError(t, templates.Create(ctx, tpl))
	assert.NotEmpty(t, tpl.ID)
	assert.Equal(t, types.ItemTypeMetadataTemplate, tpl.Type)

	got, err := templates.Get(ctx, types.ScopeEnterprise, "contract")
	require.NoError(t, err)
	assert.Equal(t, tpl, got)

	_, err = templates.Get(ctx, types.ScopeGlobal, "contract")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTemplatesTable_DuplicateKey(t *testing.T) {
	ctx := context.Background()
	templates, err := openStore(t).Templates()
	require.NoError(t, err)

	require.NoError(t, templates.Create(ctx, sampleTemplate()))
	assert.ErrorIs(t, templates.Create(ctx, sampleTemplate()), ErrDuplicateKey)

	other := sampleTemplate()
	other.Scope = types.ScopeGlobal
	assert.NoError(t, templates.Create(ctx, other), "same key in another scope is allowed")
}

func TestTemplatesTable_EmptyFields(t *testing.T) {
	ctx := context.Background()
	templates, err := openStore(t).Templates()
	require.NoError(t, err)

	require.NoError(t, templates.Create(ctx, &types.MetadataTemplate{Scope: "enterprise", TemplateKey: "empty", DisplayName: "Empty"}))
	got, err := templates.Get(ctx, "enterprise", "empty")
	require.NoError(t, err)
	assert.NotNil(t, got.Fields)
	assert.Empty(t, got.Fields)
}

func TestTemplatesTable_Update(t *testing.T) {
	ctx := context.Background()
	templates, err := openStore(t).Templates()
	require.NoError(t, err)
	require.NoError(t, templates.Create(ctx, sampleTemplate()))

	updated, err := templates.Update(ctx, "enterprise", "contract", func(tpl *types.MetadataTemplate) error {
		tpl.DisplayName = "Contracts"
		tpl.Fields = tpl.Fields[1:]
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Contracts", updated.DisplayName)

	got, err := templates.Get(ctx, "enterprise", "contract")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	require.Len(t, got.Fields, 1)
	assert.Equal(t, "status", got.Fields[0].Key)
}

func TestTemplatesTable_UpdateFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	templates, err := openStore(t).Templates()
	require.NoError(t, err)
	require.NoError(t, templates.Create(ctx, sampleTemplate()))

	boom := errors.New("boom")
	_, err = templates.Update(ctx, "enterprise", "contract", func(tpl *types.MetadataTemplate) error {
		tpl.DisplayName = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := templates.Get(ctx, "enterprise", "contract")
	require.NoError(t, err)
	assert.Equal(t, "Contract", got.DisplayName)

	_, err = templates.Update(ctx, "enterprise", "missing", func(*types.MetadataTemplate) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTemplatesTable_Delete(t *testing.T) {
	ctx := context.Background()
	templates, err := openStore(t).Templates()
	require.NoError(t, err)
	require.NoError(t, templates.Create(ctx, sampleTemplate()))

	require.NoError(t, templates.Delete(ctx, "enterprise", "contract"))
	assert.ErrorIs(t, templates.Delete(ctx, "enterprise", "contract"), ErrNotFound)
}
