package sandbox

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/boxsdk/internal/sqlite"
	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// Template operation errors. They surface to clients as 400 responses.
var (
	ErrFieldNotFound    = errors.New("field not found")
	ErrOptionNotFound   = errors.New("enum option not found")
	ErrDuplicateField   = errors.New("field key already exists")
	ErrDuplicateOption  = errors.New("enum option key already exists")
	ErrNotEnumField     = errors.New("field does not take enum options")
	ErrInvalidFieldType = errors.New("invalid field type")
	ErrInvalidReorder   = errors.New("reorder list must name every existing key exactly once")
	ErrEmptyKey         = errors.New("key must not be empty")
)

// ApplyOps applies ops to tpl in order. It stops at the first failing
// operation and reports its index; tpl may then be partially modified, so
// callers apply ops to a copy they can discard.
func ApplyOps(tpl *types.MetadataTemplate, ops []types.TemplateOp) error {
	for i, op := range ops {
		if err := applyOp(tpl, op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Op(), err)
		}
	}
	return nil
}

func applyOp(tpl *types.MetadataTemplate, op types.TemplateOp) error {
	switch o := op.(type) {
	case types.AddEnumOption:
		f, err := enumField(tpl, o.FieldKey)
		if err != nil {
			return err
		}
		if o.OptionKey == "" {
			return ErrEmptyKey
		}
		if optionIndex(f, o.OptionKey) >= 0 {
			return fmt.Errorf("%w: %q", ErrDuplicateOption, o.OptionKey)
		}
		f.Options = append(f.Options, types.EnumOption{ID: sqlite.NewID(), Key: o.OptionKey})

	case types.AddField:
		if o.Key == "" {
			return ErrEmptyKey
		}
		if !types.ValidFieldType(o.Type) {
			return fmt.Errorf("%w: %q", ErrInvalidFieldType, o.Type)
		}
		if fieldIndex(tpl, o.Key) >= 0 {
			return fmt.Errorf("%w: %q", ErrDuplicateField, o.Key)
		}
		tpl.Fields = append(tpl.Fields, types.TemplateField{
			ID:          sqlite.NewID(),
			Type:        o.Type,
			Key:         o.Key,
			DisplayName: o.DisplayName,
			Hidden:      o.Hidden,
		})

	case types.EditField:
		f, err := field(tpl, o.FieldKey)
		if err != nil {
			return err
		}
		if o.DisplayName != nil {
			f.DisplayName = *o.DisplayName
		}
		if o.Hidden != nil {
			f.Hidden = *o.Hidden
		}
		if o.Description != nil {
			f.Description = *o.Description
		}

	case types.EditTemplate:
		tpl.DisplayName = o.DisplayName
		tpl.Hidden = o.Hidden

	case types.ReorderEnumOptions:
		f, err := enumField(tpl, o.FieldKey)
		if err != nil {
			return err
		}
		reordered, err := reorder(f.Options, func(e types.EnumOption) string { return e.Key }, o.OptionKeys)
		if err != nil {
			return err
		}
		f.Options = reordered

	case types.ReorderFields:
		reordered, err := reorder(tpl.Fields, func(f types.TemplateField) string { return f.Key }, o.FieldKeys)
		if err != nil {
			return err
		}
		tpl.Fields = reordered

	case types.EditEnumOption:
		f, err := enumField(tpl, o.FieldKey)
		if err != nil {
			return err
		}
		i := optionIndex(f, o.OptionKey)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrOptionNotFound, o.OptionKey)
		}
		if o.NewKey == "" {
			return ErrEmptyKey
		}
		if j := optionIndex(f, o.NewKey); j >= 0 && j != i {
			return fmt.Errorf("%w: %q", ErrDuplicateOption, o.NewKey)
		}
		f.Options[i].Key = o.NewKey

	case types.RemoveEnumOption:
		f, err := enumField(tpl, o.FieldKey)
		if err != nil {
			return err
		}
		i := optionIndex(f, o.OptionKey)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrOptionNotFound, o.OptionKey)
		}
		f.Options = slices.Delete(f.Options, i, i+1)

	case types.RemoveField:
		i := fieldIndex(tpl, o.FieldKey)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrFieldNotFound, o.FieldKey)
		}
		tpl.Fields = slices.Delete(tpl.Fields, i, i+1)

	default:
		return fmt.Errorf("%w %q", types.ErrUnknownOp, op.Op())
	}
	return nil
}

func fieldIndex(tpl *types.MetadataTemplate, key string) int {
	return slices.IndexFunc(tpl.Fields, func(f types.TemplateField) bool { return f.Key == key })
}

func optionIndex(f *types.TemplateField, key string) int {
	return slices.IndexFunc(f.Options, func(o types.EnumOption) bool { return o.Key == key })
}

// field returns a pointer into tpl.Fields for key.
func field(tpl *types.MetadataTemplate, key string) (*types.TemplateField, error) {
	i := fieldIndex(tpl, key)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, key)
	}
	return &tpl.Fields[i], nil
}

func enumField(tpl *types.MetadataTemplate, key string) (*types.TemplateField, error) {
	f, err := field(tpl, key)
	if err != nil {
		return nil, err
	}
	if !types.HasOptions(f.Type) {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotEnumField, key, f.Type)
	}
	return f, nil
}

// reorder returns items sorted to match order, which must be a permutation
// of the items' keys.
func reorder[T any](items []T, key func(T) string, order []string) ([]T, error) {
	if len(order) != len(items) {
		return nil, ErrInvalidReorder
	}
	byKey := make(map[string]T, len(items))
	for _, it := range items {
		byKey[key(it)] = it
	}
	out := make([]T, 0, len(order))
	for _, k := range order {
		it, ok := byKey[k]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidReorder, k)
		}
		delete(byKey, k)
		out = append(out, it)
	}
	return out, nil
}
