package types

import (
	"encoding/json"
	"slices"
)

// TemplateUpdate accumulates metadata template operations for a single update
// request. Operations are kept in the order they were added, which is the
// order the server applies them. Nothing is validated locally.
//
// The zero value is an empty update ready to use. A TemplateUpdate is not safe
// for concurrent use; callers appending from several goroutines must
// serialize access.
type TemplateUpdate struct {
	ops []TemplateOp
}

// NewTemplateUpdate returns an empty update.
func NewTemplateUpdate() *TemplateUpdate {
	return &TemplateUpdate{}
}

// Ops returns a copy of the accumulated operations in insertion order. The
// result is never nil.
func (u *TemplateUpdate) Ops() []TemplateOp {
	out := make([]TemplateOp, len(u.ops))
	copy(out, u.ops)
	return out
}

// Len returns the number of accumulated operations.
func (u *TemplateUpdate) Len() int {
	return len(u.ops)
}

// MarshalJSON encodes the update as the JSON array of its operations.
func (u *TemplateUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Ops())
}

// Append adds already-built operations, for example ones decoded with
// DecodeTemplateOps.
func (u *TemplateUpdate) Append(ops ...TemplateOp) {
	u.ops = append(u.ops, ops...)
}

// AddEnumOption adds optionKey to enum field fieldKey.
func (u *TemplateUpdate) AddEnumOption(fieldKey, optionKey string) {
	u.Append(AddEnumOption{FieldKey: fieldKey, OptionKey: optionKey})
}

// AddField adds a field. key is the new field's key.
func (u *TemplateUpdate) AddField(displayName, key string, hidden bool, fieldType string) {
	u.Append(AddField{DisplayName: displayName, Key: key, Hidden: hidden, Type: fieldType})
}

// EditFieldOptions carries the optional attributes of an edit field
// operation. Nil attributes are left unchanged.
type EditFieldOptions struct {
	DisplayName *string
	Hidden      *bool
	Description *string
}

// EditField changes the attributes set in opts on field fieldKey.
func (u *TemplateUpdate) EditField(fieldKey string, opts EditFieldOptions) {
	u.Append(EditField{
		FieldKey:    fieldKey,
		DisplayName: opts.DisplayName,
		Hidden:      opts.Hidden,
		Description: opts.Description,
	})
}

// EditTemplate changes the template's display name and visibility.
func (u *TemplateUpdate) EditTemplate(displayName string, hidden bool) {
	u.Append(EditTemplate{DisplayName: displayName, Hidden: hidden})
}

// ReorderEnumOptions sets the complete option order of enum field fieldKey.
func (u *TemplateUpdate) ReorderEnumOptions(fieldKey string, optionKeys []string) {
	u.Append(ReorderEnumOptions{FieldKey: fieldKey, OptionKeys: slices.Clone(optionKeys)})
}

// ReorderFields sets the complete field order of the template.
func (u *TemplateUpdate) ReorderFields(fieldKeys []string) {
	u.Append(ReorderFields{FieldKeys: slices.Clone(fieldKeys)})
}

// EditEnumOption renames option optionKey of field fieldKey to newKey.
func (u *TemplateUpdate) EditEnumOption(fieldKey, optionKey, newKey string) {
	u.Append(EditEnumOption{FieldKey: fieldKey, OptionKey: optionKey, NewKey: newKey})
}

// RemoveEnumOption removes option optionKey from field fieldKey.
func (u *TemplateUpdate) RemoveEnumOption(fieldKey, optionKey string) {
	u.Append(RemoveEnumOption{FieldKey: fieldKey, OptionKey: optionKey})
}

// RemoveField removes field fieldKey.
func (u *TemplateUpdate) RemoveField(fieldKey string) {
	u.Append(RemoveField{FieldKey: fieldKey})
}

// String returns a helper pointer for EditFieldOptions.
func String(s string) *string { return &s }

// Bool returns a helper pointer for EditFieldOptions.
func Bool(b bool) *bool { return &b }
