package types

import "encoding/json"

// OpCode names a metadata template update operation on the wire.
type OpCode string

// Template update op-codes.
const (
	OpAddEnumOption      OpCode = "addEnumOption"
	OpAddField           OpCode = "addField"
	OpEditField          OpCode = "editField"
	OpEditTemplate       OpCode = "editTemplate"
	OpReorderEnumOptions OpCode = "reorderEnumOptions"
	OpReorderFields      OpCode = "reorderFields"
	OpEditEnumOption     OpCode = "editEnumOption"
	OpRemoveEnumOption   OpCode = "removeEnumOption"
	OpRemoveField        OpCode = "removeField"
)

// TemplateOp is a single metadata template update operation. Each op-code has
// its own concrete type; all are values and encode themselves to their wire
// object.
type TemplateOp interface {
	Op() OpCode
	json.Marshaler
}

type keyData struct {
	Key string `json:"key"`
}

// AddEnumOption adds OptionKey to the options of enum field FieldKey.
type AddEnumOption struct {
	FieldKey  string
	OptionKey string
}

func (AddEnumOption) Op() OpCode { return OpAddEnumOption }

func (o AddEnumOption) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Op       OpCode  `json:"op"`
		FieldKey string  `json:"fieldKey"`
		Data     keyData `json:"data"`
	}{o.Op(), o.FieldKey, keyData{Key: o.OptionKey}})
}

// AddField appends a new field to the template.
type AddField struct {
	DisplayName string
	Key         string
	Hidden      bool
	Type        string
}

func (AddField) Op() OpCode { return OpAddField }

func (o AddField) MarshalJSON() ([]byte, error) {
	type data struct {
		DisplayName string `json:"displayName"`
		Key         string `json:"key"`
		Hidden      bool   `json:"hidden"`
		Type        string `json:"type"`
	}
	return json.Marshal(struct {
		Op   OpCode `json:"op"`
		Data data   `json:"data"`
	}{o.Op(), data{o.DisplayName, o.Key, o.Hidden, o.Type}})
}

// EditField changes attributes of field FieldKey. Nil attributes are left
// out of the request and stay unchanged on the server.
type EditField struct {
	FieldKey    string
	DisplayName *string
	Hidden      *bool
	Description *string
}

func (EditField) Op() OpCode { return OpEditField }

func (o EditField) MarshalJSON() ([]byte, error) {
	type data struct {
		DisplayName *string `json:"displayName,omitempty"`
		Hidden      *bool   `json:"hidden,omitempty"`
		Description *string `json:"description,omitempty"`
	}
	return json.Marshal(struct {
		Op       OpCode `json:"op"`
		FieldKey string `json:"fieldKey"`
		Data     data   `json:"data"`
	}{o.Op(), o.FieldKey, data{o.DisplayName, o.Hidden, o.Description}})
}

// EditTemplate changes template-level attributes.
type EditTemplate struct {
	DisplayName string
	Hidden      bool
}

func (EditTemplate) Op() OpCode { return OpEditTemplate }

func (o EditTemplate) MarshalJSON() ([]byte, error) {
	type data struct {
		DisplayName string `json:"displayName"`
		Hidden      bool   `json:"hidden"`
	}
	return json.Marshal(struct {
		Op   OpCode `json:"op"`
		Data data   `json:"data"`
	}{o.Op(), data{o.DisplayName, o.Hidden}})
}

// ReorderEnumOptions sets the full option order of enum field FieldKey.
type ReorderEnumOptions struct {
	FieldKey   string
	OptionKeys []string
}

func (ReorderEnumOptions) Op() OpCode { return OpReorderEnumOptions }

func (o ReorderEnumOptions) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Op             OpCode   `json:"op"`
		FieldKey       string   `json:"fieldKey"`
		EnumOptionKeys []string `json:"enumOptionKeys"`
	}{o.Op(), o.FieldKey, nonNil(o.OptionKeys)})
}

// ReorderFields sets the full field order of the template. The target list
// travels under "fieldKey".
type ReorderFields struct {
	FieldKeys []string
}

func (ReorderFields) Op() OpCode { return OpReorderFields }

func (o ReorderFields) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Op       OpCode   `json:"op"`
		FieldKey []string `json:"fieldKey"`
	}{o.Op(), nonNil(o.FieldKeys)})
}

// EditEnumOption renames option OptionKey of field FieldKey to NewKey.
type EditEnumOption struct {
	FieldKey  string
	OptionKey string
	NewKey    string
}

func (EditEnumOption) Op() OpCode { return OpEditEnumOption }

func (o EditEnumOption) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Op            OpCode  `json:"op"`
		FieldKey      string  `json:"fieldKey"`
		EnumOptionKey string  `json:"enumOptionKey"`
		Data          keyData `json:"data"`
	}{o.Op(), o.FieldKey, o.OptionKey, keyData{Key: o.NewKey}})
}

// RemoveEnumOption removes option OptionKey from field FieldKey.
type RemoveEnumOption struct {
	FieldKey  string
	OptionKey string
}

func (RemoveEnumOption) Op() OpCode { return OpRemoveEnumOption }

func (o RemoveEnumOption) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Op            OpCode `json:"op"`
		FieldKey      string `json:"fieldKey"`
		EnumOptionKey string `json:"enumOptionKey"`
	}{o.Op(), o.FieldKey, o.OptionKey})
}

// RemoveField removes field FieldKey from the template.
type RemoveField struct {
	FieldKey string
}

func (RemoveField) Op() OpCode { return OpRemoveField }

func (o RemoveField) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Op       OpCode `json:"op"`
		FieldKey string `json:"fieldKey"`
	}{o.Op(), o.FieldKey})
}

// nonNil keeps empty key lists encoding as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
