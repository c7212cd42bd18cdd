package types

// Metadata template scopes.
const (
	ScopeEnterprise = "enterprise"
	ScopeGlobal     = "global"
)

// Field types accepted by a template field.
const (
	FieldTypeString      = "string"
	FieldTypeFloat       = "float"
	FieldTypeDate        = "date"
	FieldTypeEnum        = "enum"
	FieldTypeMultiSelect = "multiSelect"
)

// validFieldTypes is the set of recognized field types.
var validFieldTypes = map[string]bool{
	FieldTypeString:      true,
	FieldTypeFloat:       true,
	FieldTypeDate:        true,
	FieldTypeEnum:        true,
	FieldTypeMultiSelect: true,
}

// ValidFieldType reports whether t is a recognized field type.
func ValidFieldType(t string) bool {
	return validFieldTypes[t]
}

// HasOptions reports whether fields of type t carry enum options.
func HasOptions(t string) bool {
	return t == FieldTypeEnum || t == FieldTypeMultiSelect
}

// MetadataTemplate is the decoded schema of a metadata template.
type MetadataTemplate struct {
	Type                   string          `json:"type,omitempty"`
	ID                     string          `json:"id,omitempty"`
	Scope                  string          `json:"scope"`
	TemplateKey            string          `json:"templateKey"`
	DisplayName            string          `json:"displayName"`
	Hidden                 bool            `json:"hidden"`
	CopyInstanceOnItemCopy bool            `json:"copyInstanceOnItemCopy"`
	Fields                 []TemplateField `json:"fields"`
}

// TemplateField is one field of a metadata template.
type TemplateField struct {
	ID          string       `json:"id,omitempty"`
	Type        string       `json:"type"`
	Key         string       `json:"key"`
	DisplayName string       `json:"displayName"`
	Description string       `json:"description,omitempty"`
	Hidden      bool         `json:"hidden"`
	Options     []EnumOption `json:"options,omitempty"`
}

// EnumOption is one allowed value of an enum or multiSelect field.
type EnumOption struct {
	ID  string `json:"id,omitempty"`
	Key string `json:"key"`
}

// TemplateCreate is the request body for creating a metadata template.
// An empty TemplateKey lets the API derive one from DisplayName.
type TemplateCreate struct {
	Scope                  string          `json:"scope"`
	TemplateKey            string          `json:"templateKey,omitempty"`
	DisplayName            string          `json:"displayName"`
	Hidden                 bool            `json:"hidden"`
	CopyInstanceOnItemCopy bool            `json:"copyInstanceOnItemCopy"`
	Fields                 []TemplateField `json:"fields"`
}
