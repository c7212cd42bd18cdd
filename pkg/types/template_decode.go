package types

import (
	"encoding/json"
	"fmt"
)

// wireOp is the union of every operation's wire fields.
type wireOp struct {
	Op             OpCode          `json:"op"`
	FieldKey       json.RawMessage `json:"fieldKey"`
	EnumOptionKey  string          `json:"enumOptionKey"`
	EnumOptionKeys []string        `json:"enumOptionKeys"`
	Data           struct {
		Key         *string `json:"key"`
		DisplayName *string `json:"displayName"`
		Hidden      *bool   `json:"hidden"`
		Description *string `json:"description"`
		Type        string  `json:"type"`
	} `json:"data"`
}

// DecodeTemplateOps parses a JSON array of template operations, as produced
// by TemplateUpdate.MarshalJSON, back into typed operations. It returns
// ErrUnknownOp for an unrecognized op-code and ErrMalformedOp when a field
// has the wrong shape. Semantic checks are left to the server.
func DecodeTemplateOps(data []byte) ([]TemplateOp, error) {
	var raw []wireOp
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOp, err)
	}
	ops := make([]TemplateOp, 0, len(raw))
	for i, w := range raw {
		op, err := w.decode()
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (w wireOp) decode() (TemplateOp, error) {
	if w.Op == OpReorderFields {
		var keys []string
		if err := unmarshalOptional(w.FieldKey, &keys); err != nil {
			return nil, err
		}
		return ReorderFields{FieldKeys: nonNil(keys)}, nil
	}

	var fieldKey string
	if err := unmarshalOptional(w.FieldKey, &fieldKey); err != nil {
		return nil, err
	}
	d := w.Data

	switch w.Op {
	case OpAddEnumOption:
		return AddEnumOption{FieldKey: fieldKey, OptionKey: deref(d.Key)}, nil
	case OpAddField:
		return AddField{
			DisplayName: deref(d.DisplayName),
			Key:         deref(d.Key),
			Hidden:      d.Hidden != nil && *d.Hidden,
			Type:        d.Type,
		}, nil
	case OpEditField:
		return EditField{
			FieldKey:    fieldKey,
			DisplayName: d.DisplayName,
			Hidden:      d.Hidden,
			Description: d.Description,
		}, nil
	case OpEditTemplate:
		return EditTemplate{
			DisplayName: deref(d.DisplayName),
			Hidden:      d.Hidden != nil && *d.Hidden,
		}, nil
	case OpReorderEnumOptions:
		return ReorderEnumOptions{FieldKey: fieldKey, OptionKeys: nonNil(w.EnumOptionKeys)}, nil
	case OpEditEnumOption:
		return EditEnumOption{FieldKey: fieldKey, OptionKey: w.EnumOptionKey, NewKey: deref(d.Key)}, nil
	case OpRemoveEnumOption:
		return RemoveEnumOption{FieldKey: fieldKey, OptionKey: w.EnumOptionKey}, nil
	case OpRemoveField:
		return RemoveField{FieldKey: fieldKey}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownOp, w.Op)
	}
}

func unmarshalOptional(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: fieldKey: %v", ErrMalformedOp, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
