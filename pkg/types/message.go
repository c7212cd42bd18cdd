package types

import (
	"encoding/json"
	"strings"
)

// MentionMarker opens an @-mention inside a comment message, as in
// "@[123:Bob]". A message containing it is sent as a tagged message.
const MentionMarker = "@["

// Request keys for the two message variants.
const (
	ParamMessage       = "message"
	ParamTaggedMessage = "tagged_message"
)

// Message is a comment body in one of its two wire variants: a plain message
// or a tagged message carrying @-mentions.
type Message struct {
	Text   string
	Tagged bool
}

// NewMessage classifies text. It is tagged when it contains MentionMarker
// anywhere; the check is a case-sensitive substring match and the mention
// syntax itself is not validated.
func NewMessage(text string) Message {
	return Message{Text: text, Tagged: strings.Contains(text, MentionMarker)}
}

// Key returns the request key for m.
func (m Message) Key() string {
	if m.Tagged {
		return ParamTaggedMessage
	}
	return ParamMessage
}

// Params returns the request fields for m: a map with exactly one entry.
func (m Message) Params() map[string]any {
	return map[string]any{m.Key(): m.Text}
}

// MarshalJSON encodes m as its single-entry request object.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Params())
}

// MessageParams classifies text and returns its request fields. It is the
// shared body builder for creating and editing comments.
func MessageParams(text string) map[string]any {
	return NewMessage(text).Params()
}
