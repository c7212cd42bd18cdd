package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageParams(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]any
	}{
		{
			name: "plain text uses message",
			text: "hello",
			want: map[string]any{"message": "hello"},
		},
		{
			name: "mention marker uses tagged_message",
			text: "hi @[123:Bob]",
			want: map[string]any{"tagged_message": "hi @[123:Bob]"},
		},
		{
			name: "unterminated mention is still tagged",
			text: "@[",
			want: map[string]any{"tagged_message": "@["},
		},
		{
			name: "at sign without bracket is plain",
			text: "mail me @ home [soon]",
			want: map[string]any{"message": "mail me @ home [soon]"},
		},
		{
			name: "empty string is plain",
			text: "",
			want: map[string]any{"message": ""},
		},
		{
			name: "whitespace is plain",
			text: "   \n",
			want: map[string]any{"message": "   \n"},
		},
		{
			name: "reversed marker is plain",
			text: "[@ nobody",
			want: map[string]any{"message": "[@ nobody"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MessageParams(tt.text))
		})
	}
}

func TestNewMessage(t *testing.T) {
	m := NewMessage("ping @[42:Ann] please")
	assert.True(t, m.Tagged)
	assert.Equal(t, ParamTaggedMessage, m.Key())

	m = NewMessage("ping Ann")
	assert.False(t, m.Tagged)
	assert.Equal(t, ParamMessage, m.Key())
}

func TestMessageMarshalJSON(t *testing.T) {
	b, err := json.Marshal(NewMessage("hi @[1:A]"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tagged_message":"hi @[1:A]"}`, string(b))

	b, err = json.Marshal(NewMessage(""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":""}`, string(b))
}

func TestCommentText(t *testing.T) {
	assert.Equal(t, "plain", Comment{Message: "plain"}.Text())
	assert.Equal(t, "@[1:A] hi", Comment{Message: "A hi", TaggedMessage: "@[1:A] hi"}.Text())
}
