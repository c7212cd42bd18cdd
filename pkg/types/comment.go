package types

import "time"

// Comment is the decoded form of a comment object.
type Comment struct {
	Type           string     `json:"type"`
	ID             string     `json:"id"`
	Message        string     `json:"message,omitempty"`
	TaggedMessage  string     `json:"tagged_message,omitempty"`
	IsReplyComment bool       `json:"is_reply_comment"`
	CreatedBy      *UserMini  `json:"created_by,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	ModifiedAt     *time.Time `json:"modified_at,omitempty"`
	Item           *Item      `json:"item,omitempty"`
}

// Text returns the tagged message when present, otherwise the plain message.
func (c Comment) Text() string {
	if c.TaggedMessage != "" {
		return c.TaggedMessage
	}
	return c.Message
}
