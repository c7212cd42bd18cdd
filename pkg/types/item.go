package types

// Item types used in URLs and item references.
const (
	ItemTypeComment          = "comment"
	ItemTypeFile             = "file"
	ItemTypeMetadataTemplate = "metadata_template"
)

// Item references another API object by type and id, as in the "item" field
// of a comment creation request.
type Item struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// UserMini is the abbreviated user object embedded in other responses.
type UserMini struct {
	Type  string `json:"type,omitempty"`
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Login string `json:"login,omitempty"`
}
