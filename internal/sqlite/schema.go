package sqlite

// Schema DDL, applied in order on every Open.
const (
	createComments = `CREATE TABLE IF NOT EXISTS comments (
    comment_id TEXT PRIMARY KEY,
    message TEXT NOT NULL,
    tagged INTEGER NOT NULL,
    item_type TEXT NOT NULL,
    item_id TEXT NOT NULL,
    created_at TEXT NOT NULL,
    modified_at TEXT NOT NULL
);`

	createCommentsItemIndex = `CREATE INDEX IF NOT EXISTS idx_comments_item ON comments (item_type, item_id);`

	createTemplates = `CREATE TABLE IF NOT EXISTS metadata_templates (
    template_id TEXT PRIMARY KEY,
    scope TEXT NOT NULL,
    template_key TEXT NOT NULL,
    display_name TEXT NOT NULL,
    hidden INTEGER NOT NULL,
    copy_instance_on_item_copy INTEGER NOT NULL,
    fields TEXT NOT NULL,
    UNIQUE (scope, template_key)
);`
)

var schema = []string{
	createComments,
	createCommentsItemIndex,
	createTemplates,
}
