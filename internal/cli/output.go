package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// printer writes command results as indented JSON or as short
// human-readable lines.
type printer struct {
	w    io.Writer
	json bool
}

// newPrinter picks JSON output when forced or when w is not a terminal.
func newPrinter(w io.Writer, forceJSON bool) *printer {
	return &printer{w: w, json: forceJSON || !isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// comment prints one comment.
func (p *printer) comment(c types.Comment) error {
	if p.json {
		return p.encode(c)
	}
	kind := "comment"
	if c.IsReplyComment {
		kind = "reply"
	}
	fmt.Fprintf(p.w, "%s %s\n", kind, c.ID)
	if c.CreatedAt != nil {
		fmt.Fprintf(p.w, "  created:  %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if c.ModifiedAt != nil {
		fmt.Fprintf(p.w, "  modified: %s\n", c.ModifiedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(p.w, "  message:  %s\n", c.Text())
	return nil
}

// template prints a template schema with one line per field.
func (p *printer) template(t types.MetadataTemplate) error {
	if p.json {
		return p.encode(t)
	}
	hidden := ""
	if t.Hidden {
		hidden = " (hidden)"
	}
	fmt.Fprintf(p.w, "%s/%s  %s%s\n", t.Scope, t.TemplateKey, t.DisplayName, hidden)
	for _, f := range t.Fields {
		line := fmt.Sprintf("  %-20s %-12s %s", f.Key, f.Type, f.DisplayName)
		if len(f.Options) > 0 {
			keys := make([]string, len(f.Options))
			for i, o := range f.Options {
				keys[i] = o.Key
			}
			line += " [" + strings.Join(keys, ", ") + "]"
		}
		fmt.Fprintln(p.w, line)
	}
	return nil
}

// deleted reports a removed resource.
func (p *printer) deleted(kind, id string) error {
	if p.json {
		return p.encode(map[string]any{"type": kind, "id": id, "deleted": true})
	}
	fmt.Fprintf(p.w, "Deleted %s %s\n", kind, id)
	return nil
}
