package render

import (
	"fmt"

	"github.com/dshills/crudbook/internal/book"
)

// Headers are the table columns in display order.
var Headers = []string{"Index No", "Name", "Contact", "Email", "Age"}

// View is what gets rendered: the visible rows, or the placeholder message
// when there are none.
type View struct {
	Search string
	Rows   []book.Row
	Empty  string
}

// FromBook captures the current table view of b.
func FromBook(b *book.Book) *View {
	return &View{
		Search: b.SearchTerm(),
		Rows:   b.Rows(),
		Empty:  b.EmptyMessage(),
	}
}

// Renderer formats a View into bytes for output.
type Renderer interface {
	Render(v *View) ([]byte, error)
}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "table" (default), "json", "md".
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "table", "":
		return &tableRenderer{}, nil
	case "json":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are table, json, md", format)
	}
}
