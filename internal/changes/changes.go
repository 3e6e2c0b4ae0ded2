// Package changes describes how an edited record differs from its previous
// version.
package changes

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/crudbook/internal/record"
	"github.com/dshills/crudbook/internal/redact"
)

// Change is one modified field.
type Change struct {
	Field  record.Field
	Before string
	After  string
	// Inline marks deletions as [-text-] and insertions as {+text+}.
	Inline string
}

// Describe returns the fields that differ between before and after, in form
// order. Passwords are reported as changed without revealing either value.
func Describe(before, after record.Record) []Change {
	b, a := record.FromRecord(before), record.FromRecord(after)
	dmp := diffmatchpatch.New()

	var out []Change
	for _, f := range record.Fields {
		old, cur := b.Get(f), a.Get(f)
		if old == cur {
			continue
		}
		if f == record.FieldPassword {
			out = append(out, Change{
				Field:  f,
				Before: redact.Password(old),
				After:  redact.Password(cur),
				Inline: "(changed)",
			})
			continue
		}
		diffs := dmp.DiffMain(old, cur, false)
		diffs = dmp.DiffCleanupSemantic(diffs)
		out = append(out, Change{
			Field:  f,
			Before: old,
			After:  cur,
			Inline: inline(diffs),
		})
	}
	return out
}

func inline(diffs []diffmatchpatch.Diff) string {
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		}
	}
	return sb.String()
}

// Write prints one line per change to w. Nothing is written when there are
// no changes.
func Write(w io.Writer, cs []Change) error {
	for _, c := range cs {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", c.Field.Label(), c.Inline); err != nil {
			return err
		}
	}
	return nil
}
