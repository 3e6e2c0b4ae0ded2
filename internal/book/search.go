package book

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/crudbook/internal/record"
)

// Row is one line of the record table.
type Row struct {
	// Number is the 1-based row number shown in the table.
	Number int
	// Position is the zero-based index in the full list.
	Position int
	Record   record.Record
}

// Matches reports whether r matches term: name and email are compared
// case-insensitively, contact and age as-is. An empty term matches all.
func Matches(r record.Record, term string) bool {
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(r.Name), lower) ||
		strings.Contains(r.Contact, term) ||
		strings.Contains(strings.ToLower(r.Email), lower) ||
		strings.Contains(r.Age, term)
}

// Filter returns the rows of records matching term, in list order.
// records is never modified.
func Filter(records []record.Record, term string) []Row {
	rows := make([]Row, 0, len(records))
	for i, r := range records {
		if !Matches(r, term) {
			continue
		}
		rows = append(rows, Row{Number: len(rows) + 1, Position: i, Record: r})
	}
	return rows
}

// Search sets the current search term.
func (b *Book) Search(term string) {
	b.search = term
}

// SearchTerm returns the current search term.
func (b *Book) SearchTerm() string { return b.search }

// Rows returns the table rows for the current search term.
func (b *Book) Rows() []Row {
	return Filter(b.records, b.search)
}

// Filtered returns the records visible under the current search term.
func (b *Book) Filtered() []record.Record {
	rows := b.Rows()
	out := make([]record.Record, len(rows))
	for i, row := range rows {
		out[i] = row.Record
	}
	return out
}

// EmptyMessage returns the placeholder shown when the table has no rows.
func (b *Book) EmptyMessage() string {
	return EmptyMessage(b.search)
}

// EmptyMessage returns the placeholder for an empty table under term.
func EmptyMessage(term string) string {
	if term != "" {
		return MsgNoSearchResult
	}
	return MsgNoItems
}

// Find resolves a user reference to a record: either a 1-based row number in
// the full list, a full record ID, or a unique ID prefix.
func (b *Book) Find(ref string) (record.Record, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return record.Record{}, fmt.Errorf("%w: empty reference", ErrNoRecord)
	}
	if n, err := strconv.Atoi(ref); err == nil {
		return b.At(n - 1)
	}
	if r, err := b.Get(ref); err == nil {
		return r, nil
	}

	var found []record.Record
	for _, r := range b.records {
		if strings.HasPrefix(r.ID, ref) {
			found = append(found, r)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return record.Record{}, fmt.Errorf("%w: %q", ErrNoRecord, ref)
	default:
		return record.Record{}, fmt.Errorf("%w: %q matches %d records", ErrNoRecord, ref, len(found))
	}
}

// FindInView is like Find, but a row number refers to the current filtered
// view rather than the full list.
func (b *Book) FindInView(ref string) (record.Record, error) {
	n, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil {
		return b.Find(ref)
	}
	rows := b.Rows()
	if n < 1 || n > len(rows) {
		return record.Record{}, fmt.Errorf("%w: row %d (showing %d)", ErrNoRecord, n, len(rows))
	}
	return rows[n-1].Record, nil
}
