package book

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/crudbook/internal/confirm"
	"github.com/dshills/crudbook/internal/record"
	"github.com/dshills/crudbook/internal/storage"
)

func sampleRecords() []record.Record {
	return []record.Record{
		{ID: "a1", Name: "Ada Lovelace", Contact: "0123456789", Email: "Ada@Example.com", Age: "36"},
		{ID: "b2", Name: "Bob Stone", Contact: "5550001111", Email: "bob@mail.org", Age: "52"},
		{ID: "c3", Name: "Cy Young", Contact: "5559993636", Email: "cy@example.com", Age: "19"},
	}
}

func positions(rows []Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Position
	}
	return out
}

func TestFilter(t *testing.T) {
	rs := sampleRecords()
	cases := []struct {
		term string
		want []int
	}{
		{"", []int{0, 1, 2}},
		{"ada", []int{0}},
		{"LOVELACE", []int{0}},
		{"example.COM", []int{0, 2}},
		{"555", []int{1, 2}},
		{"36", []int{0, 2}}, // age of Ada, contact of Cy
		{"52", []int{1}},
		{"zzz", []int{}},
	}
	for _, tc := range cases {
		got := positions(Filter(rs, tc.term))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Filter(%q) positions (-want +got):\n%s", tc.term, diff)
		}
	}
}

func TestFilter_NumbersAreViewRelative(t *testing.T) {
	rows := Filter(sampleRecords(), "555")
	if rows[0].Number != 1 || rows[1].Number != 2 {
		t.Errorf("row numbers = %d,%d; want 1,2", rows[0].Number, rows[1].Number)
	}
	if rows[0].Position != 1 || rows[1].Position != 2 {
		t.Errorf("positions = %d,%d; want 1,2", rows[0].Position, rows[1].Position)
	}
}

func TestFilter_DoesNotMutate(t *testing.T) {
	rs := sampleRecords()
	Filter(rs, "ada")
	if diff := cmp.Diff(sampleRecords(), rs); diff != "" {
		t.Errorf("Filter mutated input (-want +got):\n%s", diff)
	}
}

func TestEmptyMessage_DistinguishesSearch(t *testing.T) {
	b := openBook(t, storage.NewMemory(), confirm.Static(true))
	if got := b.EmptyMessage(); got != MsgNoItems {
		t.Errorf("EmptyMessage() = %q, want %q", got, MsgNoItems)
	}
	add(t, b, draft("Ada", "ada@example.com"))
	b.Search("nobody")
	if len(b.Rows()) != 0 {
		t.Fatalf("rows = %+v, want none", b.Rows())
	}
	if got := b.EmptyMessage(); got != MsgNoSearchResult {
		t.Errorf("EmptyMessage() = %q, want %q", got, MsgNoSearchResult)
	}
	if MsgNoSearchResult == MsgNoItems {
		t.Error("messages must differ")
	}
	if b.Len() != 1 {
		t.Errorf("search changed the list: Len() = %d", b.Len())
	}
}

func TestFiltered(t *testing.T) {
	b := openBook(t, storage.NewMemory(), confirm.Static(true))
	ada := add(t, b, draft("Ada", "ada@example.com"))
	add(t, b, draft("Bob", "bob@example.com"))
	b.Search("ADA")
	if diff := cmp.Diff([]record.Record{ada}, b.Filtered()); diff != "" {
		t.Errorf("Filtered() (-want +got):\n%s", diff)
	}
	if b.SearchTerm() != "ADA" {
		t.Errorf("SearchTerm() = %q", b.SearchTerm())
	}
}

func TestFind(t *testing.T) {
	b := openBook(t, storage.NewMemory(), confirm.Static(true))
	ada := add(t, b, draft("Ada", "ada@example.com")) // id-1
	bob := add(t, b, draft("Bob", "bob@example.com")) // id-2
	add(t, b, draft("Cy", "cy@example.com"))          // id-3

	cases := []struct {
		ref  string
		want record.Record
	}{
		{"1", ada},
		{" 2 ", bob},
		{"id-1", ada},
	}
	for _, tc := range cases {
		got, err := b.Find(tc.ref)
		if err != nil {
			t.Errorf("Find(%q): %v", tc.ref, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Find(%q) = %+v, want %+v", tc.ref, got, tc.want)
		}
	}

	for _, ref := range []string{"", "0", "4", "id-", "nope"} {
		if _, err := b.Find(ref); !errors.Is(err, ErrNoRecord) {
			t.Errorf("Find(%q) error = %v, want ErrNoRecord", ref, err)
		}
	}
}

func TestFindInView_UsesFilteredRowNumbers(t *testing.T) {
	b := openBook(t, storage.NewMemory(), confirm.Static(true))
	add(t, b, draft("Ada", "ada@example.com"))
	bob := add(t, b, draft("Bob", "bob@example.com"))

	b.Search("bob")
	got, err := b.FindInView("1")
	if err != nil {
		t.Fatalf("FindInView: %v", err)
	}
	if got != bob {
		t.Errorf("FindInView(1) = %+v, want %+v", got, bob)
	}
	if _, err := b.FindInView("2"); !errors.Is(err, ErrNoRecord) {
		t.Errorf("FindInView(2) = %v, want ErrNoRecord", err)
	}
	if got, err := b.FindInView(bob.ID); err != nil || got != bob {
		t.Errorf("FindInView(id) = %+v, %v", got, err)
	}
}
