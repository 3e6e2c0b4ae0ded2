// Package book holds the application state of the record manager: the
// record list, the form draft, the record under edit and the search term.
// Every accepted mutation is written to storage before it becomes visible.
package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/crudbook/internal/banner"
	"github.com/dshills/crudbook/internal/confirm"
	"github.com/dshills/crudbook/internal/record"
	"github.com/dshills/crudbook/internal/storage"
	"github.com/dshills/crudbook/internal/validate"
)

// User-facing messages.
const (
	MsgSaved            = "Item saved successfully!"
	MsgConfirmDelete    = "Are you sure you want to delete this item?"
	MsgConfirmDeleteAll = "Are you sure you want to delete all items?"
	MsgNoItems          = "No Items to Display!! please Add first"
	MsgNoSearchResult   = "No search Found"
)

var (
	// ErrInvalid is wrapped by the error Submit returns when validation fails.
	ErrInvalid = errors.New("record is invalid")
	// ErrDeclined is returned when the user does not confirm a deletion.
	ErrDeclined = errors.New("operation declined")
	// ErrNoRecord is returned when an index or ID does not match a record.
	ErrNoRecord = errors.New("no such record")
)

// ValidationError carries the field errors of a rejected submit.
type ValidationError struct {
	Errors record.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalid, e.Errors.Error())
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Saved describes the outcome of a successful Submit.
type Saved struct {
	Record record.Record
	// Previous is the replaced record when Updated is true.
	Previous record.Record
	Updated  bool
}

// Book is the record manager state. It is not safe for concurrent use; all
// calls are expected from a single interaction loop.
type Book struct {
	store          storage.Store
	key            string
	confirmer      confirm.Confirmer
	logger         *zap.Logger
	bannerDuration time.Duration
	newID          func() string

	records   []record.Record
	draft     record.Draft
	editingID string
	errs      record.Errors
	search    string
	banner    banner.Banner

	loadWarning error
}

// Option configures a Book.
type Option func(*Book)

// WithKey sets the storage key the list is kept under.
func WithKey(key string) Option {
	return func(b *Book) { b.key = key }
}

// WithConfirmer sets the capability asked before deletions.
func WithConfirmer(c confirm.Confirmer) Option {
	return func(b *Book) { b.confirmer = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Book) { b.logger = l }
}

// WithBannerDuration sets how long the success banner stays visible.
func WithBannerDuration(d time.Duration) Option {
	return func(b *Book) { b.bannerDuration = d }
}

// WithIDGenerator replaces the record ID generator.
func WithIDGenerator(f func() string) Option {
	return func(b *Book) { b.newID = f }
}

// Open loads the record list from store. Unparsable stored data does not
// fail Open: the book starts empty and LoadWarning reports the condition.
// Records stored without an ID (or with a duplicate one) get a fresh ID and
// the list is written back.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*Book, error) {
	b := &Book{
		store:          store,
		key:            storage.DefaultKey,
		confirmer:      confirm.Static(false),
		logger:         zap.NewNop(),
		bannerDuration: banner.DefaultDuration,
		newID:          record.NewID,
		errs:           record.Errors{},
	}
	for _, opt := range opts {
		opt(b)
	}

	records, err := storage.LoadRecords(ctx, store, b.key)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		b.loadWarning = err
		b.logger.Warn("stored records are malformed, starting with an empty list",
			zap.String("key", b.key), zap.Error(err))
	case err != nil:
		return nil, fmt.Errorf("loading records: %w", err)
	}
	b.records = records

	if b.assignMissingIDs() {
		if err := b.persist(ctx, b.records); err != nil {
			return nil, fmt.Errorf("storing assigned record IDs: %w", err)
		}
		b.logger.Info("assigned IDs to stored records", zap.Int("count", len(b.records)))
	}

	b.logger.Debug("book opened", zap.String("key", b.key), zap.Int("records", len(b.records)))
	return b, nil
}

func (b *Book) assignMissingIDs() bool {
	seen := make(map[string]bool, len(b.records))
	changed := false
	for i := range b.records {
		id := b.records[i].ID
		if id == "" || seen[id] {
			id = b.newID()
			b.records[i].ID = id
			changed = true
		}
		seen[id] = true
	}
	return changed
}

// LoadWarning returns the decode error hit while opening, if any.
func (b *Book) LoadWarning() error { return b.loadWarning }

// Close stops the banner timer.
func (b *Book) Close() {
	b.banner.Stop()
}

// Records returns a copy of the full list.
func (b *Book) Records() []record.Record {
	return append([]record.Record(nil), b.records...)
}

// Len returns the number of records.
func (b *Book) Len() int { return len(b.records) }

// Draft returns the current form state.
func (b *Book) Draft() record.Draft { return b.draft }

// Errors returns a copy of the field errors from the last submit.
func (b *Book) Errors() record.Errors {
	out := make(record.Errors, len(b.errs))
	for k, v := range b.errs {
		out[k] = v
	}
	return out
}

// Editing returns the ID of the record under edit, or "".
func (b *Book) Editing() string { return b.editingID }

// Banner returns the success message and whether it is currently shown.
func (b *Book) Banner() (string, bool) { return b.banner.Message() }

// SetField updates one draft field and clears its error.
func (b *Book) SetField(f record.Field, v string) {
	b.draft.Set(f, v)
	delete(b.errs, f)
}

// SetDraft replaces the whole draft and clears all errors.
func (b *Book) SetDraft(d record.Draft) {
	b.draft = d
	b.errs = record.Errors{}
}

// Reset blanks the draft and the errors. Edit mode is kept.
func (b *Book) Reset() {
	b.draft = record.Draft{}
	b.errs = record.Errors{}
}

// CancelEdit leaves edit mode and blanks the form.
func (b *Book) CancelEdit() {
	b.editingID = ""
	b.Reset()
}

// Edit enters edit mode for the record with the given ID and loads it into
// the draft.
func (b *Book) Edit(id string) error {
	i := b.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %q", ErrNoRecord, id)
	}
	b.editingID = id
	b.draft = record.FromRecord(b.records[i])
	b.errs = record.Errors{}
	return nil
}

// EditAt is Edit addressed by zero-based position in the full list.
func (b *Book) EditAt(index int) error {
	r, err := b.At(index)
	if err != nil {
		return err
	}
	return b.Edit(r.ID)
}

// At returns the record at the zero-based position.
func (b *Book) At(index int) (record.Record, error) {
	if index < 0 || index >= len(b.records) {
		return record.Record{}, fmt.Errorf("%w: index %d (have %d)", ErrNoRecord, index, len(b.records))
	}
	return b.records[index], nil
}

// Get returns the record with the given ID.
func (b *Book) Get(id string) (record.Record, error) {
	i := b.indexOf(id)
	if i < 0 {
		return record.Record{}, fmt.Errorf("%w: id %q", ErrNoRecord, id)
	}
	return b.records[i], nil
}

func (b *Book) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, r := range b.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Validate checks the current draft without submitting it.
func (b *Book) Validate() record.Errors {
	return validate.Validate(b.draft, b.records, b.editingID)
}

// Submit validates the draft. On failure the field errors are kept (see
// Errors), any success banner is hidden and a *ValidationError is returned. On success the draft is
// appended, or replaces the record under edit in place; the list is
// persisted, edit mode ends, the form is reset and the success banner shown.
func (b *Book) Submit(ctx context.Context) (Saved, error) {
	errs := b.Validate()
	b.errs = errs
	if len(errs) > 0 {
		b.banner.Hide()
		b.logger.Debug("submit rejected", zap.Strings("fields", fieldNames(errs)))
		return Saved{}, &ValidationError{Errors: errs}
	}

	var (
		next  []record.Record
		saved Saved
	)
	if b.editingID != "" {
		i := b.indexOf(b.editingID)
		if i < 0 {
			// the record was removed while being edited
			b.editingID = ""
			return Saved{}, fmt.Errorf("%w: record under edit no longer exists", ErrNoRecord)
		}
		next = b.Records()
		saved = Saved{Record: b.draft.Record(b.editingID), Previous: next[i], Updated: true}
		next[i] = saved.Record
	} else {
		saved = Saved{Record: b.draft.Record(b.newID())}
		next = append(b.Records(), saved.Record)
	}

	if err := b.persist(ctx, next); err != nil {
		return Saved{}, err
	}
	b.records = next
	b.editingID = ""
	b.Reset()
	b.banner.Show(MsgSaved, b.bannerDuration)

	if saved.Updated {
		b.logger.Info("record updated", zap.String("id", saved.Record.ID))
	} else {
		b.logger.Info("record added", zap.String("id", saved.Record.ID), zap.Int("records", len(b.records)))
	}
	return saved, nil
}

// Delete asks for confirmation and removes the record with the given ID.
// Declining returns ErrDeclined and leaves everything unchanged.
func (b *Book) Delete(ctx context.Context, id string) (record.Record, error) {
	i := b.indexOf(id)
	if i < 0 {
		return record.Record{}, fmt.Errorf("%w: id %q", ErrNoRecord, id)
	}
	ok, err := b.confirmer.Confirm(ctx, MsgConfirmDelete)
	if err != nil {
		return record.Record{}, fmt.Errorf("confirming delete: %w", err)
	}
	if !ok {
		return record.Record{}, ErrDeclined
	}

	removed := b.records[i]
	next := make([]record.Record, 0, len(b.records)-1)
	next = append(next, b.records[:i]...)
	next = append(next, b.records[i+1:]...)
	if err := b.persist(ctx, next); err != nil {
		return record.Record{}, err
	}
	b.records = next
	if b.editingID == id {
		b.CancelEdit()
	}
	b.logger.Info("record deleted", zap.String("id", id), zap.Int("records", len(b.records)))
	return removed, nil
}

// DeleteAt is Delete addressed by zero-based position in the full list.
func (b *Book) DeleteAt(ctx context.Context, index int) (record.Record, error) {
	r, err := b.At(index)
	if err != nil {
		return record.Record{}, err
	}
	return b.Delete(ctx, r.ID)
}

// DeleteAll asks for confirmation, clears the list and removes the storage
// key entirely.
func (b *Book) DeleteAll(ctx context.Context) error {
	ok, err := b.confirmer.Confirm(ctx, MsgConfirmDeleteAll)
	if err != nil {
		return fmt.Errorf("confirming delete all: %w", err)
	}
	if !ok {
		return ErrDeclined
	}
	if err := b.store.Remove(ctx, b.key); err != nil {
		return fmt.Errorf("removing stored records: %w", err)
	}
	n := len(b.records)
	b.records = []record.Record{}
	b.CancelEdit()
	b.logger.Info("all records deleted", zap.Int("removed", n))
	return nil
}

func (b *Book) persist(ctx context.Context, records []record.Record) error {
	if err := storage.SaveRecords(ctx, b.store, b.key, records); err != nil {
		b.logger.Error("persisting records failed", zap.String("key", b.key), zap.Error(err))
		return fmt.Errorf("persisting records: %w", err)
	}
	return nil
}

func fieldNames(errs record.Errors) []string {
	fs := errs.Fields()
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = string(f)
	}
	return out
}
