package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dshills/crudbook/internal/record"
)

// LoadRecords reads the record list stored under key. A missing key yields an
// empty list. Unparsable data yields an empty list and an error wrapping
// ErrCorrupt, so callers can report the condition and carry on.
func LoadRecords(ctx context.Context, s Store, key string) ([]record.Record, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, err
	}

	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return []record.Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if records == nil {
		// "null" was stored
		records = []record.Record{}
	}
	return records, nil
}

// SaveRecords writes the full record list under key.
func SaveRecords(ctx context.Context, s Store, key string, records []record.Record) error {
	if records == nil {
		records = []record.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return s.Set(ctx, key, data)
}
