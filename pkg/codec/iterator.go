package codec

import (
	"context"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
)

// Iterator is a lazy, forward-only record sequence such as a store cursor.
// It can be consumed once.
type Iterator interface {
	Next(ctx context.Context) bool
	Record() (models.Record, error)
	Err() error
	Close(ctx context.Context) error
}

// Drain reads every remaining record from it and closes it, on success or not.
func Drain(ctx context.Context, it Iterator) (records []models.Record, err error) {
	defer func() {
		if cerr := it.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	records = []models.Record{}
	for it.Next(ctx) {
		rec, err := it.Record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// SliceIterator adapts an in-memory slice to Iterator.
type SliceIterator struct {
	records []models.Record
	pos     int
	closed  bool
}

// NewSliceIterator returns an Iterator over records.
func NewSliceIterator(records []models.Record) *SliceIterator {
	return &SliceIterator{records: records, pos: -1}
}

func (s *SliceIterator) Next(context.Context) bool {
	if s.closed || s.pos+1 >= len(s.records) {
		return false
	}
	s.pos++
	return true
}

func (s *SliceIterator) Record() (models.Record, error) {
	return s.records[s.pos], nil
}

func (s *SliceIterator) Err() error { return nil }

func (s *SliceIterator) Close(context.Context) error {
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *SliceIterator) Closed() bool { return s.closed }
