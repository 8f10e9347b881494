package persistence

import (
	"context"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/pkg/codec"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RecordCursor is a one-shot, forward-only sequence of records backed by a
// live store cursor. It holds server resources until it is exhausted or closed.
type RecordCursor struct {
	cur    *mongo.Cursor
	closed bool
}

var _ codec.Iterator = (*RecordCursor)(nil)

func newRecordCursor(cur *mongo.Cursor) *RecordCursor {
	return &RecordCursor{cur: cur}
}

// Next advances to the next record.
func (c *RecordCursor) Next(ctx context.Context) bool {
	if c.closed {
		return false
	}
	return c.cur.Next(ctx)
}

// Record decodes the current record.
func (c *RecordCursor) Record() (models.Record, error) {
	var doc bson.M
	if err := c.cur.Decode(&doc); err != nil {
		return nil, errors.NewStorageError("decode", err)
	}
	return models.Record(doc), nil
}

// Err returns the error that stopped iteration, if any.
func (c *RecordCursor) Err() error {
	if err := c.cur.Err(); err != nil {
		return errors.NewStorageError("iterate", err)
	}
	return nil
}

// Close releases the cursor. Calling it more than once is safe.
func (c *RecordCursor) Close(ctx context.Context) error {
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.cur.Close(ctx); err != nil {
		return errors.NewStorageError("close cursor", err)
	}
	return nil
}
