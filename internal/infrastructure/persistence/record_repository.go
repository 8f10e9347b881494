package persistence

import (
	"context"
	"fmt"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/internal/domain/schema"
	"github.com/jlutz777/SimpleAddress/pkg/codec"
	"github.com/jlutz777/SimpleAddress/pkg/constants"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"github.com/jlutz777/SimpleAddress/pkg/fields"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecordRepository handles CRUD operations on one record collection, scoped to
// an owning user. Every read and write is filtered by the owner passed in by
// the caller; an owner value inside a filter or a record is always replaced.
// Not found and not owned are indistinguishable: both report false.
type RecordRepository struct {
	coll *mongo.Collection
	def  schema.Definition
}

// NewRecordRepository creates a RecordRepository over coll for the entity def.
func NewRecordRepository(coll *mongo.Collection, def schema.Definition) *RecordRepository {
	return &RecordRepository{coll: coll, def: def}
}

// ListOptions narrows and orders a List call.
type ListOptions struct {
	// Filter holds equality criteria (or any store query operators).
	Filter map[string]interface{}
	// SortField orders results; empty keeps storage order.
	SortField string
	// SecondarySortField breaks ties on SortField. It is ignored without SortField.
	SecondarySortField string
	// Descending reverses every sort key.
	Descending bool
}

// Definition returns the entity definition served by the repository.
func (r *RecordRepository) Definition() schema.Definition {
	return r.def
}

// CreationFields returns the entity's creatable fields, excluding the identifier.
func (r *RecordRepository) CreationFields() []fields.Field {
	return r.def.CreationFields()
}

// List returns a lazy cursor over the owner's records. The cursor holds server
// resources and must be closed.
func (r *RecordRepository) List(ctx context.Context, owner string, opts ListOptions) (codec.Iterator, error) {
	filter := ownerFilter(opts.Filter, owner)

	dir := 1
	if opts.Descending {
		dir = -1
	}

	findOpts := options.Find()
	switch {
	case opts.SortField == "":
	case opts.SecondarySortField == "":
		findOpts.SetSort(bson.D{{Key: opts.SortField, Value: dir}})
	default:
		if err := r.ensureSortIndex(ctx, opts.SortField, opts.SecondarySortField); err != nil {
			return nil, err
		}
		findOpts.SetSort(bson.D{
			{Key: opts.SortField, Value: dir},
			{Key: opts.SecondarySortField, Value: dir},
		})
	}

	cur, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, errors.NewStorageError("find", err)
	}
	return newRecordCursor(cur), nil
}

// ensureSortIndex creates the compound (owner, sort, secondary) index if missing.
func (r *RecordRepository) ensureSortIndex(ctx context.Context, sortField, secondary string) error {
	model := mongo.IndexModel{
		Keys: bson.D{
			{Key: constants.FieldOwner, Value: 1},
			{Key: sortField, Value: 1},
			{Key: secondary, Value: 1},
		},
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, model); err != nil {
		return errors.NewStorageError("create index", err)
	}
	return nil
}

// Create inserts record for owner and returns the new identifier in hex form.
// Any identifier or owner on record is ignored.
func (r *RecordRepository) Create(ctx context.Context, record models.Record, owner string) (string, error) {
	doc := stamp(record, owner)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", errors.NewStorageError("insert", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.NewInternalError(fmt.Sprintf("unexpected inserted id type %T", res.InsertedID), nil)
	}
	return oid.Hex(), nil
}

// Update sets record's fields on the owner's document id. It reports false when
// no such document belongs to owner.
func (r *RecordRepository) Update(ctx context.Context, id primitive.ObjectID, record models.Record, owner string) (bool, error) {
	filter := bson.M{constants.FieldID: id, constants.FieldOwner: owner}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": stamp(record, owner)})
	if err != nil {
		return false, errors.NewStorageError("update", err)
	}
	return res.MatchedCount == 1, nil
}

// UpdateMultiple applies Update pairwise in order and reports true only when
// every pair succeeded. Successful updates are kept when others fail; there is
// no rollback. A storage error stops the batch.
func (r *RecordRepository) UpdateMultiple(ctx context.Context, ids []primitive.ObjectID, records []models.Record, owner string) (bool, error) {
	if len(ids) != len(records) {
		return false, errors.NewValidationError("ids",
			fmt.Sprintf("got %d identifiers for %d records", len(ids), len(records)))
	}
	if len(ids) == 1 {
		return r.Update(ctx, ids[0], records[0], owner)
	}

	success := true
	for i := range ids {
		ok, err := r.Update(ctx, ids[i], records[i], owner)
		if err != nil {
			return false, err
		}
		if !ok {
			success = false
		}
	}
	return success, nil
}

// Delete removes the owner's document id. It reports true only when exactly
// one document was removed.
func (r *RecordRepository) Delete(ctx context.Context, id primitive.ObjectID, owner string) (bool, error) {
	filter := bson.M{constants.FieldID: id, constants.FieldOwner: owner}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, errors.NewStorageError("delete", err)
	}
	return res.DeletedCount == 1, nil
}

// ownerFilter copies criteria and forces the owner key.
func ownerFilter(criteria map[string]interface{}, owner string) bson.M {
	filter := make(bson.M, len(criteria)+1)
	for k, v := range criteria {
		filter[k] = v
	}
	filter[constants.FieldOwner] = owner
	return filter
}

// stamp returns a copy of record owned by owner and without an identifier.
func stamp(record models.Record, owner string) bson.M {
	doc := make(bson.M, len(record)+1)
	for k, v := range record {
		if k == constants.FieldID {
			continue
		}
		doc[k] = v
	}
	doc[constants.FieldOwner] = owner
	return doc
}
