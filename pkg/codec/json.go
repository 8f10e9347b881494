package codec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/pkg/constants"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Decoded is the result of Decode. IDs and Bodies are aligned by position.
// Single is set when the input was one bare object rather than an array; the
// slices then hold exactly one element each.
type Decoded struct {
	IDs    []primitive.ObjectID
	Bodies []models.Record
	Single bool
}

// ID returns the identifier of a single-object decode.
func (d *Decoded) ID() primitive.ObjectID {
	if len(d.IDs) == 0 {
		return primitive.NilObjectID
	}
	return d.IDs[0]
}

// Body returns the body of a single-object decode.
func (d *Decoded) Body() models.Record {
	if len(d.Bodies) == 0 {
		return nil
	}
	return d.Bodies[0]
}

// Encode serialises v as Extended JSON. v may be a models.Record, a
// map[string]interface{}, a []models.Record or an Iterator; an Iterator is
// drained and closed first. Top-level identifiers are written as hex strings.
func Encode(ctx context.Context, v interface{}) ([]byte, error) {
	switch val := v.(type) {
	case models.Record:
		return encodeRecord(val)
	case map[string]interface{}:
		return encodeRecord(models.Record(val))
	case bson.M:
		return encodeRecord(models.Record(val))
	case []models.Record:
		return encodeRecords(val)
	case Iterator:
		records, err := Drain(ctx, val)
		if err != nil {
			return nil, err
		}
		return encodeRecords(records)
	default:
		return nil, fmt.Errorf("codec: cannot encode %T", v)
	}
}

func encodeRecords(records []models.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, rec := range records {
		if i > 0 {
			buf.WriteString(", ")
		}
		data, err := encodeRecord(rec)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func encodeRecord(rec models.Record) ([]byte, error) {
	doc := make(bson.D, 0, len(rec))
	if id, ok := rec[constants.FieldID]; ok {
		doc = append(doc, bson.E{Key: constants.FieldID, Value: idToString(id)})
	}
	keys := make([]string, 0, len(rec))
	for k := range rec {
		if k != constants.FieldID {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: rec[k]})
	}

	// Canonical mode keeps numeric widths ($numberInt, $numberLong, $numberDouble),
	// so a record sent back on update is stored with the types it was read with.
	data, err := bson.MarshalExtJSON(doc, true, false)
	if err != nil {
		return nil, fmt.Errorf("codec: encode record: %w", err)
	}
	return data, nil
}

// idToString converts a store identifier to its canonical text form.
func idToString(id interface{}) interface{} {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return id
}

// Decode parses Extended JSON holding one object or an array of objects and
// splits each object's "_id" from its body. Both canonical and relaxed input are
// accepted; a bare JSON number decodes as int32, int64 or float64 by its value.
func Decode(data []byte) (*Decoded, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.NewParseError("json", 0, "empty input", nil)
	}

	switch trimmed[0] {
	case '{':
		id, body, err := decodeObject(trimmed)
		if err != nil {
			return nil, err
		}
		return &Decoded{
			IDs:    []primitive.ObjectID{id},
			Bodies: []models.Record{body},
			Single: true,
		}, nil
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, errors.NewParseError("json", 0, err.Error(), err)
		}
		out := &Decoded{
			IDs:    make([]primitive.ObjectID, 0, len(elems)),
			Bodies: make([]models.Record, 0, len(elems)),
		}
		for i, elem := range elems {
			id, body, err := decodeObject(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out.IDs = append(out.IDs, id)
			out.Bodies = append(out.Bodies, body)
		}
		return out, nil
	default:
		return nil, errors.NewParseError("json", 0, "expected an object or an array of objects", nil)
	}
}

func decodeObject(raw []byte) (primitive.ObjectID, models.Record, error) {
	var doc bson.M
	if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
		return primitive.NilObjectID, nil, errors.NewParseError("json", 0, err.Error(), err)
	}
	body := models.Record(doc)
	id, err := pullID(body)
	if err != nil {
		return primitive.NilObjectID, nil, err
	}
	return id, body, nil
}

// pullID removes "_id" from body and returns it in store form. A missing,
// null or empty identifier yields primitive.NilObjectID.
func pullID(body models.Record) (primitive.ObjectID, error) {
	raw, ok := body[constants.FieldID]
	if !ok {
		return primitive.NilObjectID, nil
	}
	delete(body, constants.FieldID)

	switch id := raw.(type) {
	case nil, primitive.Null:
		return primitive.NilObjectID, nil
	case primitive.ObjectID:
		return id, nil
	case string:
		if id == "" {
			return primitive.NilObjectID, nil
		}
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return primitive.NilObjectID, errors.NewParseError("json", 0,
				fmt.Sprintf("invalid identifier %q", id), err)
		}
		return oid, nil
	default:
		return primitive.NilObjectID, errors.NewParseError("json", 0,
			fmt.Sprintf("identifier must be a string, got %T", raw), nil)
	}
}

// ParseID converts the canonical text form of an identifier to store form.
func ParseID(s string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, errors.NewParseError("identifier", 0,
			fmt.Sprintf("invalid identifier %q", s), err)
	}
	return oid, nil
}
