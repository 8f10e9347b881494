package models

import (
	"time"

	"github.com/jlutz777/SimpleAddress/pkg/constants"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record represents one stored document: field name to scalar value, plus the
// store-assigned identifier and the owning user.
type Record map[string]interface{}

// GetString returns the string value of key, or "" when absent or not a string.
func (r Record) GetString(key string) string {
	if val, ok := r[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func (r Record) GetBool(key string) bool {
	if val, ok := r[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func (r Record) GetTime(key string) time.Time {
	if val, ok := r[key]; ok {
		switch t := val.(type) {
		case time.Time:
			return t
		case primitive.DateTime:
			return t.Time()
		case string:
			parsed, _ := time.Parse(time.RFC3339, t)
			return parsed
		}
	}
	return time.Time{}
}

// ID returns the record's identifier, or primitive.NilObjectID when it has none
// or holds one that is not a valid identifier.
func (r Record) ID() primitive.ObjectID {
	switch id := r[constants.FieldID].(type) {
	case primitive.ObjectID:
		return id
	case string:
		oid, err := primitive.ObjectIDFromHex(id)
		if err == nil {
			return oid
		}
	}
	return primitive.NilObjectID
}

// Owner returns the owning user stored on the record.
func (r Record) Owner() string {
	return r.GetString(constants.FieldOwner)
}

// Clone returns a shallow copy. Values are scalars, so a shallow copy is enough
// to stamp fields without touching the caller's map.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
