package models

import (
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValueKind is the closed set of scalar kinds a record field may hold.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindTime
	KindIdentifier
	KindOther
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindIdentifier:
		return "identifier"
	default:
		return "other"
	}
}

// Kind classifies a field value as decoded from the store, JSON or CSV.
func Kind(v interface{}) ValueKind {
	switch v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return KindNull
	case string:
		return KindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, primitive.Decimal128:
		return KindNumber
	case bool:
		return KindBool
	case time.Time, primitive.DateTime, primitive.Timestamp:
		return KindTime
	case primitive.ObjectID:
		return KindIdentifier
	default:
		return KindOther
	}
}

// FormatValue renders a field value as text for flat exports such as CSV.
// Times use RFC 3339 in UTC and identifiers their hex form.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	case primitive.Timestamp:
		return time.Unix(int64(val.T), 0).UTC().Format(time.RFC3339)
	case primitive.ObjectID:
		return val.Hex()
	default:
		return fmt.Sprintf("%v", val)
	}
}
