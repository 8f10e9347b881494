// Package codec converts records between their stored form, JSON and CSV.
//
// JSON output uses MongoDB Extended JSON v2 in canonical mode so that native store
// types survive a round trip: a date is written as {"$date": {"$numberLong": "..."}},
// an int64 as {"$numberLong": "..."}, an int32 as {"$numberInt": "..."} and an
// identifier nested below the top level as {"$oid": "..."}. Strings and booleans
// stay plain JSON. Input may be canonical or relaxed. The top-level "_id" of every record is always written
// as its plain 24-character hex string, which is the form clients send back.
//
// CSV output quotes every cell. CSV input is not type-coerced: every cell is
// returned as the raw string.
package codec
