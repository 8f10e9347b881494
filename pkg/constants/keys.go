package constants

// Collection names
const (
	CollectionAddresses = "simpleaddresses"
	CollectionUsers     = "users"
	CollectionSessions  = "sessions"
)

// Context Keys
const (
	ContextKeyUser  = "user"
	ContextKeyToken = "token"
)

// HTTP headers and response keys
const (
	HeaderAuthorization      = "Authorization"
	HeaderContentDisposition = "Content-Disposition"
	ResponseError            = "error"
	FieldMessage             = "message"
)

// Content types
const (
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv"
)

// Named field subsets
const (
	SubsetChristmas = "christmas"
)
