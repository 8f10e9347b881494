package constants

// Storage field names shared by every collection.
const (
	// FieldID is the document identifier assigned by the store on insert.
	FieldID = "_id"
	// FieldOwner scopes every address record to the user that created it.
	FieldOwner = "userName"
)

// User and session fields
const (
	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldIsRevoked    = "is_revoked"
	FieldLastActivity = "last_activity"
)

// Address fields referenced outside the entity definition
const (
	FieldSendChristmasCard = "send_christmas_card"
)
