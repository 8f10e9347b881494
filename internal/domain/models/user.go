package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. Its Username is the owner value stamped on
// every address record.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email_address" json:"email_address"`
	PasswordHash string             `bson:"password" json:"-"`
	CreatedDate  time.Time          `bson:"created_date" json:"created_date"`
}

// Session is a login session keyed by the token's JTI.
type Session struct {
	ID           string    `bson:"_id" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	Username     string    `bson:"username" json:"username"`
	Token        string    `bson:"token" json:"token"`
	ExpiresAt    time.Time `bson:"expires_at" json:"expires_at"`
	IPAddress    string    `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent    string    `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	IsRevoked    bool      `bson:"is_revoked" json:"is_revoked"`
	LastActivity time.Time `bson:"last_activity" json:"last_activity"`
}

// Active reports whether the session can still authenticate requests at now.
func (s *Session) Active(now time.Time) bool {
	return !s.IsRevoked && now.Before(s.ExpiresAt)
}
