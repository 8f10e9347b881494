package persistence

import (
	"context"
	"time"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/pkg/constants"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SessionRepository handles storage of login sessions
type SessionRepository struct {
	coll *mongo.Collection
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(coll *mongo.Collection) *SessionRepository {
	return &SessionRepository{coll: coll}
}

// InsertSession stores a new session
func (r *SessionRepository) InsertSession(ctx context.Context, session *models.Session) error {
	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return errors.NewStorageError("insert session", err)
	}
	return nil
}

// GetSession retrieves a session by its ID (the token's JTI). It returns nil
// when no such session exists.
func (r *SessionRepository) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var s models.Session
	err := r.coll.FindOne(ctx, bson.M{constants.FieldID: sessionID}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.NewStorageError("find session", err)
	}
	return &s, nil
}

// RevokeSession marks a session as revoked
func (r *SessionRepository) RevokeSession(ctx context.Context, sessionID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{constants.FieldID: sessionID},
		bson.M{"$set": bson.M{constants.FieldIsRevoked: true}})
	if err != nil {
		return errors.NewStorageError("revoke session", err)
	}
	return nil
}

// RevokeUserSessions revokes every open session of username.
func (r *SessionRepository) RevokeUserSessions(ctx context.Context, username string) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{constants.FieldUsername: username, constants.FieldIsRevoked: false},
		bson.M{"$set": bson.M{constants.FieldIsRevoked: true}})
	if err != nil {
		return errors.NewStorageError("revoke sessions", err)
	}
	return nil
}

// UpdateLastActivity updates the last activity timestamp
func (r *SessionRepository) UpdateLastActivity(ctx context.Context, sessionID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{constants.FieldID: sessionID},
		bson.M{"$set": bson.M{constants.FieldLastActivity: time.Now().UTC()}})
	if err != nil {
		return errors.NewStorageError("touch session", err)
	}
	return nil
}
