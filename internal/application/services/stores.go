package services

import (
	"context"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/internal/domain/schema"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/persistence"
	"github.com/jlutz777/SimpleAddress/pkg/codec"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordStore is the owner-scoped data access used by AddressService.
// *persistence.RecordRepository implements it.
type RecordStore interface {
	Definition() schema.Definition
	List(ctx context.Context, owner string, opts persistence.ListOptions) (codec.Iterator, error)
	Create(ctx context.Context, record models.Record, owner string) (string, error)
	Update(ctx context.Context, id primitive.ObjectID, record models.Record, owner string) (bool, error)
	UpdateMultiple(ctx context.Context, ids []primitive.ObjectID, records []models.Record, owner string) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID, owner string) (bool, error)
}

// UserStore is implemented by *persistence.UserRepository.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	InsertUser(ctx context.Context, u *models.User) error
	UpdatePassword(ctx context.Context, username, hash string) error
}

// SessionStore is implemented by *persistence.SessionRepository.
type SessionStore interface {
	InsertSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	RevokeSession(ctx context.Context, sessionID string) error
	RevokeUserSessions(ctx context.Context, username string) error
	UpdateLastActivity(ctx context.Context, sessionID string) error
}

var (
	_ RecordStore  = (*persistence.RecordRepository)(nil)
	_ UserStore    = (*persistence.UserRepository)(nil)
	_ SessionStore = (*persistence.SessionRepository)(nil)
)
