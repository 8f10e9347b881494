package services

import (
	"context"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/internal/domain/schema"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/persistence"
	"github.com/jlutz777/SimpleAddress/pkg/codec"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Definition() schema.Definition {
	return schema.Address
}

func (m *MockRecordStore) List(ctx context.Context, owner string, opts persistence.ListOptions) (codec.Iterator, error) {
	args := m.Called(ctx, owner, opts)
	if it := args.Get(0); it != nil {
		return it.(codec.Iterator), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecordStore) Create(ctx context.Context, record models.Record, owner string) (string, error) {
	args := m.Called(ctx, record, owner)
	return args.String(0), args.Error(1)
}

func (m *MockRecordStore) Update(ctx context.Context, id primitive.ObjectID, record models.Record, owner string) (bool, error) {
	args := m.Called(ctx, id, record, owner)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecordStore) UpdateMultiple(ctx context.Context, ids []primitive.ObjectID, records []models.Record, owner string) (bool, error) {
	args := m.Called(ctx, ids, records, owner)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecordStore) Delete(ctx context.Context, id primitive.ObjectID, owner string) (bool, error) {
	args := m.Called(ctx, id, owner)
	return args.Bool(0), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) InsertUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserStore) UpdatePassword(ctx context.Context, username, hash string) error {
	return m.Called(ctx, username, hash).Error(0)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) InsertSession(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if s := args.Get(0); s != nil {
		return s.(*models.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionStore) RevokeSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockSessionStore) RevokeUserSessions(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *MockSessionStore) UpdateLastActivity(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}
