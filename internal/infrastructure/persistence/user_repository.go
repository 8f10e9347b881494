package persistence

import (
	"context"
	"time"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/pkg/constants"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

// EnsureIndexes creates the unique username index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: constants.FieldUsername, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.NewStorageError("create user index", err)
	}
	return nil
}

// FindByUsername returns the user with the given name, or nil when none exists.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, bson.M{constants.FieldUsername: username}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.NewStorageError("find user", err)
	}
	return &u, nil
}

// CheckUserExists reports whether username is taken.
func (r *UserRepository) CheckUserExists(ctx context.Context, username string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{constants.FieldUsername: username}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.NewStorageError("count users", err)
	}
	return n > 0, nil
}

// InsertUser stores u and fills in its generated identifier.
func (r *UserRepository) InsertUser(ctx context.Context, u *models.User) error {
	if u.CreatedDate.IsZero() {
		u.CreatedDate = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.NewConflictError("user", constants.FieldUsername, u.Username)
		}
		return errors.NewStorageError("insert user", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// UpdatePassword replaces the stored hash for username.
func (r *UserRepository) UpdatePassword(ctx context.Context, username, hash string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{constants.FieldUsername: username},
		bson.M{"$set": bson.M{constants.FieldPassword: hash}})
	if err != nil {
		return errors.NewStorageError("update password", err)
	}
	if res.MatchedCount == 0 {
		return errors.NewNotFoundError("user", username)
	}
	return nil
}
