package database

import (
	"context"
	"fmt"

	"github.com/jlutz777/SimpleAddress/internal/infrastructure/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConnection represents a MongoDB client bound to one database.
// mongo.Client is safe for concurrent use and manages its own connection pool.
type MongoConnection struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    config.MongoConfig
}

// ClientOptions builds the driver options for cfg. The connect timeout is the
// only bound on a storage call; reads and writes are not retried.
func ClientOptions(cfg config.MongoConfig) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetRetryWrites(false).
		SetRetryReads(false)
}

// Connect opens a client for cfg and verifies it with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*MongoConnection, error) {
	client, err := mongo.Connect(ctx, ClientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoConnection{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
	}, nil
}

// Collection returns a handle to a named collection of the configured database.
func (c *MongoConnection) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// CollectionOrDefault returns the configured record collection, or name when
// none is configured.
func (c *MongoConnection) CollectionOrDefault(name string) *mongo.Collection {
	if c.cfg.Collection != "" {
		return c.db.Collection(c.cfg.Collection)
	}
	return c.db.Collection(name)
}

// Database returns the underlying database handle.
func (c *MongoConnection) Database() *mongo.Database {
	return c.db
}

// Ping checks that the primary is reachable.
func (c *MongoConnection) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (c *MongoConnection) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
