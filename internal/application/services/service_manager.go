package services

import (
	"context"

	"github.com/jlutz777/SimpleAddress/internal/domain/schema"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/config"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/database"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/persistence"
	"github.com/jlutz777/SimpleAddress/pkg/auth"
	"github.com/jlutz777/SimpleAddress/pkg/constants"
	"go.uber.org/zap"
)

// ServiceManager wires the services to their MongoDB repositories
type ServiceManager struct {
	conn *database.MongoConnection

	Addresses *AddressService
	Auth      *AuthService
	Users     *persistence.UserRepository
}

// NewServiceManager creates a new service manager with all dependencies wired
func NewServiceManager(conn *database.MongoConnection, cfg *config.Config, logger *zap.Logger) *ServiceManager {
	records := persistence.NewRecordRepository(conn.CollectionOrDefault(schema.Address.Collection), schema.Address)
	users := persistence.NewUserRepository(conn.Collection(constants.CollectionUsers))
	sessions := persistence.NewSessionRepository(conn.Collection(constants.CollectionSessions))
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)

	return &ServiceManager{
		conn:      conn,
		Addresses: NewAddressService(records, logger.Named("addresses")),
		Auth:      NewAuthService(users, sessions, tokens, logger.Named("auth")),
		Users:     users,
	}
}

// Init prepares indexes required at startup.
func (sm *ServiceManager) Init(ctx context.Context) error {
	return sm.Users.EnsureIndexes(ctx)
}

// Ping reports whether the store is reachable.
func (sm *ServiceManager) Ping(ctx context.Context) error {
	return sm.conn.Ping(ctx)
}
