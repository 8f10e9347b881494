package main

import (
	"context"
	"fmt"

	"github.com/jlutz777/SimpleAddress/internal/application/services"
	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/internal/domain/schema"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/config"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/database"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/logger"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
)

// addressService is the part of *services.AddressService the commands use.
type addressService interface {
	ExportJSON(ctx context.Context, owner string, opts persistence.ListOptions) ([]byte, error)
	ExportCSV(ctx context.Context, owner, subset string) ([]byte, error)
	Import(ctx context.Context, owner string, rows []models.Record) (*services.ImportResult, error)
}

// storeOpener connects to the store and returns the service with a release func.
type storeOpener func(ctx context.Context) (addressService, func(), error)

func newRootCmd(open storeOpener) *cobra.Command {
	root := &cobra.Command{
		Use:          "addressctl",
		Short:        "Import and export SimpleAddress address books",
		SilenceUsage: true,
	}
	root.AddCommand(newImportCmd(open), newExportCmd(open))
	return root
}

func openStore(ctx context.Context) (addressService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	zl := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: "stderr"})

	conn, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, nil, err
	}
	repo := persistence.NewRecordRepository(conn.CollectionOrDefault(schema.Address.Collection), schema.Address)
	svc := services.NewAddressService(repo, zl)

	release := func() {
		_ = conn.Close(context.Background())
		_ = zl.Sync()
	}
	return svc, release, nil
}
