package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jlutz777/SimpleAddress/internal/application/services"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/config"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/database"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/logger"
	"github.com/jlutz777/SimpleAddress/internal/interfaces/rest"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()
	conn, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	zl.Info("database connection established", zap.String("database", cfg.Mongo.Database))

	svcMgr := services.NewServiceManager(conn, cfg, zl)
	if err := svcMgr.Init(ctx); err != nil {
		zl.Fatal("failed to initialize indexes", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(logger.Recovery(zl), logger.GinMiddleware(zl))

	rest.RegisterRoutes(router, rest.RouterDeps{
		Addresses: svcMgr.Addresses,
		Auth:      svcMgr.Auth,
		Sessions:  svcMgr.Auth,
		Health:    svcMgr,
		StaticDir: cfg.Static.Dir,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}
	if err := conn.Close(shutdownCtx); err != nil {
		zl.Error("failed to disconnect from database", zap.Error(err))
	}
	zl.Info("server exited")
}
