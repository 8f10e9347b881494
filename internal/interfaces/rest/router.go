package rest

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/jlutz777/SimpleAddress/internal/interfaces/middleware"
)

// Pinger reports store reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps collects what NewRouter wires together.
type RouterDeps struct {
	Addresses AddressService
	Auth      AuthService
	Sessions  middleware.SessionValidator
	Health    Pinger
	StaticDir string
}

// RegisterRoutes mounts every endpoint on r.
func RegisterRoutes(r gin.IRouter, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.Auth)
	addressHandler := NewAddressHandler(deps.Addresses)
	requireAuth := middleware.RequireAuth(deps.Sessions)

	r.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			if err := deps.Health.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", requireAuth, authHandler.Logout)
		authGroup.POST("/change-password", requireAuth, authHandler.ChangePassword)
	}

	protected := r.Group("/", requireAuth)
	{
		protected.GET("/addresses", addressHandler.List)
		protected.POST("/addresses", addressHandler.Create)
		protected.PUT("/addresses", addressHandler.Update)
		protected.DELETE("/addresses/:id", addressHandler.Delete)
		protected.GET("/fields", addressHandler.Fields)
		protected.GET("/csv", addressHandler.ExportCSV)
		protected.GET("/christmas_card", addressHandler.ChristmasCard)
		protected.POST("/import_csv", addressHandler.ImportCSV)
	}

	if deps.StaticDir != "" {
		r.Static("/js", filepath.Join(deps.StaticDir, "js"))
		r.Static("/css", filepath.Join(deps.StaticDir, "css"))
	}
}
