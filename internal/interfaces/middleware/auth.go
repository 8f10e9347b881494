package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jlutz777/SimpleAddress/pkg/auth"
	"github.com/jlutz777/SimpleAddress/pkg/constants"
)

// SessionValidator is implemented by *services.AuthService.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*auth.Claims, error)
	TouchSession(sessionID string)
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		constants.ResponseError: "Unauthorized",
		constants.FieldMessage:  message,
		"code":                  "UNAUTHORIZED",
	})
}

// RequireAuth is a middleware that validates JWT tokens. On success the
// verified user session and raw token are stored in the gin context.
func RequireAuth(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			unauthorized(c, "No authorization token provided")
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			unauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := parts[1]

		claims, err := validator.ValidateSession(c.Request.Context(), tokenString)
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		validator.TouchSession(claims.ID)

		c.Set(constants.ContextKeyUser, claims.User)
		c.Set(constants.ContextKeyToken, tokenString)
		c.Next()
	}
}

// CurrentUser returns the session stored by RequireAuth.
func CurrentUser(c *gin.Context) (auth.UserSession, bool) {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return auth.UserSession{}, false
	}
	user, ok := v.(auth.UserSession)
	return user, ok && user.Username != ""
}
