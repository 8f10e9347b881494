package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jlutz777/SimpleAddress/pkg/auth"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateSession(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if c := args.Get(0); c != nil {
		return c.(*auth.Claims), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockValidator) TouchSession(sessionID string) {
	m.Called(sessionID)
}

func newRouter(v SessionValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireAuth(v), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, user.Username)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		v := new(mockValidator)
		w := httptest.NewRecorder()
		newRouter(v).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		v.AssertNotCalled(t, "ValidateSession", mock.Anything, mock.Anything)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		v := new(mockValidator)
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		newRouter(v).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid session", func(t *testing.T) {
		v := new(mockValidator)
		v.On("ValidateSession", mock.Anything, "bad").Return(nil, errors.NewUnauthorizedError("Session has been revoked"))
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer bad")
		w := httptest.NewRecorder()
		newRouter(v).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "revoked")
	})

	t.Run("valid session exposes username", func(t *testing.T) {
		v := new(mockValidator)
		claims := &auth.Claims{
			User:             auth.UserSession{Username: "alice"},
			RegisteredClaims: jwt.RegisteredClaims{ID: "jti-1"},
		}
		v.On("ValidateSession", mock.Anything, "good").Return(claims, nil)
		v.On("TouchSession", "jti-1").Return()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()
		newRouter(v).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", w.Body.String())
		v.AssertExpectations(t)
	})
}
