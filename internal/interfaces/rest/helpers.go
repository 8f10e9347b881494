package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/logger"
	"github.com/jlutz777/SimpleAddress/internal/interfaces/middleware"
	"github.com/jlutz777/SimpleAddress/pkg/constants"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"go.uber.org/zap"
)

// RespondAppError sends a standardised JSON error response using pkg/errors
// Errors outside the taxonomy are logged and answered with a generic
// InternalError so their text never reaches the client.
func RespondAppError(c *gin.Context, err error) {
	if !errors.IsAppError(err) {
		logger.FromContext(c).Error("unexpected error", zap.Error(err))
		err = errors.NewInternalError("request failed", nil)
	} else if code := errors.GetHTTPStatus(err); code >= http.StatusInternalServerError {
		logger.FromContext(c).Error("request failed", zap.Int("status", code), zap.Error(err))
	}

	code := errors.GetHTTPStatus(err)
	message := err.Error()

	c.JSON(code, gin.H{
		constants.ResponseError: message,
		constants.FieldMessage:  message,
		"code":                  errors.GetErrorCode(err),
	})
}

// RespondError sends a bare {"error": message} body, the contract the address
// endpoints have always used for failed writes.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{constants.ResponseError: message})
}

// BindJSON binds JSON and returns true if successful. If failed, it sends bad request error.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondAppError(c, errors.NewValidationError("body", err.Error()))
		return false
	}
	return true
}

// requireOwner returns the authenticated user name. It aborts with 401 when
// the route was reached without RequireAuth.
func requireOwner(c *gin.Context) (string, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondAppError(c, errors.NewUnauthorizedError("User not authenticated"))
		return "", false
	}
	return user.Username, true
}

// writeFailed logs why a write failed and sends the endpoint's fixed message.
func writeFailed(c *gin.Context, message string, err error) {
	if err != nil {
		logger.FromContext(c).Warn(message, zap.Error(err))
	}
	RespondError(c, http.StatusBadRequest, message)
}
