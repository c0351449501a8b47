// util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	atrium_errors "github.com/atriumhq/atrium/errors"
	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// GetUserContext returns the UserContext the auth middleware stored on the
// request.
func GetUserContext(c *gin.Context) (model.UserContext, error) {
	value, exists := c.Get("userContext")
	if !exists {
		return model.UserContext{}, atrium_errors.ErrMissingUserContext
	}
	user, ok := value.(model.UserContext)
	if !ok {
		return model.UserContext{}, atrium_errors.ErrMissingUserContext
	}
	return user, nil
}
