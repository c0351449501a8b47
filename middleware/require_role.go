// middleware/require_role.go

package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
	"github.com/atriumhq/atrium/util"
)

// RequireRole rejects callers below minRole. It assumes Authenticator ran
// earlier in the chain.
func RequireRole(minRole model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := util.GetUserContext(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !user.Role.AtLeast(minRole) {
			logger.Warn("Role check failed",
				zap.String("userID", user.UserID),
				zap.String("userRole", user.Role.String()),
				zap.String("requiredRole", minRole.String()))
			c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("Requires %s role or higher", minRole)})
			c.Abort()
			return
		}

		c.Next()
	}
}
