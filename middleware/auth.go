// middleware/auth.go

package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/atriumhq/atrium/config"
	"github.com/atriumhq/atrium/identity"
	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
)

// Authenticator resolves the caller's identity on every request. A missing
// bearer token yields the anonymous context; a present but invalid token is
// rejected with 401. Outside production the X-Demo-Role header overrides the
// resolved role so demos can walk the role ladder.
func Authenticator(builder *identity.Builder) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")

		var user model.UserContext
		if tokenString := bearerToken(c); tokenString == "" {
			user = builder.Anonymous(sessionID)
		} else {
			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(config.GetString("auth.jwtSecret")), nil
			})
			if err != nil {
				logger.Warn("JWT validation failed", zap.Error(err))
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication token"})
				c.Abort()
				return
			}

			user, err = builder.FromClaims(c, map[string]any(claims), sessionID)
			if err != nil {
				logger.Warn("Failed to build user context", zap.Error(err))
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication token"})
				c.Abort()
				return
			}
		}

		if demoRole := c.GetHeader("X-Demo-Role"); demoRole != "" && !config.IsProduction() {
			user.Role = model.ParseRole(demoRole)
		}

		c.Set("userContext", user)
		c.Set("requestingUserID", user.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
