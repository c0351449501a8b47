// middleware/auth_test.go
package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atriumhq/atrium/identity"
	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/middleware"
	"github.com/atriumhq/atrium/model"
	"github.com/atriumhq/atrium/util"
)

const testSecret = "unit-test-secret"

func authProbe() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Authenticator(identity.NewBuilder(nil, nil)))
	router.GET("/probe", func(c *gin.Context) {
		user, err := util.GetUserContext(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, user)
	})
	return router
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func probeUser(t *testing.T, router *gin.Engine, headers map[string]string) (*httptest.ResponseRecorder, model.UserContext) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var user model.UserContext
	if recorder.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &user))
	}
	return recorder, user
}

func TestAuthenticator(t *testing.T) {
	logger.InitTestLogger()
	viper.Set("auth.jwtSecret", testSecret)
	viper.Set("app.environment", "development")
	defer viper.Set("app.environment", "development")

	router := authProbe()

	t.Run("missing token resolves anonymous", func(t *testing.T) {
		recorder, user := probeUser(t, router, map[string]string{"X-Session-ID": "sess-1"})
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "anonymous", user.UserID)
		assert.Equal(t, model.RoleNewHire, user.Role)
		assert.Equal(t, "sess-1", user.SessionID)
	})

	t.Run("valid token builds claims context", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":     "user-1",
			"role":    "manager",
			"team_id": "platform",
		})
		recorder, user := probeUser(t, router, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "user-1", user.UserID)
		assert.Equal(t, model.RoleManager, user.Role)
		assert.Equal(t, "platform", user.TeamID)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		recorder, _ := probeUser(t, router, map[string]string{"Authorization": "Bearer not-a-jwt"})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"error": "Invalid authentication token"}`, recorder.Body.String())
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token := signToken(t, "some-other-secret", jwt.MapClaims{"sub": "user-1"})
		recorder, _ := probeUser(t, router, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("token without sub rejected", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"role": "manager"})
		recorder, _ := probeUser(t, router, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("demo role override outside production", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"sub": "user-1", "role": "manager"})
		recorder, user := probeUser(t, router, map[string]string{
			"Authorization": "Bearer " + token,
			"X-Demo-Role":   "executive",
		})
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, model.RoleExecutive, user.Role)
	})

	t.Run("demo role ignored in production", func(t *testing.T) {
		viper.Set("app.environment", "production")
		defer viper.Set("app.environment", "development")

		token := signToken(t, testSecret, jwt.MapClaims{"sub": "user-1", "role": "manager"})
		recorder, user := probeUser(t, router, map[string]string{
			"Authorization": "Bearer " + token,
			"X-Demo-Role":   "executive",
		})
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, model.RoleManager, user.Role)
	})
}
