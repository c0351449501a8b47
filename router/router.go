// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atriumhq/atrium/controller"
	"github.com/atriumhq/atrium/identity"
	"github.com/atriumhq/atrium/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	identityBuilder *identity.Builder,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))
	router.Use(middleware.Authenticator(identityBuilder))

	api := router.Group("/api/v1")

	controllers.Access.RegisterRoutes(api)
	controllers.Chat.RegisterRoutes(api)
	controllers.Employee.RegisterRoutes(api)
	controllers.Audit.RegisterRoutes(api)

	return router
}
