package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atriumhq/atrium/audit"
	"github.com/atriumhq/atrium/config"
	"github.com/atriumhq/atrium/controller"
	"github.com/atriumhq/atrium/dao"
	"github.com/atriumhq/atrium/db"
	"github.com/atriumhq/atrium/identity"
	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/rbac"
	"github.com/atriumhq/atrium/router"
	"github.com/atriumhq/atrium/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("app.logDir"))
	defer logger.Sync()

	// Initialize Neo4j
	if err := db.InitNeo4j(); err != nil {
		logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
	}
	defer db.CloseNeo4j()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	eventBus.Start(ctx)

	// Initialize the audit pipeline
	auditRepository, err := audit.NewElasticsearchRepository(
		config.GetString("elasticsearch.url"),
		config.GetString("audit.index"),
	)
	if err != nil {
		logger.Fatal("Failed to initialize Elasticsearch", zap.Error(err))
	}
	auditService := audit.NewService(
		auditRepository,
		eventBus,
		config.GetInt("audit.bufferSize"),
		config.GetInt("audit.workers"),
	)
	auditService.Start(ctx)
	defer auditService.Close()

	// Denied access decisions fan out to the notification service
	notificationService := util.NewNotificationService()
	eventBus.Subscribe(audit.EventDeniedAccess, notificationService.HandleDeniedAccess)

	// Initialize the policy engine and guard
	engine, err := rbac.NewDefaultEngine()
	if err != nil {
		logger.Fatal("Failed to load default policies", zap.Error(err))
	}
	guard := rbac.NewGuard(engine, auditService)

	// Initialize directory access
	cacheService := util.NewCacheService()
	employeeDAO := dao.NewEmployeeDAO(db.Neo4jDriver, auditService)
	identityBuilder := identity.NewBuilder(employeeDAO, cacheService)

	// Initialize controllers
	controllers := controller.InitializeControllers(guard, auditService, employeeDAO, cacheService)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engineRouter := router.SetupRouter(
		controllers,
		identityBuilder,
		config.GetInt("rateLimit.requests"),
		config.GetDuration("rateLimit.window"),
	)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engineRouter,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
