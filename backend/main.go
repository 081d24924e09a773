package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"langbridge/backend/config"
	"langbridge/backend/middleware"
	"langbridge/backend/observability"
	"langbridge/backend/routes"
	"langbridge/backend/stores"
	"langbridge/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env)
	if err != nil {
		logger.Warn("sentry disabled", zap.Error(err))
	}
	defer flush()

	// Initialize stores
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatal("error initializing database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoDB, err := utils.InitMongo(ctx, cfg)
	if err != nil {
		logger.Fatal("error initializing mongo", zap.Error(err))
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))
	app.Use(middleware.MetricsMiddleware())

	// Setup routes
	routes.SetupRoutes(app, routes.Deps{
		Cfg:           cfg,
		Verifier:      utils.NewJWTVerifier(cfg),
		Accounts:      stores.NewGormAccounts(db),
		Courses:       stores.NewGormCourses(db),
		Conversations: stores.NewMongoConversations(mongoDB),
	})

	// Start server
	logger.Fatal("server stopped", zap.Error(app.Listen(":"+cfg.ServerPort)))
}
