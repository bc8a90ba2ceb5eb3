package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/example/dasturxon/internal/config"
	"github.com/example/dasturxon/internal/database"
	"github.com/example/dasturxon/internal/logger"
	"github.com/example/dasturxon/internal/metrics"
	"github.com/example/dasturxon/internal/middleware"
	"github.com/example/dasturxon/internal/routes"
	"github.com/example/dasturxon/internal/utils"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: "dasturxon",
	}); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Get().Sync()

	db := database.Connect(cfg.DatabaseURL)
	if err := database.Seed(db, cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
		logger.Get().Fatal("database seed failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      "Dasturxon Backend",
		ErrorHandler: utils.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger.Get()))
	app.Use(metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return utils.Success(c, "OK", fiber.Map{"status": "up"})
	})
	app.Get("/metrics", metrics.Handler())

	routes.Register(app, db, cfg)

	logger.Get().Info("starting server", zap.String("port", cfg.AppPort))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.Get().Fatal("fiber listen error", zap.Error(err))
	}
}
