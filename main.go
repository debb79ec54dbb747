package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toystore/internal/cart"
	"toystore/internal/config"
	"toystore/internal/database"
	"toystore/internal/repositories"
	"toystore/internal/server"
	"toystore/internal/services"
	"toystore/pkg/logger"
	"toystore/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.AppEnv)
	defer logger.Sync()

	// --- Database ---
	logLevel := gormlogger.Warn
	if cfg.AppEnv == "production" {
		logLevel = gormlogger.Error
	}
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, logLevel)
	if err != nil {
		logger.Log.Fatal("Failed to open database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}
	if cfg.SeedData {
		if err := database.Seed(db); err != nil {
			logger.Log.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	// --- Cart store ---
	var carts cart.Store = cart.NewMemoryStore()
	redisStatus := "disabled"
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cart.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer client.Close()
		carts = cart.NewRedisStore(client, cfg.CartTTL)
		redisStatus = "connected"
	}

	// --- RabbitMQ ---
	var publisher services.EventPublisher
	rabbitStatus := "disabled"
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Log.Fatal("Failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient
		rabbitStatus = "connected"

		if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent); err != nil {
			logger.Log.Error("Failed to start RabbitMQ consumer", zap.Error(err))
		}
	}

	app := server.New(server.Dependencies{
		Store:      repositories.NewGORMStore(db),
		Carts:      carts,
		Publisher:  publisher,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		AdminToken: cfg.AdminToken,
		Ready: func() fiber.Map {
			return fiber.Map{"redis": redisStatus, "rabbitmq": rabbitStatus}
		},
	})

	// --- Start HTTP Server ---
	logger.Log.Info("Starting server", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Log.Error("Error during Fiber shutdown", zap.Error(err))
	}
	logger.Log.Info("Server gracefully stopped")
}
