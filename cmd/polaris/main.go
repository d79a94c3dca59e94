package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labs-polaris/Polaris-Back-Web/db"
	"github.com/labs-polaris/Polaris-Back-Web/internal/config"
	"github.com/labs-polaris/Polaris-Back-Web/internal/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)

	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}

	defer logger.Sync()

	gdb, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.New(cfg, gdb, logger)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()

	parsed, err := zapcore.ParseLevel(level)

	if err != nil {
		parsed = zapcore.InfoLevel
	}

	zapConfig.Level = zap.NewAtomicLevelAt(parsed)

	return zapConfig.Build()
}
