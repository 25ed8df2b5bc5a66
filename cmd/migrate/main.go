package main

import (
	"context"
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/weg-assembly/internal/infrastructure/database"
	"github.com/johnquangdev/weg-assembly/pkg/config"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	max := flag.Int("max", 0, "maximum number of migrations to apply, 0 for all")
	flag.Parse()

	var dir migrate.MigrationDirection
	switch *direction {
	case "up":
		dir = migrate.Up
	case "down":
		dir = migrate.Down
	default:
		log.Fatalf("Unknown direction %q, expected up or down", *direction)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.NewPostgresDB(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.CloseDB(db) }()

	n, err := database.Migrate(db, dir, *max)
	if err != nil {
		logger.Fatal("failed to apply migrations", zap.String("direction", *direction), zap.Error(err))
	}

	logger.Info("migrations applied", zap.String("direction", *direction), zap.Int("count", n))
}
