package main

// Create the postgres kv tables:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"resume-platform/internal/shared/config"
	"resume-platform/internal/shared/storage/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required")
		os.Exit(1)
	}

	pool := db.MigratePool().Override(db.Pool{PingTimeout: cfg.DBPingTimeout})
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, pool)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
}
