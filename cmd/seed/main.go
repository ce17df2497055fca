// Command seed resets and repopulates the development database with
// fixture users, organizations and blog content.
package main

import (
	"log/slog"
	"os"

	"orgblog/internal/config"
	"orgblog/internal/database"
	"orgblog/internal/logging"
	"orgblog/internal/seed"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	if err := seed.Run(db); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}
