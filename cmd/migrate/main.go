// Command migrate applies the embedded goose migrations to DATABASE_URL.
//
//	migrate [up|down|status|version|redo|reset]
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/storage/db"
	"resume-matcher/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.SetLevel(cfg.LogLevel)

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if err := run(command, cfg.DatabaseURL); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"command": command, "error": err})
		os.Exit(1)
	}
}

func run(command, databaseURL string) error {
	if databaseURL == "" {
		return db.ErrNoDatabaseURL
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	names, err := db.MigrationNames()
	if err != nil {
		return err
	}
	sqlDB, err := db.Connect(ctx, databaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, sqlDB, command); err != nil {
		if errors.Is(err, context.Canceled) {
			telemetry.Warn("migrate.interrupted", map[string]any{"command": command})
		}
		return err
	}
	telemetry.Info("migrate.done", map[string]any{
		"command":    command,
		"migrations": len(names),
	})
	return nil
}
