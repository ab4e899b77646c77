package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

func init() {
	goose.SetBaseFS(migrations)
}

// Migrate applies every pending migration embedded in the binary.
func Migrate(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	return RunMigrations(ctx, db, logger, "up")
}

// RunMigrations runs a goose command (up, down, status, version, redo ...)
// against the embedded migrations.
func RunMigrations(ctx context.Context, db *sql.DB, logger *zap.Logger, command string, args ...string) error {
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	logger.Info("running migrations", zap.String("command", command))
	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}
	logger.Info("migrations done", zap.String("command", command), zap.Int64("version", version))
	return nil
}
