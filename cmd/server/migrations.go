package main

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// migrationTableName is the goose bookkeeping table.
const migrationTableName = "staff_api_migrations"

// runMigrations applies any pending embedded migrations. Every log line of
// one run shares a correlation ID so the operation can be traced end to end.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	correlationID := uuid.New().String()
	migrationLogger := logger.With(
		slog.String("correlation_id", correlationID),
		slog.String("component", "migrations"),
	)

	startTime := time.Now()
	migrationLogger.Info("starting migration run")

	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	goose.SetBaseFS(embeddedMigrations)
	goose.SetTableName(migrationTableName)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		migrationLogger.Error("migration run failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(startTime)))
		return fmt.Errorf("goose up: %w", err)
	}

	migrationLogger.Info("migration run completed",
		slog.Duration("elapsed", time.Since(startTime)))
	return nil
}

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}
