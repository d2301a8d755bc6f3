package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/staff-api/internal/config"
	"github.com/phrazzld/staff-api/internal/platform/postgres"
	"github.com/phrazzld/staff-api/internal/service"
)

// application holds the wired-together dependencies for the server process.
type application struct {
	config          *config.Config
	logger          *slog.Logger
	db              *sql.DB
	employeeService service.EmployeeService
}

// newApplication connects to the database, runs pending migrations, and
// constructs the store and service layers. Dependencies flow in one
// direction: handler -> service -> store -> database.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := openDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("failed to close database after migration failure", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	employeeStore := postgres.NewPostgresEmployeeStore(db, logger)

	employeeService, err := service.NewEmployeeService(employeeStore, logger)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("failed to close database after service wiring failure", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to create employee service: %w", err)
	}

	return &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		employeeService: employeeService,
	}, nil
}

// cleanup releases process-wide resources. Safe to call more than once.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
		app.db = nil
	}
}
