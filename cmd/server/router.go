package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/staff-api/internal/api"
	apimiddleware "github.com/phrazzld/staff-api/internal/api/middleware"
	"github.com/phrazzld/staff-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(apimiddleware.TraceMiddleware)
	r.Use(apimiddleware.RequestLogger)
	r.Use(apimiddleware.Recoverer)

	employeeHandler := api.NewEmployeeHandler(app.employeeService, app.logger)

	r.Route("/employees", func(r chi.Router) {
		r.Post("/", employeeHandler.CreateEmployee)
		r.Get("/", employeeHandler.ListEmployees)
		r.Get("/{id}", employeeHandler.GetEmployee)
		r.Put("/{id}", employeeHandler.UpdateEmployee)
		r.Delete("/{id}", employeeHandler.DeleteEmployee)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"message": "Employee Management Service",
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
