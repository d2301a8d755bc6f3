// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/staff-api/internal/api/shared"
	"github.com/phrazzld/staff-api/internal/domain"
	"github.com/phrazzld/staff-api/internal/platform/logger"
	"github.com/phrazzld/staff-api/internal/service"
	"github.com/phrazzld/staff-api/internal/store"
)

// EmployeeHandler handles employee-related HTTP requests.
// It owns no business logic: requests are decoded and validated, the service
// is invoked, and the result (or error) is translated to a response.
type EmployeeHandler struct {
	employeeService service.EmployeeService
	logger          *slog.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService service.EmployeeService, log *slog.Logger) *EmployeeHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EmployeeHandler")
	}

	return &EmployeeHandler{
		employeeService: employeeService,
		logger:          log.With(slog.String("component", "employee_handler")),
	}
}

// CreateEmployee handles POST /employees/ requests.
func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateEmployeeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		RespondWithValidationError(w, r, err)
		return
	}

	employee, err := domain.NewEmployee(req.Name, req.Email, req.Department, req.Salary)
	if err != nil {
		RespondWithValidationError(w, r, err)
		return
	}

	created, err := h.employeeService.Create(r.Context(), employee)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			HandleAPIError(w, r, err,
				fmt.Sprintf("Employee with email '%s' already exists", employee.Email))
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("created employee",
		slog.Int64("employee_id", created.ID),
		slog.String("email", created.Email))
	shared.RespondWithJSON(w, r, http.StatusCreated, employeeToResponse(created))
}

// ListEmployees handles GET /employees/ requests.
// Filtering is applied before sorting, sorting before pagination; the total
// in the response counts every matching row regardless of the page window.
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		RespondWithValidationError(w, r, err)
		return
	}

	if err := shared.ValidateRequest(params); err != nil {
		RespondWithValidationError(w, r, err)
		return
	}

	employees, total, err := h.employeeService.List(r.Context(), params.toFilters())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	response := ListEmployeesResponse{
		Total:     total,
		Employees: make([]EmployeeResponse, 0, len(employees)),
	}
	for _, employee := range employees {
		response.Employees = append(response.Employees, employeeToResponse(employee))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetEmployee handles GET /employees/{id} requests.
func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	employee, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		h.respondEmployeeError(w, r, err, id)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, employeeToResponse(employee))
}

// UpdateEmployee handles PUT /employees/{id} requests.
// Only the fields present in the payload are applied.
func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateEmployeeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		RespondWithValidationError(w, r, err)
		return
	}

	updated, err := h.employeeService.Update(r.Context(), id, req.Patch())
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			email, _ := req.Email.Get()
			HandleAPIError(w, r, err,
				fmt.Sprintf("Employee with email '%s' already exists", domain.NormalizeEmail(email)))
			return
		}
		h.respondEmployeeError(w, r, err, id)
		return
	}

	log.Debug("updated employee", slog.Int64("employee_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, employeeToResponse(updated))
}

// DeleteEmployee handles DELETE /employees/{id} requests.
func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		h.respondEmployeeError(w, r, err, id)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteEmployeeResponse{
		Message: fmt.Sprintf("Employee with ID %d deleted successfully", id),
	})
}

// respondEmployeeError routes a service error through the error mapping
// layer, attaching the ID-specific message for not-found responses.
func (h *EmployeeHandler) respondEmployeeError(w http.ResponseWriter, r *http.Request, err error, id int64) {
	if errors.Is(err, store.ErrEmployeeNotFound) {
		HandleAPIError(w, r, err, fmt.Sprintf("Employee with ID %d not found", id))
		return
	}
	HandleAPIError(w, r, err, "")
}
