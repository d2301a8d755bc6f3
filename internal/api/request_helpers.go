package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/staff-api/internal/domain"
	"github.com/phrazzld/staff-api/internal/store"
)

// Pagination defaults for the list endpoint.
const (
	defaultPage     = 1
	defaultPageSize = 10
)

// getPathID extracts a numeric employee ID from the URL path parameters.
//
// Returns:
//   - (id, nil): The parsed ID if valid
//   - (0, error): Zero and an appropriate error if the parameter is missing
//     or not a positive integer
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return id, nil
}

// parseListParams decodes and validates the list endpoint's query string.
// Missing parameters take their defaults; malformed numbers and out-of-range
// values fail with validation errors enumerating the offending parameter.
func parseListParams(r *http.Request) (ListEmployeesParams, error) {
	query := r.URL.Query()

	params := ListEmployeesParams{
		Page:       defaultPage,
		PageSize:   defaultPageSize,
		Department: query.Get("department"),
		Sort:       query.Get("sort"),
		Order:      strings.ToLower(query.Get("order")),
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return params, domain.NewValidationError("page", "must be an integer", nil)
		}
		params.Page = page
	}

	if raw := query.Get("page_size"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return params, domain.NewValidationError("page_size", "must be an integer", nil)
		}
		params.PageSize = pageSize
	}

	if raw := query.Get("min_salary"); raw != "" {
		minSalary, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, domain.NewValidationError("min_salary", "must be a number", nil)
		}
		params.MinSalary = &minSalary
	}

	if raw := query.Get("max_salary"); raw != "" {
		maxSalary, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, domain.NewValidationError("max_salary", "must be a number", nil)
		}
		params.MaxSalary = &maxSalary
	}

	return params, nil
}

// toFilters converts validated query parameters into store filters.
func (p ListEmployeesParams) toFilters() store.EmployeeFilters {
	order := p.Order
	if order == "" {
		order = store.OrderAsc
	}

	return store.EmployeeFilters{
		Department: p.Department,
		MinSalary:  p.MinSalary,
		MaxSalary:  p.MaxSalary,
		Sort:       p.Sort,
		Order:      order,
		Page:       p.Page,
		PageSize:   p.PageSize,
	}
}
