package api

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/phrazzld/staff-api/internal/domain"
)

// CreateEmployeeRequest defines the payload for the create employee endpoint.
type CreateEmployeeRequest struct {
	Name       string   `json:"name"       validate:"required,max=120"`
	Email      string   `json:"email"      validate:"required,email,max=120"`
	Department *string  `json:"department" validate:"omitempty,max=100"`
	Salary     *float64 `json:"salary"     validate:"omitempty,gte=0"`
}

// UpdateEmployeeRequest defines the payload for the partial update endpoint.
// Every field is presence-aware: a field absent from the payload is not
// considered for mutation, while an explicit null clears a nullable field.
type UpdateEmployeeRequest struct {
	Name       domain.Optional[string]   `json:"name"`
	Email      domain.Optional[string]   `json:"email"`
	Department domain.Optional[*string]  `json:"department"`
	Salary     domain.Optional[*float64] `json:"salary"`
}

// Validate checks the supplied fields against the same per-field rules the
// create endpoint enforces. Fields absent from the payload are skipped.
func (req *UpdateEmployeeRequest) Validate() error {
	var errs []error

	if name, ok := req.Name.Get(); ok {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, domain.NewValidationError("name", "cannot be empty", nil))
		} else if utf8.RuneCountInString(name) > domain.MaxNameLength {
			errs = append(errs, domain.NewValidationError("name", "too long", nil))
		}
	}

	if email, ok := req.Email.Get(); ok {
		normalized := domain.NormalizeEmail(email)
		if normalized == "" {
			errs = append(errs, domain.NewValidationError("email", "cannot be empty", nil))
		} else if utf8.RuneCountInString(normalized) > domain.MaxEmailLength {
			errs = append(errs, domain.NewValidationError("email", "too long", nil))
		} else if _, err := mail.ParseAddress(normalized); err != nil {
			errs = append(errs, domain.NewValidationError("email", "invalid email format", domain.ErrInvalidEmail))
		}
	}

	if department, ok := req.Department.Get(); ok && department != nil {
		if utf8.RuneCountInString(*department) > domain.MaxDepartmentLength {
			errs = append(errs, domain.NewValidationError("department", "too long", nil))
		}
	}

	if salary, ok := req.Salary.Get(); ok && salary != nil {
		if *salary < 0 {
			errs = append(errs, domain.NewValidationError("salary", "must be non-negative", nil))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// Patch converts the request into the domain's typed partial update.
func (req *UpdateEmployeeRequest) Patch() domain.EmployeePatch {
	return domain.EmployeePatch{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Salary:     req.Salary,
	}
}

// ListEmployeesParams defines the query parameters for the list endpoint.
type ListEmployeesParams struct {
	Page       int      `json:"page"       validate:"gte=1"`
	PageSize   int      `json:"page_size"  validate:"gte=1,lte=100"`
	Department string   `json:"department"`
	Sort       string   `json:"sort"       validate:"omitempty,oneof=id name email department salary date_joined"`
	Order      string   `json:"order"      validate:"omitempty,oneof=asc desc"`
	MinSalary  *float64 `json:"min_salary" validate:"omitempty,gte=0"`
	MaxSalary  *float64 `json:"max_salary" validate:"omitempty,gte=0"`
}

// EmployeeResponse represents the response data for a single employee.
type EmployeeResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department *string   `json:"department"`
	Salary     *float64  `json:"salary"`
	DateJoined time.Time `json:"date_joined"`
}

// ListEmployeesResponse is the paginated list shape: the total is the count
// of all rows matching the filters, not the page length.
type ListEmployeesResponse struct {
	Total     int64              `json:"total"`
	Employees []EmployeeResponse `json:"employees"`
}

// DeleteEmployeeResponse confirms a successful deletion.
type DeleteEmployeeResponse struct {
	Message string `json:"message"`
}

// employeeToResponse converts a domain.Employee to an EmployeeResponse.
func employeeToResponse(employee *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         employee.ID,
		Name:       employee.Name,
		Email:      employee.Email,
		Department: employee.Department,
		Salary:     employee.Salary,
		DateJoined: employee.DateJoined,
	}
}
