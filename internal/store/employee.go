package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/staff-api/internal/domain"
)

// Sort order values accepted by EmployeeFilters.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortableFields lists the employee attributes that List accepts as sort keys.
// Anything else must be rejected before reaching the store.
var SortableFields = []string{"id", "name", "email", "department", "salary", "date_joined"}

// EmployeeFilters describes the filtering, sorting, and pagination applied by
// List. Nil salary bounds and an empty department mean "no filter". Page and
// PageSize are expected to be validated by the caller (Page >= 1,
// 1 <= PageSize <= 100).
type EmployeeFilters struct {
	Department string
	MinSalary  *float64
	MaxSalary  *float64
	Sort       string
	Order      string
	Page       int
	PageSize   int
}

// Offset returns the row offset for the pagination window.
func (f EmployeeFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// EmployeeStore defines the interface for employee data persistence.
// It is the only component permitted to issue queries against the store.
type EmployeeStore interface {
	// List retrieves a page of employees matching the filters, plus the total
	// count of matching rows before the pagination window is applied.
	// Filtering happens before sorting, sorting before pagination.
	List(ctx context.Context, filters EmployeeFilters) ([]*domain.Employee, int64, error)

	// GetByID retrieves an employee by its unique ID.
	// Returns ErrEmployeeNotFound if the employee does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)

	// GetByEmail retrieves an employee by email address. The email is expected
	// to be in normalized form (see domain.NormalizeEmail).
	// Returns ErrEmployeeNotFound if no employee holds that email.
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)

	// Insert saves a new employee and fills in the store-assigned ID.
	// Returns ErrEmailExists if the email is already taken.
	Insert(ctx context.Context, employee *domain.Employee) error

	// Update persists the mutable fields of an existing employee.
	// Returns ErrEmployeeNotFound if the employee does not exist and
	// ErrEmailExists if the new email is already taken.
	Update(ctx context.Context, employee *domain.Employee) error

	// Delete permanently removes an employee by ID.
	// Returns ErrEmployeeNotFound if the employee does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new EmployeeStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) EmployeeStore
}
