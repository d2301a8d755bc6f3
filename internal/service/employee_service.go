// Package service implements the business rules for employee operations.
package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/staff-api/internal/domain"
	"github.com/phrazzld/staff-api/internal/platform/logger"
	"github.com/phrazzld/staff-api/internal/store"
)

// EmployeeService provides employee-related operations. It enforces domain
// invariants (email uniqueness, existence checks) and orchestrates the
// persistence gateway; it carries no transport or storage concerns.
type EmployeeService interface {
	// Create persists a new employee. Fails with store.ErrEmailExists if the
	// email is already claimed by another employee.
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)

	// Get retrieves an employee by ID. Fails with store.ErrEmployeeNotFound
	// if no such employee exists.
	Get(ctx context.Context, id int64) (*domain.Employee, error)

	// List returns a page of employees matching the filters plus the total
	// count of matching rows, independent of the pagination window.
	List(ctx context.Context, filters store.EmployeeFilters) ([]*domain.Employee, int64, error)

	// Update applies a partial update to an existing employee and returns the
	// updated entity. Fails with store.ErrEmployeeNotFound if the employee
	// does not exist and store.ErrEmailExists if the patch changes the email
	// to one already claimed by another employee.
	Update(ctx context.Context, id int64, patch domain.EmployeePatch) (*domain.Employee, error)

	// Delete permanently removes an employee. Fails with
	// store.ErrEmployeeNotFound if the employee does not exist.
	Delete(ctx context.Context, id int64) error
}

// employeeServiceImpl implements the EmployeeService interface.
type employeeServiceImpl struct {
	employeeStore store.EmployeeStore
	logger        *slog.Logger
}

// NewEmployeeService creates a new EmployeeService backed by the given store.
// It returns an error if the store is nil.
func NewEmployeeService(employeeStore store.EmployeeStore, log *slog.Logger) (EmployeeService, error) {
	if employeeStore == nil {
		return nil, domain.NewValidationError("employeeStore", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &employeeServiceImpl{
		employeeStore: employeeStore,
		logger:        log.With(slog.String("component", "employee_service")),
	}, nil
}

// Create implements EmployeeService.Create
func (s *employeeServiceImpl) Create(
	ctx context.Context,
	employee *domain.Employee,
) (*domain.Employee, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Uniqueness pre-check. The unique index on email remains the backstop
	// for the window between this check and the insert.
	existing, err := s.employeeStore.GetByEmail(ctx, employee.Email)
	if err != nil && !store.IsNotFoundError(err) {
		log.Error("failed to check email uniqueness",
			slog.String("error", err.Error()),
			slog.String("email", employee.Email))
		return nil, NewEmployeeServiceError("create", "failed to check email uniqueness", err)
	}
	if existing != nil {
		log.Debug("employee email already taken",
			slog.String("email", employee.Email),
			slog.Int64("existing_id", existing.ID))
		return nil, NewEmployeeServiceError("create", "email already taken", store.ErrEmailExists)
	}

	if err := s.employeeStore.Insert(ctx, employee); err != nil {
		if store.IsDuplicateError(err) {
			// Lost the race to a concurrent insert.
			return nil, NewEmployeeServiceError("create", "email already taken", err)
		}
		log.Error("failed to insert employee",
			slog.String("error", err.Error()),
			slog.String("email", employee.Email))
		return nil, NewEmployeeServiceError("create", "failed to insert employee", err)
	}

	log.Info("created employee",
		slog.Int64("employee_id", employee.ID),
		slog.String("email", employee.Email))
	return employee, nil
}

// Get implements EmployeeService.Get
func (s *employeeServiceImpl) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	employee, err := s.employeeStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("employee not found", slog.Int64("employee_id", id))
			return nil, NewEmployeeServiceError("get", "employee not found", err)
		}
		log.Error("failed to retrieve employee",
			slog.String("error", err.Error()),
			slog.Int64("employee_id", id))
		return nil, NewEmployeeServiceError("get", "failed to retrieve employee", err)
	}

	return employee, nil
}

// List implements EmployeeService.List
func (s *employeeServiceImpl) List(
	ctx context.Context,
	filters store.EmployeeFilters,
) ([]*domain.Employee, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	employees, total, err := s.employeeStore.List(ctx, filters)
	if err != nil {
		log.Error("failed to list employees", slog.String("error", err.Error()))
		return nil, 0, NewEmployeeServiceError("list", "failed to list employees", err)
	}

	log.Debug("listed employees",
		slog.Int("page_count", len(employees)),
		slog.Int64("total", total))
	return employees, total, nil
}

// Update implements EmployeeService.Update
// Only the fields present in the patch change; the email uniqueness check is
// repeated when the patch moves the employee to a different address.
func (s *employeeServiceImpl) Update(
	ctx context.Context,
	id int64,
	patch domain.EmployeePatch,
) (*domain.Employee, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	employee, err := s.employeeStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewEmployeeServiceError("update", "employee not found", err)
		}
		log.Error("failed to load employee for update",
			slog.String("error", err.Error()),
			slog.Int64("employee_id", id))
		return nil, NewEmployeeServiceError("update", "failed to load employee", err)
	}

	// A payload with no recognized fields changes nothing.
	if patch.IsEmpty() {
		log.Debug("empty patch, nothing to update", slog.Int64("employee_id", id))
		return employee, nil
	}

	if email, ok := patch.Email.Get(); ok {
		normalized := domain.NormalizeEmail(email)
		if normalized != employee.Email {
			existing, lookupErr := s.employeeStore.GetByEmail(ctx, normalized)
			if lookupErr != nil && !store.IsNotFoundError(lookupErr) {
				log.Error("failed to check email uniqueness",
					slog.String("error", lookupErr.Error()),
					slog.String("email", normalized))
				return nil, NewEmployeeServiceError("update", "failed to check email uniqueness", lookupErr)
			}
			if existing != nil {
				return nil, NewEmployeeServiceError("update", "email already taken", store.ErrEmailExists)
			}
		}
	}

	if err := patch.Apply(employee); err != nil {
		return nil, err
	}

	if err := s.employeeStore.Update(ctx, employee); err != nil {
		if store.IsDuplicateError(err) {
			return nil, NewEmployeeServiceError("update", "email already taken", err)
		}
		log.Error("failed to persist employee update",
			slog.String("error", err.Error()),
			slog.Int64("employee_id", id))
		return nil, NewEmployeeServiceError("update", "failed to persist employee", err)
	}

	log.Info("updated employee", slog.Int64("employee_id", id))
	return employee, nil
}

// Delete implements EmployeeService.Delete
func (s *employeeServiceImpl) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.employeeStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return NewEmployeeServiceError("delete", "employee not found", err)
		}
		log.Error("failed to delete employee",
			slog.String("error", err.Error()),
			slog.Int64("employee_id", id))
		return NewEmployeeServiceError("delete", "failed to delete employee", err)
	}

	log.Info("deleted employee", slog.Int64("employee_id", id))
	return nil
}
