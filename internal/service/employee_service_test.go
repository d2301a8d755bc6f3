package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/staff-api/internal/domain"
	"github.com/phrazzld/staff-api/internal/store"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func validEmployee(t *testing.T) *domain.Employee {
	t.Helper()
	employee, err := domain.NewEmployee("Test User", "test@example.com", strPtr("QA"), floatPtr(50000))
	require.NoError(t, err)
	return employee
}

func TestNewEmployeeService(t *testing.T) {
	t.Run("nil store is rejected", func(t *testing.T) {
		svc, err := NewEmployeeService(nil, nil)
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		svc, err := NewEmployeeService(&mockEmployeeStore{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestEmployeeServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a new employee", func(t *testing.T) {
		employee := validEmployee(t)
		mock := &mockEmployeeStore{
			getByEmailFn: func(ctx context.Context, email string) (*domain.Employee, error) {
				assert.Equal(t, "test@example.com", email)
				return nil, store.ErrEmployeeNotFound
			},
			insertFn: func(ctx context.Context, e *domain.Employee) error {
				e.ID = 42 // store assigns the ID
				return nil
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		created, err := svc.Create(ctx, employee)
		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		insertCalled := false
		mock := &mockEmployeeStore{
			getByEmailFn: func(ctx context.Context, email string) (*domain.Employee, error) {
				return &domain.Employee{ID: 1, Email: email}, nil
			},
			insertFn: func(ctx context.Context, e *domain.Employee) error {
				insertCalled = true
				return nil
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		created, err := svc.Create(ctx, validEmployee(t))
		assert.Nil(t, created)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.False(t, insertCalled, "insert must not run after a failed uniqueness check")
	})

	t.Run("remaps a lost insert race to duplicate email", func(t *testing.T) {
		mock := &mockEmployeeStore{
			getByEmailFn: func(ctx context.Context, email string) (*domain.Employee, error) {
				return nil, store.ErrEmployeeNotFound
			},
			insertFn: func(ctx context.Context, e *domain.Employee) error {
				// A concurrent request claimed the email between check and insert.
				return store.ErrEmailExists
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		_, err = svc.Create(ctx, validEmployee(t))
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("propagates uniqueness check failures", func(t *testing.T) {
		cause := errors.New("connection refused")
		mock := &mockEmployeeStore{
			getByEmailFn: func(ctx context.Context, email string) (*domain.Employee, error) {
				return nil, cause
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		_, err = svc.Create(ctx, validEmployee(t))
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestEmployeeServiceGet(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the employee", func(t *testing.T) {
		mock := &mockEmployeeStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Employee, error) {
				assert.Equal(t, int64(7), id)
				return &domain.Employee{ID: 7, Name: "A", Email: "a@b.com"}, nil
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		employee, err := svc.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), employee.ID)
	})

	t.Run("missing employee maps to not found", func(t *testing.T) {
		mock := &mockEmployeeStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Employee, error) {
				return nil, store.ErrEmployeeNotFound
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		_, err = svc.Get(ctx, 999)
		assert.ErrorIs(t, err, store.ErrEmployeeNotFound)
	})
}

func TestEmployeeServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns page and pre-pagination total", func(t *testing.T) {
		filters := store.EmployeeFilters{Department: "IT", Page: 2, PageSize: 10}
		mock := &mockEmployeeStore{
			listFn: func(ctx context.Context, got store.EmployeeFilters) ([]*domain.Employee, int64, error) {
				assert.Equal(t, filters, got)
				return []*domain.Employee{{ID: 11}, {ID: 12}}, 25, nil
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		employees, total, err := svc.List(ctx, filters)
		require.NoError(t, err)
		assert.Len(t, employees, 2)
		assert.Equal(t, int64(25), total)
	})

	t.Run("propagates store failures", func(t *testing.T) {
		cause := errors.New("query failed")
		mock := &mockEmployeeStore{
			listFn: func(ctx context.Context, got store.EmployeeFilters) ([]*domain.Employee, int64, error) {
				return nil, 0, cause
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		_, _, err = svc.List(ctx, store.EmployeeFilters{})
		assert.ErrorIs(t, err, cause)
	})
}

func TestEmployeeServiceUpdate(t *testing.T) {
	ctx := context.Background()

	current := func() *domain.Employee {
		return &domain.Employee{
			ID:         7,
			Name:       "Original",
			Email:      "original@example.com",
			Department: strPtr("IT"),
			Salary:     floatPtr(60000),
		}
	}

	t.Run("applies only supplied fields", func(t *testing.T) {
		var persisted *domain.Employee
		mock := &mockEmployeeStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Employee, error) {
				return current(), nil
			},
			updateFn: func(ctx context.Context, e *domain.Employee) error {
				persisted = e
				return nil
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, 7, domain.EmployeePatch{Name: domain.Some("X")})
		require.NoError(t, err)

		assert.Equal(t, "X", updated.Name)
		assert.Equal(t, "original@example.com", updated.Email)
		require.NotNil(t, updated.Department)
		assert.Equal(t, "IT", *updated.Department)
		assert.Equal(t, persisted, updated)
	})

	t.Run("empty patch returns the stored employee untouched", func(t *testing.T) {
		mock := &mockEmployeeStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Employee, error) {
				return current(), nil
			},
			updateFn: func(ctx context.Context, e *domain.Employee) error {
				t.Fatal("store update must not run for an empty patch")
				return nil
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, 7, domain.EmployeePatch{})
		require.NoError(t, err)
		assert.Equal(t, current(), updated)
	})

	t.Run("missing employee maps to not found", func(t *testing.T) {
		mock := &mockEmployeeStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Employee, error) {
				return nil, store.ErrEmployeeNotFound
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		_, err = svc.Update(ctx, 999, domain.EmployeePatch{Name: domain.Some("X")})
		assert.ErrorIs(t, err, store.ErrEmployeeNotFound)
	})

	t.Run("rejects changing to a taken email", func(t *testing.T) {
		updateCalled := false
		mock := &mockEmployeeStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Employee, error) {
				return current(), nil
			},
			getByEmailFn: func(ctx context.Context, email string) (*domain.Employee, error) {
				assert.Equal(t, "taken@example.com", email)
				return &domain.Employee{ID: 8, Email: email}, nil
			},
			updateFn: func(ctx context.Context, e *domain.Employee) error {
				updateCalled = true
				return nil
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		_, err = svc.Update(ctx, 7, domain.EmployeePatch{Email: domain.Some("Taken@Example.com")})
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.False(t, updateCalled)
	})

	t.Run("keeping the current email skips the uniqueness check", func(t *testing.T) {
		mock := &mockEmployeeStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Employee, error) {
				return current(), nil
			},
			getByEmailFn: func(ctx context.Context, email string) (*domain.Employee, error) {
				t.Fatal("uniqueness check must not run for an unchanged email")
				return nil, nil
			},
			updateFn: func(ctx context.Context, e *domain.Employee) error {
				return nil
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, 7, domain.EmployeePatch{
			// Same address, different case: normalizes to the current value.
			Email: domain.Some("Original@Example.com"),
			Name:  domain.Some("Renamed"),
		})
		require.NoError(t, err)
		assert.Equal(t, "original@example.com", updated.Email)
		assert.Equal(t, "Renamed", updated.Name)
	})

	t.Run("invalid patch fails validation before persisting", func(t *testing.T) {
		mock := &mockEmployeeStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Employee, error) {
				return current(), nil
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		_, err = svc.Update(ctx, 7, domain.EmployeePatch{Salary: domain.Some(floatPtr(-10))})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("remaps a lost update race to duplicate email", func(t *testing.T) {
		mock := &mockEmployeeStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Employee, error) {
				return current(), nil
			},
			getByEmailFn: func(ctx context.Context, email string) (*domain.Employee, error) {
				return nil, store.ErrEmployeeNotFound
			},
			updateFn: func(ctx context.Context, e *domain.Employee) error {
				return store.ErrEmailExists
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		_, err = svc.Update(ctx, 7, domain.EmployeePatch{Email: domain.Some("new@example.com")})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestEmployeeServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the employee", func(t *testing.T) {
		var deletedID int64
		mock := &mockEmployeeStore{
			deleteFn: func(ctx context.Context, id int64) error {
				deletedID = id
				return nil
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, 7))
		assert.Equal(t, int64(7), deletedID)
	})

	t.Run("missing employee maps to not found", func(t *testing.T) {
		mock := &mockEmployeeStore{
			deleteFn: func(ctx context.Context, id int64) error {
				return store.ErrEmployeeNotFound
			},
		}
		svc, err := NewEmployeeService(mock, nil)
		require.NoError(t, err)

		err = svc.Delete(ctx, 999)
		assert.ErrorIs(t, err, store.ErrEmployeeNotFound)
	})
}
