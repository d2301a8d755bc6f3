package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/staff-api/internal/domain"
	"github.com/phrazzld/staff-api/internal/store"
)

// mockEmployeeStore is a hand-written test double for store.EmployeeStore.
// Tests set only the function fields they expect to be called; an unexpected
// call panics with a nil function, which surfaces immediately in the test.
type mockEmployeeStore struct {
	listFn       func(ctx context.Context, filters store.EmployeeFilters) ([]*domain.Employee, int64, error)
	getByIDFn    func(ctx context.Context, id int64) (*domain.Employee, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.Employee, error)
	insertFn     func(ctx context.Context, employee *domain.Employee) error
	updateFn     func(ctx context.Context, employee *domain.Employee) error
	deleteFn     func(ctx context.Context, id int64) error
}

var _ store.EmployeeStore = (*mockEmployeeStore)(nil)

func (m *mockEmployeeStore) List(
	ctx context.Context,
	filters store.EmployeeFilters,
) ([]*domain.Employee, int64, error) {
	return m.listFn(ctx, filters)
}

func (m *mockEmployeeStore) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockEmployeeStore) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockEmployeeStore) Insert(ctx context.Context, employee *domain.Employee) error {
	return m.insertFn(ctx, employee)
}

func (m *mockEmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	return m.updateFn(ctx, employee)
}

func (m *mockEmployeeStore) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockEmployeeStore) WithTx(tx *sql.Tx) store.EmployeeStore {
	return m
}
