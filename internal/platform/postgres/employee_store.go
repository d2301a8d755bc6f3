package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/staff-api/internal/domain"
	"github.com/phrazzld/staff-api/internal/store"
)

// employeeColumns is the column list shared by every SELECT in this file.
const employeeColumns = "id, name, email, department, salary, date_joined"

// sortColumns maps the exposed sort field names to table columns, derived
// from store.SortableFields (exposed names match column names). Callers
// validate the sort field before it reaches the store; anything not in this
// map falls back to the primary key.
var sortColumns = func() map[string]string {
	columns := make(map[string]string, len(store.SortableFields))
	for _, field := range store.SortableFields {
		columns[field] = field
	}
	return columns
}()

// PostgresEmployeeStore implements the store.EmployeeStore interface
// using a PostgreSQL database as the storage backend.
type PostgresEmployeeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEmployeeStore creates a new PostgreSQL implementation of the
// EmployeeStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresEmployeeStore(db store.DBTX, logger *slog.Logger) *PostgresEmployeeStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEmployeeStore{
		db:     db,
		logger: logger.With(slog.String("component", "employee_store")),
	}
}

// Ensure PostgresEmployeeStore implements store.EmployeeStore interface
var _ store.EmployeeStore = (*PostgresEmployeeStore)(nil)

// WithTx implements store.EmployeeStore.WithTx
func (s *PostgresEmployeeStore) WithTx(tx *sql.Tx) store.EmployeeStore {
	return &PostgresEmployeeStore{
		db:     tx,
		logger: s.logger,
	}
}

// List implements store.EmployeeStore.List
// It runs two queries against the same predicate: a COUNT(*) for the total
// before pagination, then the page query with sorting and offset/limit.
func (s *PostgresEmployeeStore) List(
	ctx context.Context,
	filters store.EmployeeFilters,
) ([]*domain.Employee, int64, error) {
	where, args := buildListPredicate(filters)

	var total int64
	countQuery := "SELECT COUNT(*) FROM employees" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, store.NewStoreError("employee", "list", "failed to count employees", MapError(err))
	}

	query := fmt.Sprintf(
		"SELECT %s FROM employees%s ORDER BY %s LIMIT $%d OFFSET $%d",
		employeeColumns,
		where,
		orderClause(filters.Sort, filters.Order),
		len(args)+1,
		len(args)+2,
	)
	args = append(args, filters.PageSize, filters.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, store.NewStoreError("employee", "list", "failed to query employees", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	employees := make([]*domain.Employee, 0, filters.PageSize)
	for rows.Next() {
		employee, scanErr := scanEmployee(rows)
		if scanErr != nil {
			return nil, 0, store.NewStoreError("employee", "list", "failed to scan employee row", scanErr)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, store.NewStoreError("employee", "list", "failed to iterate employee rows", MapError(err))
	}

	return employees, total, nil
}

// GetByID implements store.EmployeeStore.GetByID
func (s *PostgresEmployeeStore) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query := fmt.Sprintf("SELECT %s FROM employees WHERE id = $1", employeeColumns)

	employee, err := scanEmployee(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrEmployeeNotFound
		}
		return nil, store.NewStoreError("employee", "get_by_id", "failed to get employee", MapError(err))
	}

	return employee, nil
}

// GetByEmail implements store.EmployeeStore.GetByEmail
func (s *PostgresEmployeeStore) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := fmt.Sprintf("SELECT %s FROM employees WHERE email = $1", employeeColumns)

	employee, err := scanEmployee(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrEmployeeNotFound
		}
		return nil, store.NewStoreError("employee", "get_by_email", "failed to get employee", MapError(err))
	}

	return employee, nil
}

// Insert implements store.EmployeeStore.Insert
// The store assigns the ID; the employee is mutated in place with it.
func (s *PostgresEmployeeStore) Insert(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (name, email, department, salary, date_joined)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		employee.Name,
		employee.Email,
		employee.Department,
		employee.Salary,
		employee.DateJoined,
	).Scan(&employee.ID)
	if err != nil {
		// A concurrent request may have claimed the email between the
		// service-level pre-check and this insert.
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrEmailExists)
		}
		return store.NewStoreError("employee", "insert", "failed to insert employee", MapError(err))
	}

	s.logger.Debug("inserted employee",
		slog.Int64("employee_id", employee.ID),
		slog.String("email", employee.Email))
	return nil
}

// Update implements store.EmployeeStore.Update
// DateJoined is immutable and deliberately left out of the SET list.
func (s *PostgresEmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET name = $1, email = $2, department = $3, salary = $4
		WHERE id = $5`

	result, err := s.db.ExecContext(ctx, query,
		employee.Name,
		employee.Email,
		employee.Department,
		employee.Salary,
		employee.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrEmailExists)
		}
		return store.NewStoreError("employee", "update", "failed to update employee", MapError(err))
	}

	if err := CheckRowsAffected(result, "employee"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrEmployeeNotFound
		}
		return store.NewStoreError("employee", "update", "failed to verify update result", err)
	}

	s.logger.Debug("updated employee", slog.Int64("employee_id", employee.ID))
	return nil
}

// Delete implements store.EmployeeStore.Delete
// This is a hard delete; IDs are never reused (BIGSERIAL).
func (s *PostgresEmployeeStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return store.NewStoreError("employee", "delete", "failed to delete employee", MapError(err))
	}

	if err := CheckRowsAffected(result, "employee"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrEmployeeNotFound
		}
		return store.NewStoreError("employee", "delete", "failed to verify delete result", err)
	}

	s.logger.Debug("deleted employee", slog.Int64("employee_id", id))
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEmployee hydrates a domain.Employee from one result row.
func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var (
		employee   domain.Employee
		department sql.NullString
		salary     sql.NullFloat64
	)

	err := row.Scan(
		&employee.ID,
		&employee.Name,
		&employee.Email,
		&department,
		&salary,
		&employee.DateJoined,
	)
	if err != nil {
		return nil, err
	}

	if department.Valid {
		employee.Department = &department.String
	}
	if salary.Valid {
		employee.Salary = &salary.Float64
	}

	return &employee, nil
}

// buildListPredicate builds the WHERE clause for List from the filters.
// All present filters are AND-combined. Returns the clause (with a leading
// " WHERE", or empty) and the positional arguments.
func buildListPredicate(filters store.EmployeeFilters) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if filters.Department != "" {
		args = append(args, filters.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)))
	}
	if filters.MinSalary != nil {
		args = append(args, *filters.MinSalary)
		conditions = append(conditions, fmt.Sprintf("salary >= $%d", len(args)))
	}
	if filters.MaxSalary != nil {
		args = append(args, *filters.MaxSalary)
		conditions = append(conditions, fmt.Sprintf("salary <= $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause maps the sort field and order to a SQL ORDER BY expression.
// The field is mapped through the sortColumns whitelist so user input never
// reaches the query as an identifier.
func orderClause(sort, order string) string {
	column, ok := sortColumns[sort]
	if !ok {
		column = "id"
	}

	direction := "ASC"
	if strings.EqualFold(order, store.OrderDesc) {
		direction = "DESC"
	}

	return column + " " + direction
}
