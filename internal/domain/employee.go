package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Field length limits enforced by both the entity and the database schema.
// Lengths count characters, not bytes, matching VARCHAR(n) semantics.
const (
	MaxNameLength       = 120
	MaxEmailLength      = 120
	MaxDepartmentLength = 100
)

// Employee represents a single employee record.
// Department and Salary are optional; a nil pointer means the value is unset.
type Employee struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department *string   `json:"department"`
	Salary     *float64  `json:"salary"`
	DateJoined time.Time `json:"date_joined"`
}

// NewEmployee creates a new Employee with the given fields.
// The email is normalized (trimmed, lowercased) so that uniqueness checks are
// case-insensitive. The ID is assigned later by the persistence layer;
// DateJoined is set to the current time.
// Returns an error if validation fails.
func NewEmployee(name, email string, department *string, salary *float64) (*Employee, error) {
	employee := &Employee{
		Name:       strings.TrimSpace(name),
		Email:      NormalizeEmail(email),
		Department: department,
		Salary:     salary,
		DateJoined: time.Now().UTC(),
	}

	if err := employee.Validate(); err != nil {
		return nil, err
	}

	return employee, nil
}

// Validate checks if the Employee has valid data.
// All field problems are reported, joined into a single error.
func (e *Employee) Validate() error {
	var errs []error

	if e.Name == "" {
		errs = append(errs, NewValidationError("name", "cannot be empty", nil))
	} else if utf8.RuneCountInString(e.Name) > MaxNameLength {
		errs = append(errs, NewValidationError("name", "too long", nil))
	}

	if e.Email == "" {
		errs = append(errs, NewValidationError("email", "cannot be empty", nil))
	} else if utf8.RuneCountInString(e.Email) > MaxEmailLength {
		errs = append(errs, NewValidationError("email", "too long", nil))
	} else if _, err := mail.ParseAddress(e.Email); err != nil {
		errs = append(errs, NewValidationError("email", "invalid email format", ErrInvalidEmail))
	}

	if e.Department != nil && utf8.RuneCountInString(*e.Department) > MaxDepartmentLength {
		errs = append(errs, NewValidationError("department", "too long", nil))
	}

	if e.Salary != nil && *e.Salary < 0 {
		errs = append(errs, NewValidationError("salary", "must be non-negative", nil))
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// NormalizeEmail returns the canonical form of an email address used for
// storage and uniqueness comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
