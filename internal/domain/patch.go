package domain

import (
	"encoding/json"
	"strings"
)

// Optional is a presence-aware value used for partial updates.
// It distinguishes a field that was absent from the payload from one that was
// explicitly supplied, including an explicit null (T itself may be a pointer).
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding the given value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, set: true}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value was supplied.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// UnmarshalJSON records that the field was present in the payload.
// It is only invoked for keys that appear in the JSON document, so an
// absent field leaves the Optional unset.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON serializes the wrapped value. Unset values encode as null;
// callers that need to omit unset fields should check IsSet first.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.value)
}

// EmployeePatch is a typed partial update for an Employee. Only fields that
// were explicitly supplied are applied; Department and Salary accept an
// explicit null to clear the stored value.
type EmployeePatch struct {
	Name       Optional[string]   `json:"name"`
	Email      Optional[string]   `json:"email"`
	Department Optional[*string]  `json:"department"`
	Salary     Optional[*float64] `json:"salary"`
}

// IsEmpty reports whether the patch carries no changes.
func (p EmployeePatch) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Email.IsSet() && !p.Department.IsSet() && !p.Salary.IsSet()
}

// Apply mutates the employee with the supplied fields and re-validates the
// result. The employee is left unchanged if validation fails.
func (p EmployeePatch) Apply(e *Employee) error {
	updated := *e

	if name, ok := p.Name.Get(); ok {
		updated.Name = strings.TrimSpace(name)
	}
	if email, ok := p.Email.Get(); ok {
		updated.Email = NormalizeEmail(email)
	}
	if department, ok := p.Department.Get(); ok {
		updated.Department = department
	}
	if salary, ok := p.Salary.Get(); ok {
		updated.Salary = salary
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	*e = updated
	return nil
}
