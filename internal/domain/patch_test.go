package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUnmarshalJSON(t *testing.T) {
	type payload struct {
		Name       Optional[string]   `json:"name"`
		Department Optional[*string]  `json:"department"`
		Salary     Optional[*float64] `json:"salary"`
	}

	t.Run("absent field stays unset", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))

		assert.False(t, p.Name.IsSet())
		assert.False(t, p.Department.IsSet())
		assert.False(t, p.Salary.IsSet())
	})

	t.Run("present field is set", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name":"X"}`), &p))

		name, ok := p.Name.Get()
		require.True(t, ok)
		assert.Equal(t, "X", name)
		assert.False(t, p.Department.IsSet())
	})

	t.Run("explicit null is set with nil value", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"department":null}`), &p))

		department, ok := p.Department.Get()
		require.True(t, ok, "null must count as supplied")
		assert.Nil(t, department)
	})
}

func TestEmployeePatchApply(t *testing.T) {
	base := func() *Employee {
		return &Employee{
			ID:         7,
			Name:       "Original",
			Email:      "original@example.com",
			Department: strPtr("IT"),
			Salary:     floatPtr(60000),
		}
	}

	t.Run("applies only supplied fields", func(t *testing.T) {
		employee := base()
		patch := EmployeePatch{Name: Some("X")}
		require.NoError(t, patch.Apply(employee))

		assert.Equal(t, "X", employee.Name)
		assert.Equal(t, "original@example.com", employee.Email)
		require.NotNil(t, employee.Department)
		assert.Equal(t, "IT", *employee.Department)
		require.NotNil(t, employee.Salary)
		assert.Equal(t, 60000.0, *employee.Salary)
	})

	t.Run("normalizes a new email", func(t *testing.T) {
		employee := base()
		patch := EmployeePatch{Email: Some("New@Example.COM")}
		require.NoError(t, patch.Apply(employee))
		assert.Equal(t, "new@example.com", employee.Email)
	})

	t.Run("explicit null clears nullable fields", func(t *testing.T) {
		employee := base()
		patch := EmployeePatch{
			Department: Some[*string](nil),
			Salary:     Some[*float64](nil),
		}
		require.NoError(t, patch.Apply(employee))
		assert.Nil(t, employee.Department)
		assert.Nil(t, employee.Salary)
	})

	t.Run("invalid patch leaves the employee unchanged", func(t *testing.T) {
		employee := base()
		patch := EmployeePatch{
			Name:   Some(""),
			Salary: Some(floatPtr(-1)),
		}
		err := patch.Apply(employee)
		require.Error(t, err)

		assert.Equal(t, "Original", employee.Name)
		require.NotNil(t, employee.Salary)
		assert.Equal(t, 60000.0, *employee.Salary)
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		employee := base()
		patch := EmployeePatch{}
		assert.True(t, patch.IsEmpty())
		require.NoError(t, patch.Apply(employee))
		assert.Equal(t, *base(), *employee)
	})
}
