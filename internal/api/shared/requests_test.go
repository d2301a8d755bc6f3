package shared

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"

	validatorlib "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("decodes a valid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/",
			bytes.NewBufferString(`{"name":"A","email":"a@b.com"}`))

		var target decodeTarget
		require.NoError(t, DecodeJSON(req, &target))
		assert.Equal(t, "A", target.Name)
		assert.Equal(t, "a@b.com", target.Email)
	})

	t.Run("ignores unknown fields", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/",
			bytes.NewBufferString(`{"name":"A","unexpected":true}`))

		var target decodeTarget
		require.NoError(t, DecodeJSON(req, &target))
		assert.Equal(t, "A", target.Name)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"name":`))

		var target decodeTarget
		assert.Error(t, DecodeJSON(req, &target))
	})
}

type taggedRequest struct {
	FullName string `json:"full_name" validate:"required"`
}

type selfValidating struct {
	fail bool
}

func (s *selfValidating) Validate() error {
	if s.fail {
		return errors.New("custom validation failed")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	t.Run("reports fields by their json names", func(t *testing.T) {
		err := ValidateRequest(taggedRequest{})
		require.Error(t, err)

		var fieldErrors validatorlib.ValidationErrors
		require.ErrorAs(t, err, &fieldErrors)
		require.Len(t, fieldErrors, 1)
		assert.Equal(t, "full_name", fieldErrors[0].Field())
	})

	t.Run("valid struct passes", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(taggedRequest{FullName: "A"}))
	})

	t.Run("prefers a type's own Validate method", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(&selfValidating{}))

		err := ValidateRequest(&selfValidating{fail: true})
		require.Error(t, err)
		assert.EqualError(t, err, "custom validation failed")
	})
}
