package validation_test

import (
	"testing"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVar(t *testing.T) {
	t.Run("accepts valid email", func(t *testing.T) {
		require.NoError(t, validation.Var("email", "ops@example.com", "required,email"))
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		err := validation.Var("email", "not-an-email", "required,email")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "failed email")
	})

	t.Run("rejects bad hex color", func(t *testing.T) {
		err := validation.Var("color", "#GG0000", "hexcolor")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStruct(t *testing.T) {
	type payload struct {
		Name     string `json:"name" validate:"required"`
		Quantity int    `json:"quantity" validate:"gte=1"`
	}

	t.Run("valid payload", func(t *testing.T) {
		require.NoError(t, validation.Struct(payload{Name: "x", Quantity: 1}))
	})

	t.Run("reports every failing field by json name", func(t *testing.T) {
		err := validation.Struct(payload{Quantity: 0})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "quantity")
		assert.Contains(t, err.Error(), "failed gte=1")
	})
}

func TestPhone(t *testing.T) {
	for _, ok := range []string{"+5491122334455", "12345678", "12345678901234"} {
		require.NoError(t, validation.Phone("phone", ok), ok)
	}
	for _, bad := range []string{"1234567", "123456789012345", "+54 911", "phone"} {
		require.ErrorIs(t, validation.Phone("phone", bad), errs.ErrValueIsInvalid, bad)
	}
}
