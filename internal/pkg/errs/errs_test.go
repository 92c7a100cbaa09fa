package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("unique violation")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "not found",
			err:      errs.NewObjectNotFoundError("orderId", "o-1"),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: o-1",
		},
		{
			name:     "not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("orderId", "o-1", cause),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: orderId, ID is: o-1 (cause: unique violation)",
		},
		{
			name:     "already exists",
			err:      errs.NewObjectAlreadyExistsError("code", "SKU-1"),
			sentinel: errs.ErrObjectAlreadyExists,
			message:  "object already exists: code is SKU-1",
		},
		{
			name:     "already exists with cause",
			err:      errs.NewObjectAlreadyExistsErrorWithCause("email", "a@b.io", cause),
			sentinel: errs.ErrObjectAlreadyExists,
			message:  "object already exists: email is a@b.io (cause: unique violation)",
		},
		{
			name:     "invalid",
			err:      errs.NewValueIsInvalidError("email"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: email",
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("phone", errors.New("failed phone")),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: phone (cause: failed phone)",
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("quantity", 0, 1, "unbounded"),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 0 is quantity, min value is 1, max value is unbounded",
		},
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("clientId"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: clientId",
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("carrierId", cause),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: carrierId (cause: unique violation)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			assert.True(t, errs.IsDomain(tt.err))
		})
	}
}

func TestOutOfRangeFlattensMultilineValues(t *testing.T) {
	err := errs.NewValueIsOutOfRangeErrorWithCause("notes", "line one\nline two", 0, 10, errors.New("too long"))

	assert.NotContains(t, err.Error(), "\n")
	assert.Contains(t, err.Error(), "line one line two")
	assert.Contains(t, err.Error(), "(cause: too long)")
}

func TestErrorsAsRecoversDetails(t *testing.T) {
	wrapped := fmt.Errorf("create order: %w", errs.NewObjectNotFoundError("routeId", "r-9"))

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, "routeId", notFound.ParamName)
	assert.Equal(t, "r-9", notFound.ID)

	joined := errors.Join(errs.NewValueIsRequiredError("name"), errs.NewValueIsOutOfRangeError("endHour", 30, 1, 23))
	var outOfRange *errs.ValueIsOutOfRangeError
	require.ErrorAs(t, joined, &outOfRange)
	assert.Equal(t, 23, outOfRange.Max)
}

func TestInfrastructureError(t *testing.T) {
	err := errs.NewInfrastructureError("commit", context.DeadlineExceeded)

	assert.Equal(t, "infrastructure failure: commit (cause: context deadline exceeded)", err.Error())
	require.ErrorIs(t, err, errs.ErrInfrastructure)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, errs.IsDomain(err))
}

func TestIsDomain(t *testing.T) {
	assert.False(t, errs.IsDomain(nil))
	assert.False(t, errs.IsDomain(errors.New("boom")))
	assert.True(t, errs.IsDomain(fmt.Errorf("wrapped: %w", errs.NewValueIsInvalidError("x"))))
}

func TestCauseStaysInChain(t *testing.T) {
	inactive := errors.New("client is inactive")
	cause := fmt.Errorf("%w: ana@example.com", inactive)

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", errs.NewObjectNotFoundErrorWithCause("clientId", "c-1", cause), errs.ErrObjectNotFound},
		{"already exists", errs.NewObjectAlreadyExistsErrorWithCause("email", "a@b.io", cause), errs.ErrObjectAlreadyExists},
		{"invalid", errs.NewValueIsInvalidErrorWithCause("clientId", cause), errs.ErrValueIsInvalid},
		{"out of range", errs.NewValueIsOutOfRangeErrorWithCause("quantity", 0, 1, 10, cause), errs.ErrValueIsOutOfRange},
		{"required", errs.NewValueIsRequiredErrorWithCause("clientId", cause), errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("create order: %w", tt.err)

			require.ErrorIs(t, wrapped, tt.sentinel)
			require.ErrorIs(t, wrapped, inactive)
		})
	}

	t.Run("no cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("clientId")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.NotErrorIs(t, err, inactive)
	})
}
