package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindsSurviveWrapping(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", Field("reservedAmount", "gt", "must be greater than 0"), IsValidation},
		{"not found", NotFound("property", "p-1"), IsNotFound},
		{"conflict", Conflict("Cannot %s", "reserve"), IsConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("usecase: %w", tc.err)
			assert.True(t, tc.check(wrapped))
			assert.True(t, IsCaller(wrapped))
		})
	}
}

func TestIsCaller_Internal(t *testing.T) {
	assert.False(t, IsCaller(errors.New("connection refused")))
	assert.False(t, IsCaller(nil))
}

func TestMessages(t *testing.T) {
	require.Equal(t, `property with id "p-9" not found`, NotFound("property", "p-9").Error())

	ve := Validation(
		FieldError{Path: "rejectedReason", Code: "required", Message: "is required"},
		FieldError{Path: "rejectedAt", Code: "datestr", Message: "must be a date"},
	)
	require.Equal(t, "validation failed: rejectedReason is required; rejectedAt must be a date", ve.Error())
	require.Equal(t, "x", Conflict("x").Error())
}
