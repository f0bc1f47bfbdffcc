package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/internal/apperr"
)

type status string

func TestJoinQuoted(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"Approved"}, `"Approved"`},
		{[]string{"New", "Under Review"}, `"New" or "Under Review"`},
		{[]string{"New", "Under Review", "Approved"}, `"New", "Under Review", or "Approved"`},
		{[]string{"New", "Under Review", "Approved", "Reserved"}, `"New", "Under Review", "Approved", or "Reserved"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinQuoted(tt.in))
	}
}

func TestCheck_Allowed(t *testing.T) {
	require.NoError(t, Check("application", "reject", status("New"), "New", "Under Review"))
}

func TestCheck_Rejected(t *testing.T) {
	err := Check("application", "reject", status("Approved"), "New", "Under Review")
	require.Error(t, err)
	require.True(t, apperr.IsConflict(err))
	assert.Equal(t,
		`Cannot reject application with status "Approved". Application must be in "New" or "Under Review" status.`,
		err.Error())
}

func TestCheck_EntityIsCapitalized(t *testing.T) {
	err := Check("visit", "complete", status("Cancelled"), "Scheduled")
	assert.Equal(t,
		`Cannot complete visit with status "Cancelled". Visit must be in "Scheduled" status.`,
		err.Error())
}
