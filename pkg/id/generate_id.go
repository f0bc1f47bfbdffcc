package id

import (
	"regexp"

	"github.com/google/uuid"
)

var reUUID = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// New returns a canonical lowercase UUIDv7. Ids sort by creation time.
func New() string {
	u, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return u.String()
}

// Valid reports whether s is a canonical lowercase UUID.
func Valid(s string) bool { return reUUID.MatchString(s) }
