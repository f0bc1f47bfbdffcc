// Package guard checks status preconditions for lifecycle actions and renders
// the conflict message callers see when a precondition does not hold.
package guard

import (
	"strings"

	"rental-backend/internal/apperr"
)

// Check returns a *apperr.ConflictError unless current is one of allowed.
// entity is the lowercase noun used in the message ("application", "visit").
func Check[S ~string](entity, verb string, current S, allowed ...S) error {
	for _, s := range allowed {
		if s == current {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	return apperr.Conflict("Cannot %s %s with status %q. %s must be in %s status.",
		verb, entity, string(current), capitalize(entity), JoinQuoted(names))
}

// JoinQuoted renders `"A"`, `"A" or "B"`, `"A", "B", or "C"`.
func JoinQuoted(items []string) string {
	q := make([]string, len(items))
	for i, s := range items {
		q[i] = `"` + s + `"`
	}
	switch len(q) {
	case 0:
		return ""
	case 1:
		return q[0]
	case 2:
		return q[0] + " or " + q[1]
	}
	return strings.Join(q[:len(q)-1], ", ") + ", or " + q[len(q)-1]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
