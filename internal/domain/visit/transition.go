package visit

import (
	"strings"
	"time"

	"rental-backend/internal/apperr"
	"rental-backend/internal/domain/guard"
)

type Action string

const (
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionNoShow   Action = "no-show"
)

type Payload struct {
	At     time.Time
	Reason string
}

// Every visit action leaves Scheduled; the outcomes are terminal.
var targets = map[Action]Status{
	ActionComplete: StatusCompleted,
	ActionCancel:   StatusCancelled,
	ActionNoShow:   StatusDidNotAttend,
}

var verbs = map[Action]string{
	ActionComplete: "complete",
	ActionCancel:   "cancel",
	ActionNoShow:   "mark no-show for",
}

// Apply is the visit counterpart of application.Apply.
func Apply(current Visit, action Action, p Payload) (Visit, map[string]any, error) {
	to, ok := targets[action]
	if !ok {
		return current, nil, apperr.Field("action", "oneof", "unknown action "+string(action))
	}
	if p.At.IsZero() {
		return current, nil, apperr.Field(atField(action), "required", "is required")
	}
	if action == ActionCancel && strings.TrimSpace(p.Reason) == "" {
		return current, nil, apperr.Field("cancelledReason", "required", "is required")
	}
	if err := guard.Check("visit", verbs[action], current.Status, StatusScheduled); err != nil {
		return current, nil, err
	}

	next := current
	next.Status = to
	at := p.At.UTC()
	fields := map[string]any{"status": to}
	switch action {
	case ActionComplete:
		next.CompletedAt = &at
		fields["completed_at"] = at
	case ActionCancel:
		reason := strings.TrimSpace(p.Reason)
		next.CancelledAt, next.CancelledReason = &at, &reason
		fields["cancelled_at"] = at
		fields["cancelled_reason"] = reason
	case ActionNoShow:
		next.NoShowAt = &at
		fields["no_show_at"] = at
	}
	return next, fields, nil
}

func atField(a Action) string {
	switch a {
	case ActionComplete:
		return "completedAt"
	case ActionCancel:
		return "cancelledAt"
	}
	return "markedAt"
}
