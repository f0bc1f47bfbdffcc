package application

import (
	"strings"
	"time"

	"rental-backend/internal/apperr"
	"rental-backend/internal/domain/guard"
)

type Action string

const (
	ActionStartReview  Action = "start-review"
	ActionApprove      Action = "approve"
	ActionReject       Action = "reject"
	ActionWithdraw     Action = "withdraw"
	ActionReserve      Action = "reserve"
	ActionSignContract Action = "sign-contract"
)

// Actions lists every lifecycle action in table order.
var Actions = []Action{
	ActionStartReview, ActionApprove, ActionReject,
	ActionWithdraw, ActionReserve, ActionSignContract,
}

// Payload carries the typed inputs of a transition. Each action reads only
// the members its rule names.
type Payload struct {
	At     time.Time
	Reason string
	Amount float64
}

// rule is one row of the transition table. The *Field names are the payload
// paths reported in validation errors, the *Column names are storage columns.
type rule struct {
	verb string
	from []Status
	to   Status

	atField, atColumn         string
	reasonField, reasonColumn string
	amountField, amountColumn string
}

var rules = map[Action]rule{
	ActionStartReview: {
		verb: "start review for",
		from: []Status{StatusNew},
		to:   StatusUnderReview,

		atField:  "reviewStartedAt",
		atColumn: "review_started_at",
	},
	ActionApprove: {
		verb: "approve",
		from: []Status{StatusUnderReview},
		to:   StatusApproved,

		atField:  "approvedAt",
		atColumn: "approved_at",
	},
	ActionReject: {
		verb: "reject",
		from: []Status{StatusNew, StatusUnderReview},
		to:   StatusRejected,

		atField:  "rejectedAt",
		atColumn: "rejected_at",

		reasonField:  "rejectedReason",
		reasonColumn: "rejected_reason",
	},
	ActionWithdraw: {
		verb: "withdraw",
		from: []Status{StatusNew, StatusUnderReview, StatusApproved, StatusReserved},
		to:   StatusWithdrawn,

		atField:  "withdrawnAt",
		atColumn: "withdrawn_at",

		reasonField:  "withdrawnReason",
		reasonColumn: "withdrawn_reason",
	},
	ActionReserve: {
		verb: "reserve",
		from: []Status{StatusApproved},
		to:   StatusReserved,

		atField:  "reservedAt",
		atColumn: "reserved_at",

		amountField:  "reservedAmount",
		amountColumn: "reserved_amount",
	},
	ActionSignContract: {
		verb: "sign contract for",
		from: []Status{StatusApproved, StatusReserved},
		to:   StatusContractSigned,

		atField:  "contractSignedAt",
		atColumn: "contract_signed_at",
	},
}

func (a Action) Valid() bool {
	_, ok := rules[a]
	return ok
}

// AllowedFrom returns the source statuses of a in declared order.
func (a Action) AllowedFrom() []Status {
	r := rules[a]
	out := make([]Status, len(r.from))
	copy(out, r.from)
	return out
}

// Target returns the status a leads to.
func (a Action) Target() Status { return rules[a].to }

// Apply evaluates action against current and returns the next state together
// with the exact column set to persist. Payload shape is checked before the
// status guard, so a malformed payload is reported as a validation error
// whatever the current status is. current is never modified.
func Apply(current Application, action Action, p Payload) (Application, map[string]any, error) {
	r, ok := rules[action]
	if !ok {
		return current, nil, apperr.Field("action", "oneof", "unknown action "+string(action))
	}

	if err := r.checkPayload(p); err != nil {
		return current, nil, err
	}
	if err := guard.Check("application", r.verb, current.Status, r.from...); err != nil {
		return current, nil, err
	}

	next := current
	at := p.At.UTC()
	fields := map[string]any{
		"status":   r.to,
		r.atColumn: at,
	}
	next.Status = r.to
	setTime(&next, action, at)

	if r.reasonColumn != "" {
		reason := strings.TrimSpace(p.Reason)
		fields[r.reasonColumn] = reason
		if action == ActionReject {
			next.RejectedReason = &reason
		} else {
			next.WithdrawnReason = &reason
		}
	}
	if r.amountColumn != "" {
		amount := p.Amount
		fields[r.amountColumn] = amount
		next.ReservedAmount = &amount
	}
	return next, fields, nil
}

func (r rule) checkPayload(p Payload) error {
	var fields []apperr.FieldError
	if r.reasonField != "" && strings.TrimSpace(p.Reason) == "" {
		fields = append(fields, apperr.FieldError{Path: r.reasonField, Code: "required", Message: "is required"})
	}
	if p.At.IsZero() {
		fields = append(fields, apperr.FieldError{Path: r.atField, Code: "required", Message: "is required"})
	}
	if r.amountField != "" {
		switch {
		case !(p.Amount > 0):
			fields = append(fields, apperr.FieldError{Path: r.amountField, Code: "gt", Message: "must be greater than 0"})
		case p.Amount > MaxReservedAmount:
			fields = append(fields, apperr.FieldError{Path: r.amountField, Code: "lte", Message: "must be less than or equal to 9999999999.99"})
		}
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

func setTime(a *Application, action Action, at time.Time) {
	switch action {
	case ActionStartReview:
		a.ReviewStartedAt = &at
	case ActionApprove:
		a.ApprovedAt = &at
	case ActionReject:
		a.RejectedAt = &at
	case ActionWithdraw:
		a.WithdrawnAt = &at
	case ActionReserve:
		a.ReservedAt = &at
	case ActionSignContract:
		a.ContractSignedAt = &at
	}
}
