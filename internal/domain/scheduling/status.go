package scheduling

import (
	"math"
	"time"

	"github.com/aviseihq/avisei-api/internal/httperr"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Active statuses are the ones that occupy a slot in conflict checks.
func (s Status) Active() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

func InitialStatus() Status {
	return StatusScheduled
}

// Policy bundles the configurable lifecycle rules. StrictConfirm decides
// the historically ambiguous case of confirming an appointment that is
// already completed or cancelled: true blocks it for every actor, false
// keeps the legacy behavior of letting staff re-confirm terminal rows.
type Policy struct {
	CancelLeadTimeMin int
	StrictConfirm     bool
}

func DefaultPolicy() Policy {
	return Policy{
		CancelLeadTimeMin: 40,
		StrictConfirm:     true,
	}
}

func (p Policy) CanConfirm(current Status) error {
	if p.StrictConfirm && current.Terminal() {
		return httperr.Validation("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current == StatusCompleted {
		return httperr.Validation("appointment_already_completed")
	}
	if current == StatusCancelled {
		return httperr.Validation("appointment_already_cancelled")
	}
	return nil
}

func CanComplete(current Status) error {
	if current.Terminal() {
		return httperr.Validation("invalid_state")
	}
	return nil
}

// CheckLeadTime enforces the client-side minimum lead time: the
// appointment start must be at least CancelLeadTimeMin minutes after
// now. The error carries the remaining whole minutes for user feedback.
func (p Policy) CheckLeadTime(now, start time.Time) error {
	remaining := start.Sub(now).Minutes()
	if remaining < float64(p.CancelLeadTimeMin) {
		return httperr.ConflictDetails("lead_time_violation", map[string]any{
			"minutes_until_appointment": int(math.Floor(remaining)),
			"required_minutes":          p.CancelLeadTimeMin,
		})
	}
	return nil
}
