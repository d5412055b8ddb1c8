package appointment

import (
	"context"

	"github.com/aviseihq/avisei-api/internal/audit"
	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/httperr"
	"github.com/aviseihq/avisei-api/internal/models"
	"github.com/aviseihq/avisei-api/internal/notification"
)

type RescheduleAppointment struct {
	repo     scheduling.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
	clock    scheduling.Clock
	policy   scheduling.Policy
	tz       string
}

func NewRescheduleAppointment(
	repo scheduling.Repository,
	notifier *notification.Dispatcher,
	auditor *audit.Dispatcher,
	clock scheduling.Clock,
	policy scheduling.Policy,
	tz string,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    auditor,
		clock:    clock,
		policy:   policy,
		tz:       tz,
	}
}

// Execute moves the client's own appointment in place. The lead-time
// rule is checked against the ORIGINAL start; the new slot is conflict
// checked excluding the appointment itself; status resets to scheduled.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
	newDate string,
	newTime string,
) (*models.Appointment, error) {

	if actor.Role != identity.RoleClient {
		return nil, httperr.Forbidden("only_clients_can_reschedule")
	}

	if newDate == "" || newTime == "" {
		return nil, httperr.Validation("missing_required_fields")
	}
	if _, err := scheduling.WeekdayOf(newDate); err != nil || !scheduling.ValidClock(newTime) {
		return nil, httperr.Validation("invalid_date_or_time")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found")
	}
	if actor.ID != ap.ClientID {
		return nil, httperr.Forbidden("access_denied")
	}

	if scheduling.Status(ap.Status).Terminal() {
		return nil, httperr.Validation("invalid_state")
	}

	originalStart, err := scheduling.StartInstant(ap.Date, ap.Time, uc.tz)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time")
	}
	if err := uc.policy.CheckLeadTime(uc.clock.Now(), originalStart); err != nil {
		return nil, err
	}

	oldDate, oldTime := ap.Date, ap.Time

	if err := uc.repo.Move(ctx, ap, newDate, newTime); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notification.Event{
		Type:        notification.EventReschedule,
		Appointment: *ap,
		OldDate:     oldDate,
		OldTime:     oldTime,
	})

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: ap.EstablishmentID,
		ActorID:         &actor.ID,
		Action:          "appointment_rescheduled",
		Entity:          "appointment",
		EntityID:        &ap.ID,
		Metadata: map[string]string{
			"old_date": oldDate,
			"old_time": oldTime,
			"new_date": newDate,
			"new_time": newTime,
		},
	})

	return ap, nil
}
