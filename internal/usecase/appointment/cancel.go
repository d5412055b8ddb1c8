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

type CancelAppointment struct {
	repo     scheduling.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
	clock    scheduling.Clock
	policy   scheduling.Policy
	tz       string
}

func NewCancelAppointment(
	repo scheduling.Repository,
	notifier *notification.Dispatcher,
	auditor *audit.Dispatcher,
	clock scheduling.Clock,
	policy scheduling.Policy,
	tz string,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    auditor,
		clock:    clock,
		policy:   policy,
		tz:       tz,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found")
	}

	switch actor.Role {
	case identity.RoleSuperAdmin:
		// always allowed
	case identity.RoleClient:
		if actor.ID != ap.ClientID {
			return nil, httperr.Forbidden("access_denied")
		}
	case identity.RoleProfessional:
		if actor.ID != ap.ProfessionalID {
			return nil, httperr.Forbidden("access_denied")
		}
	case identity.RoleEstablishment:
		if actor.ID != ap.EstablishmentID {
			return nil, httperr.Forbidden("access_denied")
		}
	default:
		return nil, httperr.Forbidden("access_denied")
	}

	// the lead-time rule binds clients only; staff may cancel late
	if actor.Role == identity.RoleClient {
		start, err := scheduling.StartInstant(ap.Date, ap.Time, uc.tz)
		if err != nil {
			return nil, httperr.Validation("invalid_date_or_time")
		}
		if err := uc.policy.CheckLeadTime(uc.clock.Now(), start); err != nil {
			return nil, err
		}
	}

	if reason == "" {
		reason = defaultCancelReason(actor.Role)
	}

	if err := scheduling.Cancel(ap, reason, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notification.Event{
		Type:        notification.EventCancellation,
		Appointment: *ap,
	})

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: ap.EstablishmentID,
		ActorID:         &actor.ID,
		Action:          "appointment_cancelled",
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}

func defaultCancelReason(role identity.Role) string {
	switch role {
	case identity.RoleClient:
		return "cancelled by client"
	case identity.RoleProfessional:
		return "cancelled by professional"
	case identity.RoleEstablishment:
		return "cancelled by establishment"
	default:
		return "cancelled by admin"
	}
}
