package appointment

import (
	"context"

	"github.com/aviseihq/avisei-api/internal/audit"
	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/httperr"
	"github.com/aviseihq/avisei-api/internal/models"
)

type ConfirmAppointment struct {
	repo   scheduling.Repository
	audit  *audit.Dispatcher
	policy scheduling.Policy
}

func NewConfirmAppointment(
	repo scheduling.Repository,
	auditor *audit.Dispatcher,
	policy scheduling.Policy,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:   repo,
		audit:  auditor,
		policy: policy,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found")
	}

	// only the owning establishment or the assigned professional
	switch actor.Role {
	case identity.RoleEstablishment:
		if actor.ID != ap.EstablishmentID {
			return nil, httperr.Forbidden("access_denied")
		}
	case identity.RoleProfessional:
		if actor.ID != ap.ProfessionalID {
			return nil, httperr.Forbidden("access_denied")
		}
	default:
		return nil, httperr.Forbidden("access_denied")
	}

	if err := scheduling.Confirm(ap, uc.policy); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: ap.EstablishmentID,
		ActorID:         &actor.ID,
		Action:          "appointment_confirmed",
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}
