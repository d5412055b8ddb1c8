package appointment

import (
	"context"

	"github.com/aviseihq/avisei-api/internal/audit"
	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/httperr"
	"github.com/aviseihq/avisei-api/internal/models"
)

type CompleteAppointment struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
	clock scheduling.Clock
}

func NewCompleteAppointment(
	repo scheduling.Repository,
	auditor *audit.Dispatcher,
	clock scheduling.Clock,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: auditor,
		clock: clock,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
	notes string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found")
	}

	switch actor.Role {
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

	if err := scheduling.Complete(ap, notes, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: ap.EstablishmentID,
		ActorID:         &actor.ID,
		Action:          "appointment_completed",
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}
