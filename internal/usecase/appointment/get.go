package appointment

import (
	"context"

	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/httperr"
	"github.com/aviseihq/avisei-api/internal/models"
)

type GetAppointment struct {
	repo scheduling.Repository
}

func NewGetAppointment(repo scheduling.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found")
	}

	if !actor.CanViewAppointment(ap.ClientID, ap.ProfessionalID, ap.EstablishmentID) {
		return nil, httperr.Forbidden("access_denied")
	}

	return ap, nil
}
