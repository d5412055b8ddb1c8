package appointment

import (
	"context"

	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/dto"
	"github.com/aviseihq/avisei-api/internal/httperr"
	"github.com/aviseihq/avisei-api/internal/models"
)

type ListAppointments struct {
	repo scheduling.Repository
}

func NewListAppointments(repo scheduling.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns the appointments visible to the actor, optionally
// filtered by status, projected to the list DTO.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor identity.Actor,
	status string,
) ([]dto.AppointmentListDTO, error) {

	if status != "" {
		switch scheduling.Status(status) {
		case scheduling.StatusScheduled, scheduling.StatusConfirmed,
			scheduling.StatusCompleted, scheduling.StatusCancelled:
		default:
			return nil, httperr.Validation("invalid_status_filter")
		}
	}

	var (
		rows []models.Appointment
		err  error
	)

	switch actor.Role {
	case identity.RoleClient:
		rows, err = uc.repo.ListByClient(ctx, actor.ID, status)
	case identity.RoleProfessional:
		rows, err = uc.repo.ListByProfessional(ctx, actor.ID, status)
	case identity.RoleEstablishment:
		rows, err = uc.repo.ListByEstablishment(ctx, actor.ID, status)
	case identity.RoleSuperAdmin:
		rows, err = uc.repo.ListAll(ctx, status)
	default:
		return nil, httperr.Forbidden("invalid_role")
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(rows))
	for _, ap := range rows {
		out = append(out, dto.NewAppointmentListDTO(ap))
	}

	return out, nil
}
