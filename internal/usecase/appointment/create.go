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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProfessionalID  uint
	EstablishmentID uint
	ServiceID       uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     scheduling.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
	clock    scheduling.Clock
	tz       string
}

func NewCreateAppointment(
	repo scheduling.Repository,
	notifier *notification.Dispatcher,
	auditor *audit.Dispatcher,
	clock scheduling.Clock,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    auditor,
		clock:    clock,
		tz:       tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute runs the booking preconditions in a fixed order; the first
// failure wins and nothing is mutated.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if actor.Role != identity.RoleClient {
		return nil, httperr.Forbidden("only_clients_can_book")
	}

	// 1. required fields
	if in.ProfessionalID == 0 || in.EstablishmentID == 0 || in.ServiceID == 0 ||
		in.Date == "" || in.Time == "" {
		return nil, httperr.Validation("missing_required_fields")
	}

	weekday, err := scheduling.WeekdayOf(in.Date)
	if err != nil || !scheduling.ValidClock(in.Time) {
		return nil, httperr.Validation("invalid_date_or_time")
	}

	// 2. service must exist and be active
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.NotFound("service_not_found")
	}

	// 3. professional
	professional, err := uc.repo.GetUser(ctx, in.ProfessionalID)
	if err != nil {
		return nil, httperr.NotFound("professional_not_found")
	}
	if identity.Role(professional.Role) != identity.RoleProfessional {
		return nil, httperr.Validation("not_a_professional")
	}

	// 4. establishment
	establishment, err := uc.repo.GetUser(ctx, in.EstablishmentID)
	if err != nil {
		return nil, httperr.NotFound("establishment_not_found")
	}
	if identity.Role(establishment.Role) != identity.RoleEstablishment {
		return nil, httperr.Validation("not_an_establishment")
	}

	// 5. no booking in the past
	start, err := scheduling.StartInstant(in.Date, in.Time, uc.tz)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time")
	}
	if start.Before(uc.clock.Now()) {
		return nil, httperr.Validation("appointment_in_past")
	}

	// 6. establishment must be open
	bh, err := uc.repo.GetBusinessHour(ctx, in.EstablishmentID, weekday)
	if err != nil {
		bh = nil // no configured row means closed
	}
	if !scheduling.OpenAt(bh, in.Time) {
		return nil, httperr.Conflict("establishment_closed")
	}

	// 7. professional availability must cover the whole interval
	endTime, err := scheduling.AddMinutes(in.Time, service.DurationMin)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time")
	}

	rows, err := uc.repo.ListAvailability(ctx, in.ProfessionalID, weekday)
	if err != nil {
		return nil, err
	}
	if !scheduling.Covers(rows, in.Time, endTime) {
		return nil, httperr.Conflict("professional_unavailable")
	}

	// 8. conflict check + insert under one lock
	ap := &models.Appointment{
		ClientID:        actor.ID,
		ProfessionalID:  in.ProfessionalID,
		EstablishmentID: in.EstablishmentID,
		ServiceID:       in.ServiceID,
		Date:            in.Date,
		Time:            in.Time,
		DurationMin:     service.DurationMin,
		TotalPrice:      service.Price,
		Status:          string(scheduling.InitialStatus()),
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateScheduled(ctx, ap); err != nil {
		return nil, err
	}

	// best effort: reload with relations for the notification payload
	if full, err := uc.repo.GetAppointment(ctx, ap.ID); err == nil {
		ap = full
	}

	uc.notifier.Dispatch(notification.Event{
		Type:        notification.EventConfirmation,
		Appointment: *ap,
	})

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		ActorID:         &actor.ID,
		Action:          "appointment_created",
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}
