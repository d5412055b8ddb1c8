package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/httperr"
	"github.com/aviseihq/avisei-api/internal/models"
)

const testTZ = "America/Sao_Paulo"

func fixedAt(date, clock string) scheduling.FixedClock {
	t, _ := scheduling.StartInstant(date, clock, testTZ)
	return scheduling.FixedClock{T: t}
}

func clientActor(id uint) identity.Actor {
	return identity.Actor{ID: id, Role: identity.RoleClient}
}

// 2026-03-07 is a Saturday (weekday 6)
func validInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		ProfessionalID:  2,
		EstablishmentID: 3,
		ServiceID:       4,
		Date:            "2026-03-07",
		Time:            "10:00",
	}
}

func professional(id, establishmentID uint) *models.User {
	eid := establishmentID
	return &models.User{
		ID:              id,
		Role:            string(identity.RoleProfessional),
		EstablishmentID: &eid,
		Active:          true,
	}
}

func establishment(id uint) *models.User {
	return &models.User{ID: id, Role: string(identity.RoleEstablishment), Active: true}
}

func haircut() *models.Service {
	return &models.Service{
		ID:          4,
		Name:        "Corte",
		DurationMin: 30,
		Price:       50,
		Active:      true,
	}
}

func saturdayBusinessHour() *models.BusinessHour {
	return &models.BusinessHour{
		EstablishmentID: 3,
		Weekday:         6,
		MorningStart:    "09:00",
		MorningEnd:      "12:00",
		AfternoonStart:  "14:00",
		AfternoonEnd:    "17:00",
	}
}

func saturdayAvailability() []models.ProfessionalAvailability {
	return []models.ProfessionalAvailability{{
		ProfessionalID: 2,
		Weekday:        6,
		StartTime:      "09:00",
		EndTime:        "17:00",
		IsAvailable:    true,
	}}
}

func newCreateUC(repo *MockRepository, clock scheduling.Clock) *CreateAppointment {
	return NewCreateAppointment(repo, testNotifier(), testAuditor(), clock, testTZ)
}

func TestCreateAppointment_Success(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(haircut(), nil)
	repo.On("GetUser", mock.Anything, uint(2)).Return(professional(2, 3), nil)
	repo.On("GetUser", mock.Anything, uint(3)).Return(establishment(3), nil)
	repo.On("GetBusinessHour", mock.Anything, uint(3), 6).Return(saturdayBusinessHour(), nil)
	repo.On("ListAvailability", mock.Anything, uint(2), 6).Return(saturdayAvailability(), nil)
	repo.On("CreateScheduled", mock.Anything, mock.Anything).Return(nil)
	repo.On("GetAppointment", mock.Anything, uint(999)).
		Return(&models.Appointment{ID: 999, Status: "scheduled", Date: "2026-03-07", Time: "10:00"}, nil)

	uc := newCreateUC(repo, fixedAt("2026-03-07", "08:00"))

	ap, err := uc.Execute(context.Background(), clientActor(1), validInput())

	assert.NoError(t, err)
	assert.NotNil(t, ap)
	assert.Equal(t, "scheduled", ap.Status)
	repo.AssertExpectations(t)
}

func TestCreateAppointment_SnapshotsServiceFields(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(haircut(), nil)
	repo.On("GetUser", mock.Anything, uint(2)).Return(professional(2, 3), nil)
	repo.On("GetUser", mock.Anything, uint(3)).Return(establishment(3), nil)
	repo.On("GetBusinessHour", mock.Anything, uint(3), 6).Return(saturdayBusinessHour(), nil)
	repo.On("ListAvailability", mock.Anything, uint(2), 6).Return(saturdayAvailability(), nil)

	var created *models.Appointment
	repo.On("CreateScheduled", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Appointment)
		}).
		Return(nil)
	repo.On("GetAppointment", mock.Anything, uint(999)).
		Return(nil, assert.AnError) // reload failure keeps the inserted row

	uc := newCreateUC(repo, fixedAt("2026-03-07", "08:00"))

	ap, err := uc.Execute(context.Background(), clientActor(1), validInput())

	assert.NoError(t, err)
	assert.Equal(t, 30, created.DurationMin)
	assert.Equal(t, 50.0, created.TotalPrice)
	assert.Equal(t, ap, created)
}

func TestCreateAppointment_OnlyClients(t *testing.T) {
	uc := newCreateUC(new(MockRepository), fixedAt("2026-03-07", "08:00"))

	_, err := uc.Execute(context.Background(),
		identity.Actor{ID: 2, Role: identity.RoleProfessional}, validInput())

	assert.True(t, httperr.IsBusiness(err, "only_clients_can_book"))
}

func TestCreateAppointment_MissingFields(t *testing.T) {
	uc := newCreateUC(new(MockRepository), fixedAt("2026-03-07", "08:00"))

	in := validInput()
	in.ServiceID = 0

	_, err := uc.Execute(context.Background(), clientActor(1), in)
	assert.True(t, httperr.IsBusiness(err, "missing_required_fields"))
}

func TestCreateAppointment_ServiceNotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(nil, assert.AnError)

	uc := newCreateUC(repo, fixedAt("2026-03-07", "08:00"))

	_, err := uc.Execute(context.Background(), clientActor(1), validInput())
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateAppointment_ProfessionalRoleChecked(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(haircut(), nil)
	repo.On("GetUser", mock.Anything, uint(2)).Return(establishment(2), nil)

	uc := newCreateUC(repo, fixedAt("2026-03-07", "08:00"))

	_, err := uc.Execute(context.Background(), clientActor(1), validInput())
	assert.True(t, httperr.IsBusiness(err, "not_a_professional"))
}

func TestCreateAppointment_PastSlot(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(haircut(), nil)
	repo.On("GetUser", mock.Anything, uint(2)).Return(professional(2, 3), nil)
	repo.On("GetUser", mock.Anything, uint(3)).Return(establishment(3), nil)

	// clock already past the requested 10:00 slot
	uc := newCreateUC(repo, fixedAt("2026-03-07", "11:00"))

	_, err := uc.Execute(context.Background(), clientActor(1), validInput())
	assert.True(t, httperr.IsBusiness(err, "appointment_in_past"))
}

func TestCreateAppointment_EstablishmentClosed(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(haircut(), nil)
	repo.On("GetUser", mock.Anything, uint(2)).Return(professional(2, 3), nil)
	repo.On("GetUser", mock.Anything, uint(3)).Return(establishment(3), nil)
	repo.On("GetBusinessHour", mock.Anything, uint(3), 6).Return(saturdayBusinessHour(), nil)

	uc := newCreateUC(repo, fixedAt("2026-03-07", "08:00"))

	// 13:00 falls between the morning and afternoon windows
	in := validInput()
	in.Time = "13:00"

	_, err := uc.Execute(context.Background(), clientActor(1), in)
	assert.True(t, httperr.IsBusiness(err, "establishment_closed"))
}

func TestCreateAppointment_ClosedAfterHoursDespiteAvailability(t *testing.T) {
	// availability running to 20:00 does not override the 17:00 close
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(haircut(), nil)
	repo.On("GetUser", mock.Anything, uint(2)).Return(professional(2, 3), nil)
	repo.On("GetUser", mock.Anything, uint(3)).Return(establishment(3), nil)
	repo.On("GetBusinessHour", mock.Anything, uint(3), 6).Return(saturdayBusinessHour(), nil)
	repo.On("ListAvailability", mock.Anything, uint(2), 6).Return([]models.ProfessionalAvailability{{
		ProfessionalID: 2,
		Weekday:        6,
		StartTime:      "09:00",
		EndTime:        "20:00",
		IsAvailable:    true,
	}}, nil)

	uc := newCreateUC(repo, fixedAt("2026-03-07", "08:00"))

	in := validInput()
	in.Time = "17:30"

	_, err := uc.Execute(context.Background(), clientActor(1), in)
	assert.True(t, httperr.IsBusiness(err, "establishment_closed"))
}

func TestCreateAppointment_ClosedWhenNoHoursRow(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(haircut(), nil)
	repo.On("GetUser", mock.Anything, uint(2)).Return(professional(2, 3), nil)
	repo.On("GetUser", mock.Anything, uint(3)).Return(establishment(3), nil)
	repo.On("GetBusinessHour", mock.Anything, uint(3), 6).Return(nil, assert.AnError)

	uc := newCreateUC(repo, fixedAt("2026-03-07", "08:00"))

	_, err := uc.Execute(context.Background(), clientActor(1), validInput())
	assert.True(t, httperr.IsBusiness(err, "establishment_closed"))
}

func TestCreateAppointment_EndInsideClosedGapStillBooks(t *testing.T) {
	// hours gate the START only: an 11:45 booking whose 30-minute
	// service runs to 12:15 is accepted when 11:45 itself is open
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(haircut(), nil)
	repo.On("GetUser", mock.Anything, uint(2)).Return(professional(2, 3), nil)
	repo.On("GetUser", mock.Anything, uint(3)).Return(establishment(3), nil)
	repo.On("GetBusinessHour", mock.Anything, uint(3), 6).Return(saturdayBusinessHour(), nil)
	repo.On("ListAvailability", mock.Anything, uint(2), 6).Return(saturdayAvailability(), nil)
	repo.On("CreateScheduled", mock.Anything, mock.Anything).Return(nil)
	repo.On("GetAppointment", mock.Anything, uint(999)).Return(nil, assert.AnError)

	uc := newCreateUC(repo, fixedAt("2026-03-07", "08:00"))

	in := validInput()
	in.Time = "11:45"

	_, err := uc.Execute(context.Background(), clientActor(1), in)
	assert.NoError(t, err)
}

func TestCreateAppointment_ProfessionalUnavailable(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(haircut(), nil)
	repo.On("GetUser", mock.Anything, uint(2)).Return(professional(2, 3), nil)
	repo.On("GetUser", mock.Anything, uint(3)).Return(establishment(3), nil)
	repo.On("GetBusinessHour", mock.Anything, uint(3), 6).Return(saturdayBusinessHour(), nil)
	repo.On("ListAvailability", mock.Anything, uint(2), 6).
		Return([]models.ProfessionalAvailability{}, nil)

	uc := newCreateUC(repo, fixedAt("2026-03-07", "08:00"))

	_, err := uc.Execute(context.Background(), clientActor(1), validInput())
	assert.True(t, httperr.IsBusiness(err, "professional_unavailable"))
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(haircut(), nil)
	repo.On("GetUser", mock.Anything, uint(2)).Return(professional(2, 3), nil)
	repo.On("GetUser", mock.Anything, uint(3)).Return(establishment(3), nil)
	repo.On("GetBusinessHour", mock.Anything, uint(3), 6).Return(saturdayBusinessHour(), nil)
	repo.On("ListAvailability", mock.Anything, uint(2), 6).Return(saturdayAvailability(), nil)
	repo.On("CreateScheduled", mock.Anything, mock.Anything).
		Return(httperr.Conflict("slot_taken"))

	uc := newCreateUC(repo, fixedAt("2026-03-07", "08:00"))

	_, err := uc.Execute(context.Background(), clientActor(1), validInput())
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}
