package appointment

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/aviseihq/avisei-api/internal/audit"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/models"
	"github.com/aviseihq/avisei-api/internal/notification"
)

type MockRepository struct {
	mock.Mock
}

var _ scheduling.Repository = (*MockRepository)(nil)

func (m *MockRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockRepository) GetBusinessHour(ctx context.Context, establishmentID uint, weekday int) (*models.BusinessHour, error) {
	args := m.Called(ctx, establishmentID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BusinessHour), args.Error(1)
}

func (m *MockRepository) ListAvailability(ctx context.Context, professionalID uint, weekday int) ([]models.ProfessionalAvailability, error) {
	args := m.Called(ctx, professionalID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProfessionalAvailability), args.Error(1)
}

func (m *MockRepository) CreateScheduled(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	if ap != nil && ap.ID == 0 {
		ap.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRepository) ListActiveAppointments(ctx context.Context, professionalID uint, date string) ([]models.Appointment, error) {
	args := m.Called(ctx, professionalID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *MockRepository) Move(ctx context.Context, ap *models.Appointment, newDate, newTime string) error {
	args := m.Called(ctx, ap, newDate, newTime)
	if args.Error(0) == nil {
		scheduling.Move(ap, newDate, newTime)
	}
	return args.Error(0)
}

func (m *MockRepository) ListByClient(ctx context.Context, clientID uint, status string) ([]models.Appointment, error) {
	args := m.Called(ctx, clientID, status)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockRepository) ListByProfessional(ctx context.Context, professionalID uint, status string) ([]models.Appointment, error) {
	args := m.Called(ctx, professionalID, status)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockRepository) ListByEstablishment(ctx context.Context, establishmentID uint, status string) ([]models.Appointment, error) {
	args := m.Called(ctx, establishmentID, status)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockRepository) ListAll(ctx context.Context, status string) ([]models.Appointment, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

// --------- shared fixtures ---------

func testNotifier() *notification.Dispatcher {
	return notification.NewDispatcher(notification.NewLogMailer(zerolog.Nop()), zerolog.Nop())
}

type discardSink struct{}

func (discardSink) Log(establishmentID uint, actorID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}

func testAuditor() *audit.Dispatcher {
	return audit.NewDispatcher(discardSink{}, zerolog.Nop())
}
