package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/httperr"
)

func newRescheduleUC(repo *MockRepository, clock scheduling.Clock) *RescheduleAppointment {
	return NewRescheduleAppointment(
		repo, testNotifier(), testAuditor(), clock, scheduling.DefaultPolicy(), testTZ)
}

func TestReschedule_Success(t *testing.T) {
	ap := bookedAppointment()
	ap.Status = "confirmed"

	repo := new(MockRepository)
	repo.On("GetAppointment", mock.Anything, uint(10)).Return(ap, nil)
	repo.On("Move", mock.Anything, ap, "2026-03-09", "15:00").Return(nil)

	uc := newRescheduleUC(repo, fixedAt("2026-03-07", "09:00"))

	got, err := uc.Execute(context.Background(), clientActor(1), 10, "2026-03-09", "15:00")

	assert.NoError(t, err)
	assert.Equal(t, "2026-03-09", got.Date)
	assert.Equal(t, "15:00", got.Time)
	// confirmation does not survive a move
	assert.Equal(t, "scheduled", got.Status)
	repo.AssertExpectations(t)
}

func TestReschedule_OnlyClients(t *testing.T) {
	uc := newRescheduleUC(new(MockRepository), fixedAt("2026-03-07", "09:00"))

	_, err := uc.Execute(context.Background(),
		identity.Actor{ID: 2, Role: identity.RoleProfessional}, 10, "2026-03-09", "15:00")
	assert.True(t, httperr.IsBusiness(err, "only_clients_can_reschedule"))
}

func TestReschedule_LeadTimeAgainstOriginalStart(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAppointment", mock.Anything, uint(10)).Return(bookedAppointment(), nil)

	// original start 10:00, clock 09:30: moving even to next week is late
	uc := newRescheduleUC(repo, fixedAt("2026-03-07", "09:30"))

	_, err := uc.Execute(context.Background(), clientActor(1), 10, "2026-03-14", "10:00")

	assert.True(t, httperr.IsBusiness(err, "lead_time_violation"))
	repo.AssertNotCalled(t, "Move", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReschedule_TerminalStatus(t *testing.T) {
	done := bookedAppointment()
	done.Status = "completed"

	repo := new(MockRepository)
	repo.On("GetAppointment", mock.Anything, uint(10)).Return(done, nil)

	uc := newRescheduleUC(repo, fixedAt("2026-03-07", "09:00"))

	_, err := uc.Execute(context.Background(), clientActor(1), 10, "2026-03-09", "15:00")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestReschedule_MissingTarget(t *testing.T) {
	uc := newRescheduleUC(new(MockRepository), fixedAt("2026-03-07", "09:00"))

	_, err := uc.Execute(context.Background(), clientActor(1), 10, "", "15:00")
	assert.True(t, httperr.IsBusiness(err, "missing_required_fields"))
}

func TestReschedule_InvalidTarget(t *testing.T) {
	uc := newRescheduleUC(new(MockRepository), fixedAt("2026-03-07", "09:00"))

	_, err := uc.Execute(context.Background(), clientActor(1), 10, "2026-03-09", "25:00")
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestReschedule_ForeignAppointment(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAppointment", mock.Anything, uint(10)).Return(bookedAppointment(), nil)

	uc := newRescheduleUC(repo, fixedAt("2026-03-07", "09:00"))

	_, err := uc.Execute(context.Background(), clientActor(99), 10, "2026-03-09", "15:00")
	assert.True(t, httperr.IsBusiness(err, "access_denied"))
}

func TestReschedule_TargetSlotTaken(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAppointment", mock.Anything, uint(10)).Return(bookedAppointment(), nil)
	repo.On("Move", mock.Anything, mock.Anything, "2026-03-09", "15:00").
		Return(httperr.Conflict("slot_taken"))

	uc := newRescheduleUC(repo, fixedAt("2026-03-07", "09:00"))

	_, err := uc.Execute(context.Background(), clientActor(1), 10, "2026-03-09", "15:00")
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}
