package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aviseihq/avisei-api/internal/httperr"
	"github.com/aviseihq/avisei-api/internal/models"
)

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusScheduled.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
}

func TestStatus_Active(t *testing.T) {
	assert.True(t, StatusScheduled.Active())
	assert.True(t, StatusConfirmed.Active())
	assert.False(t, StatusCompleted.Active())
	assert.False(t, StatusCancelled.Active())
}

func TestCanConfirm_StrictBlocksTerminal(t *testing.T) {
	p := Policy{StrictConfirm: true}

	assert.NoError(t, p.CanConfirm(StatusScheduled))
	assert.NoError(t, p.CanConfirm(StatusConfirmed))
	assert.True(t, httperr.IsBusiness(p.CanConfirm(StatusCompleted), "invalid_state"))
	assert.True(t, httperr.IsBusiness(p.CanConfirm(StatusCancelled), "invalid_state"))
}

func TestCanConfirm_LegacyAllowsTerminal(t *testing.T) {
	p := Policy{StrictConfirm: false}

	assert.NoError(t, p.CanConfirm(StatusCompleted))
	assert.NoError(t, p.CanConfirm(StatusCancelled))
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, CanCancel(StatusScheduled))
	assert.NoError(t, CanCancel(StatusConfirmed))
	assert.True(t, httperr.IsBusiness(CanCancel(StatusCompleted), "appointment_already_completed"))
	assert.True(t, httperr.IsBusiness(CanCancel(StatusCancelled), "appointment_already_cancelled"))
}

func TestCanComplete(t *testing.T) {
	assert.NoError(t, CanComplete(StatusScheduled))
	assert.NoError(t, CanComplete(StatusConfirmed))
	assert.True(t, httperr.IsBusiness(CanComplete(StatusCompleted), "invalid_state"))
	assert.True(t, httperr.IsBusiness(CanComplete(StatusCancelled), "invalid_state"))
}

func TestCheckLeadTime(t *testing.T) {
	p := DefaultPolicy()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	// 41 minutes out is fine, 39 is not
	assert.NoError(t, p.CheckLeadTime(now, now.Add(41*time.Minute)))
	assert.NoError(t, p.CheckLeadTime(now, now.Add(40*time.Minute)))

	err := p.CheckLeadTime(now, now.Add(39*time.Minute))
	assert.True(t, httperr.IsBusiness(err, "lead_time_violation"))

	var be httperr.BusinessError
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, 39, be.Details["minutes_until_appointment"])
	assert.Equal(t, 40, be.Details["required_minutes"])
}

func TestCheckLeadTime_PastAppointment(t *testing.T) {
	p := DefaultPolicy()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	err := p.CheckLeadTime(now, now.Add(-30*time.Minute))
	assert.True(t, httperr.IsBusiness(err, "lead_time_violation"))
}

func TestConfirmAndMove(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}

	assert.NoError(t, Confirm(ap, DefaultPolicy()))
	assert.Equal(t, string(StatusConfirmed), ap.Status)

	// a reschedule drops the confirmation
	Move(ap, "2026-03-09", "11:00")
	assert.Equal(t, string(StatusScheduled), ap.Status)
	assert.Equal(t, "2026-03-09", ap.Date)
	assert.Equal(t, "11:00", ap.Time)
}

func TestCancelSetsReasonAndTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusConfirmed)}

	assert.NoError(t, Cancel(ap, "client gave up", now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, "client gave up", ap.CancellationReason)
	assert.Equal(t, now, *ap.CancelledAt)
}

func TestCompleteKeepsExistingNotes(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusConfirmed), Notes: "first visit"}

	assert.NoError(t, Complete(ap, "", now))
	assert.Equal(t, "first visit", ap.Notes)
	assert.Equal(t, now, *ap.CompletedAt)
}
