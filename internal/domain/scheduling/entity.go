package scheduling

import (
	"time"

	"github.com/aviseihq/avisei-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, p Policy) error {
	if err := p.CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancellationReason = reason
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, notes string, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	if notes != "" {
		ap.Notes = notes
	}
	ap.CompletedAt = &now
	return nil
}

// Move rewrites date and time in place and resets the status to
// scheduled, dropping a previous confirmation.
func Move(ap *models.Appointment, newDate, newTime string) {
	ap.Date = newDate
	ap.Time = newTime
	ap.Status = string(StatusScheduled)
}
