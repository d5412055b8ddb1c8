package scheduling

import (
	"context"

	"github.com/aviseihq/avisei-api/internal/models"
)

type Repository interface {
	// -------- Directory --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Hours / availability --------
	GetBusinessHour(
		ctx context.Context,
		establishmentID uint,
		weekday int,
	) (*models.BusinessHour, error)

	ListAvailability(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) ([]models.ProfessionalAvailability, error)

	// -------- Appointment (create / conflict) --------

	// CreateScheduled inserts the appointment after re-checking the slot
	// inside one transaction that locks the professional's active rows
	// for that date; concurrent bookings for the same slot serialize on
	// the lock instead of double-inserting.
	CreateScheduled(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListActiveAppointments(
		ctx context.Context,
		professionalID uint,
		date string,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// Move updates date/time under the same lock discipline as
	// CreateScheduled, excluding the appointment itself from the
	// conflict check.
	Move(
		ctx context.Context,
		ap *models.Appointment,
		newDate string,
		newTime string,
	) error

	// -------- Listing --------
	ListByClient(
		ctx context.Context,
		clientID uint,
		status string,
	) ([]models.Appointment, error)

	ListByProfessional(
		ctx context.Context,
		professionalID uint,
		status string,
	) ([]models.Appointment, error)

	ListByEstablishment(
		ctx context.Context,
		establishmentID uint,
		status string,
	) ([]models.Appointment, error)

	ListAll(
		ctx context.Context,
		status string,
	) ([]models.Appointment, error)
}
