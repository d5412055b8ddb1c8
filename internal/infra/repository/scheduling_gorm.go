package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/httperr"
	"github.com/aviseihq/avisei-api/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Directory
// --------------------------------------------------

func (r *SchedulingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *SchedulingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Hours / availability
// --------------------------------------------------

func (r *SchedulingGormRepository) GetBusinessHour(
	ctx context.Context,
	establishmentID uint,
	weekday int,
) (*models.BusinessHour, error) {

	var bh models.BusinessHour
	if err := r.db.WithContext(ctx).
		Where("establishment_id = ? AND weekday = ?", establishmentID, weekday).
		First(&bh).Error; err != nil {
		return nil, err
	}

	return &bh, nil
}

func (r *SchedulingGormRepository) ListAvailability(
	ctx context.Context,
	professionalID uint,
	weekday int,
) ([]models.ProfessionalAvailability, error) {

	var rows []models.ProfessionalAvailability
	if err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND weekday = ? AND is_available = ?",
			professionalID, weekday, true,
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *SchedulingGormRepository) lockActiveDay(
	tx *gorm.DB,
	professionalID uint,
	date string,
	out *[]models.Appointment,
) error {
	return tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"professional_id = ? AND appointment_date = ? AND status IN ('scheduled', 'confirmed')",
			professionalID, date,
		).
		Find(out).Error
}

func (r *SchedulingGormRepository) CreateScheduled(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active []models.Appointment
		if err := r.lockActiveDay(tx, ap.ProfessionalID, ap.Date, &active); err != nil {
			return err
		}

		if scheduling.HasConflict(active, ap.Time, ap.DurationMin, 0) {
			return httperr.Conflict("slot_taken")
		}

		return tx.Create(ap).Error
	})
}

func (r *SchedulingGormRepository) ListActiveAppointments(
	ctx context.Context,
	professionalID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND appointment_date = ? AND status IN ('scheduled', 'confirmed')",
			professionalID, date,
		).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Professional").
		Preload("Establishment").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *SchedulingGormRepository) Move(
	ctx context.Context,
	ap *models.Appointment,
	newDate string,
	newTime string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active []models.Appointment
		if err := r.lockActiveDay(tx, ap.ProfessionalID, newDate, &active); err != nil {
			return err
		}

		if scheduling.HasConflict(active, newTime, ap.DurationMin, ap.ID) {
			return httperr.Conflict("slot_taken")
		}

		scheduling.Move(ap, newDate, newTime)
		return tx.Save(ap).Error
	})
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *SchedulingGormRepository) listWithStatus(
	ctx context.Context,
	where string,
	id uint,
	status string,
	order string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Professional").
		Preload("Establishment").
		Preload("Service")

	if where != "" {
		q = q.Where(where, id)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var apps []models.Appointment
	if err := q.Order(order).Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *SchedulingGormRepository) ListByClient(
	ctx context.Context,
	clientID uint,
	status string,
) ([]models.Appointment, error) {
	return r.listWithStatus(
		ctx, "client_id = ?", clientID, status,
		"appointment_date DESC, appointment_time DESC",
	)
}

func (r *SchedulingGormRepository) ListByProfessional(
	ctx context.Context,
	professionalID uint,
	status string,
) ([]models.Appointment, error) {
	return r.listWithStatus(
		ctx, "professional_id = ?", professionalID, status,
		"appointment_date ASC, appointment_time ASC",
	)
}

func (r *SchedulingGormRepository) ListByEstablishment(
	ctx context.Context,
	establishmentID uint,
	status string,
) ([]models.Appointment, error) {
	return r.listWithStatus(
		ctx, "establishment_id = ?", establishmentID, status,
		"appointment_date ASC, appointment_time ASC",
	)
}

func (r *SchedulingGormRepository) ListAll(
	ctx context.Context,
	status string,
) ([]models.Appointment, error) {
	return r.listWithStatus(
		ctx, "", 0, status,
		"appointment_date DESC, appointment_time DESC",
	)
}

// Compile-time check
var _ scheduling.Repository = (*SchedulingGormRepository)(nil)
