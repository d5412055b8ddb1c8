package dto

import (
	"time"

	"github.com/aviseihq/avisei-api/internal/models"
)

type AppointmentListDTO struct {
	ID                uint      `json:"id"`
	Date              string    `json:"appointment_date"`
	Time              string    `json:"appointment_time"`
	DurationMin       int       `json:"duration_min"`
	TotalPrice        float64   `json:"total_price"`
	Status            string    `json:"status"`
	ClientName        string    `json:"client_name"`
	ProfessionalName  string    `json:"professional_name"`
	EstablishmentName string    `json:"establishment_name"`
	ServiceName       string    `json:"service_name"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewAppointmentListDTO projects a preloaded appointment row.
func NewAppointmentListDTO(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:                ap.ID,
		Date:              ap.Date,
		Time:              ap.Time,
		DurationMin:       ap.DurationMin,
		TotalPrice:        ap.TotalPrice,
		Status:            ap.Status,
		ClientName:        ap.Client.Name,
		ProfessionalName:  ap.Professional.Name,
		EstablishmentName: ap.Establishment.Name,
		ServiceName:       ap.Service.Name,
		CreatedAt:         ap.CreatedAt,
	}
}
