package models

import "time"

// Appointment is the central entity. Duration and price are snapshotted
// from the service at booking time and never change afterwards, so later
// edits to the service cannot rewrite history.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null" json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ProfessionalID uint `gorm:"not null;index:idx_professional_date" json:"professional_id"`
	Professional   User `gorm:"foreignKey:ProfessionalID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	EstablishmentID uint `gorm:"not null;index" json:"establishment_id"`
	Establishment   User `gorm:"foreignKey:EstablishmentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"establishment"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Date string `gorm:"column:appointment_date;size:10;not null;index:idx_professional_date" json:"appointment_date"`
	Time string `gorm:"column:appointment_time;size:5;not null" json:"appointment_time"`

	DurationMin int     `gorm:"not null" json:"duration_min"`
	TotalPrice  float64 `gorm:"not null" json:"total_price"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes              string     `gorm:"size:255" json:"notes"`
	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CompletedAt        *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
