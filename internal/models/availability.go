package models

import "time"

// ProfessionalAvailability is one working window of a professional on a
// weekday. Multiple rows per weekday model split shifts.
type ProfessionalAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID  uint `gorm:"index;not null" json:"professional_id"`
	EstablishmentID uint `gorm:"index;not null" json:"establishment_id"`

	Weekday   int    `gorm:"not null" json:"day_of_week"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	IsAvailable bool `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
