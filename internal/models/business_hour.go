package models

import "time"

// BusinessHour is one row per (establishment, weekday). Morning and
// afternoon windows are "HH:MM" strings; empty means the window does not
// exist. IsClosed overrides both windows.
type BusinessHour struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EstablishmentID uint `gorm:"not null;uniqueIndex:idx_establishment_weekday" json:"establishment_id"`
	Weekday         int  `gorm:"not null;uniqueIndex:idx_establishment_weekday" json:"day_of_week"`

	MorningStart   string `gorm:"size:5" json:"morning_start"`
	MorningEnd     string `gorm:"size:5" json:"morning_end"`
	AfternoonStart string `gorm:"size:5" json:"afternoon_start"`
	AfternoonEnd   string `gorm:"size:5" json:"afternoon_end"`

	IsClosed bool `gorm:"default:false" json:"is_closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
