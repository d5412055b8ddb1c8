package models

import "time"

type Service struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	EstablishmentID uint `gorm:"index;not null" json:"establishment_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Price       float64 `gorm:"not null" json:"price"`

	// CommissionPercentage is the share of the price credited to the
	// professional in commission reports.
	CommissionPercentage float64 `gorm:"default:0" json:"commission_percentage"`

	// Services referenced by appointments are deactivated, never deleted,
	// so price/duration snapshots stay resolvable.
	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
