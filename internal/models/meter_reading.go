package models

import (
	"time"
)

// MeterReading is one apartment's metered heating consumption for a
// period, supplied by the meter-reading workflow.
type MeterReading struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	BuildingID  uint    `gorm:"not null;uniqueIndex:idx_meter_period" json:"building_id"`
	ApartmentID uint    `gorm:"not null;uniqueIndex:idx_meter_period" json:"apartment_id"`
	Year        int     `gorm:"not null;uniqueIndex:idx_meter_period" json:"year"`
	Month       int     `gorm:"not null;uniqueIndex:idx_meter_period" json:"month"`
	Consumption float64 `gorm:"type:decimal(12,3);not null;default:0" json:"consumption"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Apartment *Apartment `gorm:"foreignKey:ApartmentID" json:"apartment,omitempty"`
}

// TableName specifies the table name for GORM
func (MeterReading) TableName() string {
	return "meter_readings"
}
