package models

import (
	"time"
)

// ReserveFundConfig is a building's savings goal: collect Goal over
// DurationMonths starting at StartDate, one contribution per month.
type ReserveFundConfig struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	BuildingID     uint      `gorm:"not null;uniqueIndex" json:"building_id"`
	Goal           float64   `gorm:"type:decimal(12,2);not null" json:"goal"`
	DurationMonths int       `gorm:"not null" json:"duration_months"`
	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

// TableName specifies the table name for GORM
func (ReserveFundConfig) TableName() string {
	return "reserve_fund_configs"
}

// MonthlyTarget is the amount to collect each month to reach the goal.
func (r *ReserveFundConfig) MonthlyTarget() float64 {
	if r.DurationMonths <= 0 {
		return 0
	}
	return RoundCents(r.Goal / float64(r.DurationMonths))
}

// Covers reports whether (year, month) falls inside the collection
// window [start, start + duration months).
func (r *ReserveFundConfig) Covers(year, month int) bool {
	startIndex := r.StartDate.Year()*12 + int(r.StartDate.Month()) - 1
	index := year*12 + month - 1
	return index >= startIndex && index < startIndex+r.DurationMonths
}

// ReserveFundProgress reports collection progress toward the goal.
type ReserveFundProgress struct {
	BuildingID     uint    `json:"building_id"`
	Goal           float64 `json:"goal"`
	Collected      float64 `json:"collected"`
	MonthlyTarget  float64 `json:"monthly_target"`
	PercentReached float64 `json:"percent_reached"`
}
