package models

import (
	"time"
)

// ExpenseCategory classifies what a building expense pays for
type ExpenseCategory string

// Expense category constants
const (
	CategoryCommon               ExpenseCategory = "common"
	CategoryElevator             ExpenseCategory = "elevator"
	CategoryHeating              ExpenseCategory = "heating"
	CategoryEqualShare           ExpenseCategory = "equal_share"
	CategoryCoOwnership          ExpenseCategory = "co_ownership"
	CategoryManagementFee        ExpenseCategory = "management_fee"
	CategoryReserveFund          ExpenseCategory = "reserve_fund"
	CategoryScheduledMaintenance ExpenseCategory = "scheduled_maintenance"
)

// ValidCategory reports whether c is a known expense category.
func ValidCategory(c ExpenseCategory) bool {
	switch c {
	case CategoryCommon, CategoryElevator, CategoryHeating, CategoryEqualShare,
		CategoryCoOwnership, CategoryManagementFee, CategoryReserveFund,
		CategoryScheduledMaintenance:
		return true
	}
	return false
}

// Expense is a building cost waiting to be (or already) distributed
// across apartments. Once issued it is immutable and re-distribution
// is rejected.
type Expense struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	BuildingID       uint             `gorm:"not null;index" json:"building_id"`
	Amount           float64          `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category         ExpenseCategory  `gorm:"not null;index" json:"category"`
	DistributionType DistributionType `gorm:"not null" json:"distribution_type"`
	Description      string           `json:"description"`
	ExpenseDate      time.Time        `gorm:"type:date;not null;index" json:"expense_date"`

	// Set exactly once, in the same transaction as the charge entries.
	IsIssued bool       `gorm:"not null;default:false;index" json:"is_issued"`
	IssuedAt *time.Time `json:"issued_at"`

	// Apartments targeted by subset rules (by_meters, specific_apartments).
	TargetApartmentIDs []uint `gorm:"serializer:json" json:"target_apartment_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

// TableName specifies the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// GeneralCategory reports whether the category counts toward a month's
// plain expense total, as opposed to the separately tracked management
// fee, reserve fund and scheduled maintenance buckets.
func (e *Expense) GeneralCategory() bool {
	switch e.Category {
	case CategoryManagementFee, CategoryReserveFund, CategoryScheduledMaintenance:
		return false
	}
	return true
}

// ExpenseResponse is the JSON response format for expenses
type ExpenseResponse struct {
	ID               uint             `json:"id"`
	BuildingID       uint             `json:"building_id"`
	Amount           float64          `json:"amount"`
	Category         ExpenseCategory  `json:"category"`
	DistributionType DistributionType `json:"distribution_type"`
	Description      string           `json:"description"`
	ExpenseDate      time.Time        `json:"expense_date"`
	IsIssued         bool             `json:"is_issued"`
	IssuedAt         *time.Time       `json:"issued_at,omitempty"`
}

// ToResponse converts Expense to ExpenseResponse
func (e *Expense) ToResponse() ExpenseResponse {
	return ExpenseResponse{
		ID:               e.ID,
		BuildingID:       e.BuildingID,
		Amount:           e.Amount,
		Category:         e.Category,
		DistributionType: e.DistributionType,
		Description:      e.Description,
		ExpenseDate:      e.ExpenseDate,
		IsIssued:         e.IsIssued,
		IssuedAt:         e.IssuedAt,
	}
}
