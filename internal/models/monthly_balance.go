package models

import (
	"time"
)

// Monthly balance lifecycle states. Closing is one-way; a closed month
// is never reopened by the engine.
const (
	MonthlyBalanceOpen   = "open"
	MonthlyBalanceClosed = "closed"
)

// MonthlyBalance is the per-building snapshot of one calendar month.
// Exactly one record exists per (building, year, month); it is created
// lazily and becomes immutable once closed.
type MonthlyBalance struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BuildingID uint `gorm:"not null;uniqueIndex:idx_building_period" json:"building_id"`
	Year       int  `gorm:"not null;uniqueIndex:idx_building_period" json:"year"`
	Month      int  `gorm:"not null;uniqueIndex:idx_building_period" json:"month"`

	TotalExpenses              float64 `gorm:"type:decimal(12,2);not null;default:0" json:"total_expenses"`
	TotalPayments              float64 `gorm:"type:decimal(12,2);not null;default:0" json:"total_payments"`
	PreviousObligations        float64 `gorm:"type:decimal(12,2);not null;default:0" json:"previous_obligations"`
	ReserveFundAmount          float64 `gorm:"type:decimal(12,2);not null;default:0" json:"reserve_fund_amount"`
	ManagementFees             float64 `gorm:"type:decimal(12,2);not null;default:0" json:"management_fees"`
	ScheduledMaintenanceAmount float64 `gorm:"type:decimal(12,2);not null;default:0" json:"scheduled_maintenance_amount"`

	// Computed on close: the unpaid portion inherited by the next month.
	CarryForward float64 `gorm:"type:decimal(12,2);not null;default:0" json:"carry_forward"`

	// Set only on a December close; the December->January carry recorded
	// separately from the ordinary monthly carry for audit clarity.
	AnnualCarryForward float64 `gorm:"type:decimal(12,2);not null;default:0" json:"annual_carry_forward"`

	IsClosed bool       `gorm:"not null;default:false" json:"is_closed"`
	ClosedAt *time.Time `json:"closed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

// TableName specifies the table name for GORM
func (MonthlyBalance) TableName() string {
	return "monthly_balances"
}

// State returns the lifecycle state for the FSM
func (m *MonthlyBalance) State() string {
	if m.IsClosed {
		return MonthlyBalanceClosed
	}
	return MonthlyBalanceOpen
}

// TotalObligations is everything the building's apartments owe for the
// month, including the inherited carry from the previous period.
func (m *MonthlyBalance) TotalObligations() float64 {
	return RoundCents(m.TotalExpenses + m.PreviousObligations + m.ReserveFundAmount +
		m.ManagementFees + m.ScheduledMaintenanceAmount)
}

// NetResult is payments minus total obligations; negative means unpaid.
func (m *MonthlyBalance) NetResult() float64 {
	return RoundCents(m.TotalPayments - m.TotalObligations())
}

// ComputeCarryForward derives the carry for the next month. Overpayment
// never carries a negative debt forward; the floor at zero is intended.
func (m *MonthlyBalance) ComputeCarryForward() float64 {
	carry := RoundCents(m.TotalObligations() - m.TotalPayments)
	if carry < 0 {
		return 0
	}
	return carry
}

// NextPeriod returns the following (year, month), rolling December over
// into January of the next year.
func NextPeriod(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// PeriodBounds returns the first instant of the month and the first
// instant of the next month, in UTC.
func PeriodBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MonthlyBalanceResponse is the JSON response format for monthly balances
type MonthlyBalanceResponse struct {
	ID                         uint       `json:"id"`
	BuildingID                 uint       `json:"building_id"`
	Year                       int        `json:"year"`
	Month                      int        `json:"month"`
	TotalExpenses              float64    `json:"total_expenses"`
	TotalPayments              float64    `json:"total_payments"`
	PreviousObligations        float64    `json:"previous_obligations"`
	ReserveFundAmount          float64    `json:"reserve_fund_amount"`
	ManagementFees             float64    `json:"management_fees"`
	ScheduledMaintenanceAmount float64    `json:"scheduled_maintenance_amount"`
	TotalObligations           float64    `json:"total_obligations"`
	NetResult                  float64    `json:"net_result"`
	CarryForward               float64    `json:"carry_forward"`
	AnnualCarryForward         float64    `json:"annual_carry_forward"`
	IsClosed                   bool       `json:"is_closed"`
	ClosedAt                   *time.Time `json:"closed_at,omitempty"`
}

// ToResponse converts MonthlyBalance to MonthlyBalanceResponse
func (m *MonthlyBalance) ToResponse() MonthlyBalanceResponse {
	return MonthlyBalanceResponse{
		ID:                         m.ID,
		BuildingID:                 m.BuildingID,
		Year:                       m.Year,
		Month:                      m.Month,
		TotalExpenses:              m.TotalExpenses,
		TotalPayments:              m.TotalPayments,
		PreviousObligations:        m.PreviousObligations,
		ReserveFundAmount:          m.ReserveFundAmount,
		ManagementFees:             m.ManagementFees,
		ScheduledMaintenanceAmount: m.ScheduledMaintenanceAmount,
		TotalObligations:           m.TotalObligations(),
		NetResult:                  m.NetResult(),
		CarryForward:               m.CarryForward,
		AnnualCarryForward:         m.AnnualCarryForward,
		IsClosed:                   m.IsClosed,
		ClosedAt:                   m.ClosedAt,
	}
}
