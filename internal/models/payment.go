package models

import (
	"time"
)

// Payment is a recorded payment from an apartment. Immutable once
// created; corrections are new entries, not edits.
type Payment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BuildingID  uint      `gorm:"not null;index" json:"building_id"`
	ApartmentID uint      `gorm:"not null;index" json:"apartment_id"`
	Amount      float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate time.Time `gorm:"type:date;not null;index" json:"payment_date"`
	Method      string    `gorm:"not null;default:cash" json:"method"`

	// Portion of Amount that covered debt older than the current billing
	// period. Informational; does not change the balance arithmetic.
	PreviousObligationsAmount float64 `gorm:"type:decimal(12,2);not null;default:0" json:"previous_obligations_amount"`

	ReceiptNumber string    `gorm:"type:uuid;uniqueIndex" json:"receipt_number"`
	CreatedAt     time.Time `json:"created_at"`

	// Associations
	Apartment *Apartment `gorm:"foreignKey:ApartmentID" json:"apartment,omitempty"`
}

// Payment method constants
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCard         = "card"
	PaymentMethodCheck        = "check"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodCheck:
		return true
	}
	return false
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// PreviousObligationsPortion computes how much of a payment settles debt
// that existed before the payment, given the balance it was applied to.
func PreviousObligationsPortion(balanceBefore, amount float64) float64 {
	if balanceBefore >= 0 {
		return 0
	}
	debt := -balanceBefore
	if amount < debt {
		return RoundCents(amount)
	}
	return RoundCents(debt)
}

// PaymentResponse is the JSON response format for payments
type PaymentResponse struct {
	ID                        uint      `json:"id"`
	BuildingID                uint      `json:"building_id"`
	ApartmentID               uint      `json:"apartment_id"`
	Amount                    float64   `json:"amount"`
	PaymentDate               time.Time `json:"payment_date"`
	Method                    string    `json:"method"`
	PreviousObligationsAmount float64   `json:"previous_obligations_amount"`
	ReceiptNumber             string    `json:"receipt_number"`
	CreatedAt                 time.Time `json:"created_at"`
}

// ToResponse converts Payment to PaymentResponse
func (p *Payment) ToResponse() PaymentResponse {
	return PaymentResponse{
		ID:                        p.ID,
		BuildingID:                p.BuildingID,
		ApartmentID:               p.ApartmentID,
		Amount:                    p.Amount,
		PaymentDate:               p.PaymentDate,
		Method:                    p.Method,
		PreviousObligationsAmount: p.PreviousObligationsAmount,
		ReceiptNumber:             p.ReceiptNumber,
		CreatedAt:                 p.CreatedAt,
	}
}
