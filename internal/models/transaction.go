package models

import (
	"time"
)

// Transaction is one immutable ledger entry for an apartment. Amount is
// signed: negative for charges, positive for payments. Each entry
// snapshots the cached balance before and after it was applied; entries
// are never edited or deleted, corrections are new offsetting entries.
type Transaction struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	BuildingID  uint    `gorm:"not null;index" json:"building_id"`
	ApartmentID uint    `gorm:"not null;index" json:"apartment_id"`
	Amount      float64 `gorm:"type:decimal(12,2);not null" json:"amount"`
	Type        string  `gorm:"not null;index" json:"type"`
	Description string  `json:"description"`

	BalanceBefore float64 `gorm:"type:decimal(12,2);not null" json:"balance_before"`
	BalanceAfter  float64 `gorm:"type:decimal(12,2);not null" json:"balance_after"`

	// Originating records, when applicable
	ExpenseID *uint `gorm:"index" json:"expense_id,omitempty"`
	PaymentID *uint `gorm:"index" json:"payment_id,omitempty"`

	// Opaque correlation token for audit trails
	Reference string `gorm:"type:uuid" json:"reference"`

	TransactionDate time.Time `gorm:"not null;index" json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`

	// Associations
	Apartment *Apartment `gorm:"foreignKey:ApartmentID" json:"apartment,omitempty"`
	Expense   *Expense   `gorm:"foreignKey:ExpenseID" json:"expense,omitempty"`
	Payment   *Payment   `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
}

// Entry type constants. Charge kinds carry negative amounts, payment
// kinds positive ones; balance_adjustment pins the running balance to
// its recorded balance_after during replays.
const (
	EntryCommonExpenseCharge  = "common_expense_charge"
	EntryExpenseIssued        = "expense_issued"
	EntryInterestCharge       = "interest_charge"
	EntryPenaltyCharge        = "penalty_charge"
	EntryManagementFee        = "management_fee"
	EntryCommonExpensePayment = "common_expense_payment"
	EntryPaymentReceived      = "payment_received"
	EntryRefund               = "refund"
	EntryBalanceAdjustment    = "balance_adjustment"
)

// TableName specifies the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// IsCharge returns true for entry types that reduce the balance
func (t *Transaction) IsCharge() bool {
	switch t.Type {
	case EntryCommonExpenseCharge, EntryExpenseIssued, EntryInterestCharge,
		EntryPenaltyCharge, EntryManagementFee:
		return true
	}
	return false
}

// IsPayment returns true for entry types that increase the balance
func (t *Transaction) IsPayment() bool {
	switch t.Type {
	case EntryCommonExpensePayment, EntryPaymentReceived, EntryRefund:
		return true
	}
	return false
}

// IsAdjustment returns true for manual balance corrections
func (t *Transaction) IsAdjustment() bool {
	return t.Type == EntryBalanceAdjustment
}

// ValidEntryType reports whether t is a known ledger entry type.
func ValidEntryType(t string) bool {
	tx := Transaction{Type: t}
	return tx.IsCharge() || tx.IsPayment() || tx.IsAdjustment()
}

// TransactionResponse is the JSON response format for ledger entries
type TransactionResponse struct {
	ID              uint      `json:"id"`
	BuildingID      uint      `json:"building_id"`
	ApartmentID     uint      `json:"apartment_id"`
	Amount          float64   `json:"amount"`
	Type            string    `json:"type"`
	Description     string    `json:"description"`
	BalanceBefore   float64   `json:"balance_before"`
	BalanceAfter    float64   `json:"balance_after"`
	ExpenseID       *uint     `json:"expense_id,omitempty"`
	PaymentID       *uint     `json:"payment_id,omitempty"`
	Reference       string    `json:"reference"`
	TransactionDate time.Time `json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse converts Transaction to TransactionResponse
func (t *Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		BuildingID:      t.BuildingID,
		ApartmentID:     t.ApartmentID,
		Amount:          t.Amount,
		Type:            t.Type,
		Description:     t.Description,
		BalanceBefore:   t.BalanceBefore,
		BalanceAfter:    t.BalanceAfter,
		ExpenseID:       t.ExpenseID,
		PaymentID:       t.PaymentID,
		Reference:       t.Reference,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
	}
}
