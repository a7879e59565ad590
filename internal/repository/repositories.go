package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Building       BuildingRepository
	Apartment      ApartmentRepository
	Expense        ExpenseRepository
	Ledger         LedgerRepository
	Payment        PaymentRepository
	MonthlyBalance MonthlyBalanceRepository
	ReserveFund    ReserveFundRepository
	Meter          MeterRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Building:       NewBuildingRepository(db),
		Apartment:      NewApartmentRepository(db),
		Expense:        NewExpenseRepository(db),
		Ledger:         NewLedgerRepository(db),
		Payment:        NewPaymentRepository(db),
		MonthlyBalance: NewMonthlyBalanceRepository(db),
		ReserveFund:    NewReserveFundRepository(db),
		Meter:          NewMeterRepository(db),
	}
}
