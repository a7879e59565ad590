package services

import (
	"github.com/sgavril/condoflow-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Building     *BuildingService
	Ledger       *LedgerService
	Balance      *BalanceService
	Distribution *DistributionService
	Heating      *HeatingService
	ReserveFund  *ReserveFundService
	Closing      *ClosingService
	Payment      *PaymentService
	Dashboard    *DashboardService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Building:     NewBuildingService(repos.Building, repos.Apartment),
		Ledger:       NewLedgerService(repos.Ledger, repos.Apartment),
		Balance:      NewBalanceService(repos.Ledger, repos.Apartment),
		Distribution: NewDistributionService(repos.Expense, repos.Apartment, repos.Ledger),
		Heating:      NewHeatingService(repos.Expense, repos.Apartment, repos.Building, repos.Meter, repos.Ledger),
		ReserveFund:  NewReserveFundService(repos.ReserveFund, repos.Apartment, repos.Expense, repos.Ledger, repos.MonthlyBalance),
		Closing:      NewClosingService(repos.MonthlyBalance, repos.Expense, repos.Payment),
		Payment:      NewPaymentService(repos.Payment, repos.Apartment, repos.Ledger),
		Dashboard:    NewDashboardService(repos.Expense, repos.Payment, repos.Apartment),
	}
}
