package services

import (
	"context"
	"fmt"

	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/repository"
)

type DashboardService struct {
	expenseRepo   repository.ExpenseRepository
	paymentRepo   repository.PaymentRepository
	apartmentRepo repository.ApartmentRepository
}

func NewDashboardService(
	expenseRepo repository.ExpenseRepository,
	paymentRepo repository.PaymentRepository,
	apartmentRepo repository.ApartmentRepository,
) *DashboardService {
	return &DashboardService{
		expenseRepo:   expenseRepo,
		paymentRepo:   paymentRepo,
		apartmentRepo: apartmentRepo,
	}
}

// MonthlySummary is a building-level view of one period: issued
// obligations against collected payments plus debtor headcount.
type MonthlySummary struct {
	BuildingID       uint                               `json:"building_id"`
	Year             int                                `json:"year"`
	Month            int                                `json:"month"`
	TotalObligations float64                            `json:"total_obligations"`
	TotalPayments    float64                            `json:"total_payments"`
	CoveragePercent  float64                            `json:"coverage_percent"`
	ByCategory       map[models.ExpenseCategory]float64 `json:"by_category"`
	DebtorCount      int                                `json:"debtor_count"`
	TotalDebt        float64                            `json:"total_debt"`
}

// Summary aggregates a building's billing position for one period.
// Obligations come from issued expenses in the period; debt comes from
// the cached apartment balances, which the reconciliation sweep keeps
// honest against the ledger.
func (s *DashboardService) Summary(ctx context.Context, buildingID uint, year, month int) (*MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	start, end := models.PeriodBounds(year, month)

	sums, err := s.expenseRepo.SumIssuedByCategory(ctx, buildingID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	payments, err := s.paymentRepo.SumByBuildingBetween(ctx, buildingID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	var obligations float64
	for _, total := range sums {
		obligations += total
	}

	summary := &MonthlySummary{
		BuildingID:       buildingID,
		Year:             year,
		Month:            month,
		TotalObligations: models.RoundCents(obligations),
		TotalPayments:    models.RoundCents(payments),
		ByCategory:       sums,
	}
	if summary.TotalObligations > 0 {
		summary.CoveragePercent = models.RoundCents(summary.TotalPayments / summary.TotalObligations * 100)
	}

	apartments, err := s.apartmentRepo.FindByBuilding(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load apartments: %w", err)
	}
	for _, apartment := range apartments {
		if apartment.Owes() {
			summary.DebtorCount++
			summary.TotalDebt += -apartment.CurrentBalance
		}
	}
	summary.TotalDebt = models.RoundCents(summary.TotalDebt)

	return summary, nil
}
