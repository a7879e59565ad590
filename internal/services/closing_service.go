package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/repository"
	"github.com/sgavril/condoflow-api/internal/statemachine"
	"github.com/sgavril/condoflow-api/pkg/logger"
)

// ClosingService turns a calendar month into an immutable snapshot and
// seeds the next month's opening obligation. Closing is one-way; a
// closed month is never reopened or recomputed.
type ClosingService struct {
	monthlyRepo repository.MonthlyBalanceRepository
	expenseRepo repository.ExpenseRepository
	paymentRepo repository.PaymentRepository
}

// NewClosingService creates a new closing service
func NewClosingService(
	monthlyRepo repository.MonthlyBalanceRepository,
	expenseRepo repository.ExpenseRepository,
	paymentRepo repository.PaymentRepository,
) *ClosingService {
	return &ClosingService{
		monthlyRepo: monthlyRepo,
		expenseRepo: expenseRepo,
		paymentRepo: paymentRepo,
	}
}

// Get returns the month's snapshot, creating an open one lazily.
func (s *ClosingService) Get(ctx context.Context, buildingID uint, year, month int) (*models.MonthlyBalance, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	return s.monthlyRepo.FindOrCreate(ctx, buildingID, year, month)
}

// Close aggregates the month's totals, computes the carry-forward and
// seeds the following month. Closing an already-closed month is an
// error, not a no-op, so a duplicate close cannot re-apply the carry.
func (s *ClosingService) Close(ctx context.Context, buildingID uint, year, month int) (*models.MonthlyBalance, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	mb, err := s.monthlyRepo.FindOrCreate(ctx, buildingID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly balance: %w", err)
	}

	machine := statemachine.NewMonthlyBalanceFSM(mb)
	if err := machine.Close(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMonthAlreadyClosed, err)
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

	var general float64
	for category, total := range sums {
		switch category {
		case models.CategoryManagementFee, models.CategoryReserveFund, models.CategoryScheduledMaintenance:
			// tracked in their own buckets below
		default:
			general += total
		}
	}

	mb.TotalExpenses = models.RoundCents(general)
	mb.ManagementFees = models.RoundCents(sums[models.CategoryManagementFee])
	mb.ReserveFundAmount = models.RoundCents(sums[models.CategoryReserveFund])
	mb.ScheduledMaintenanceAmount = models.RoundCents(sums[models.CategoryScheduledMaintenance])
	mb.TotalPayments = models.RoundCents(payments)

	carry := mb.ComputeCarryForward()
	mb.CarryForward = carry
	if month == 12 {
		// The December->January carry is recorded separately so the
		// year boundary stays auditable on the closing record.
		mb.AnnualCarryForward = carry
	}

	// Pre-check the seed target for a conflicting manual correction.
	nextYear, nextMonth := models.NextPeriod(year, month)
	next, err := s.monthlyRepo.Find(ctx, buildingID, nextYear, nextMonth)
	if err == nil && next.PreviousObligations != 0 && !models.AlmostEqual(next.PreviousObligations, carry) {
		return nil, fmt.Errorf("%w: month %d/%02d has previous obligations %.2f, computed carry %.2f",
			ErrCarryForwardConflict, nextYear, nextMonth, next.PreviousObligations, carry)
	}

	if err := s.monthlyRepo.CloseAndSeed(ctx, mb, carry); err != nil {
		switch {
		case errors.Is(err, repository.ErrMonthClosed):
			return nil, ErrMonthAlreadyClosed
		case errors.Is(err, repository.ErrCarryForwardConflict):
			return nil, ErrCarryForwardConflict
		}
		return nil, fmt.Errorf("failed to close month: %w", err)
	}

	logger.Info("monthly balance closed",
		"building_id", buildingID, "year", year, "month", month,
		"obligations", mb.TotalObligations(), "payments", mb.TotalPayments,
		"carry_forward", carry)

	return mb, nil
}

// History returns all of a building's monthly snapshots in period order.
func (s *ClosingService) History(ctx context.Context, buildingID uint) ([]models.MonthlyBalance, error) {
	return s.monthlyRepo.FindByBuilding(ctx, buildingID)
}
