package services

import (
	"context"
	"testing"
	"time"

	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func reserveFixture() (*mockReserveFundRepo, *mockApartmentRepo, *mockExpenseRepo, *mockLedgerRepo, *mockMonthlyBalanceRepo) {
	reserveRepo := &mockReserveFundRepo{}
	reserveRepo.mockFindByBuilding = func(ctx context.Context, buildingID uint) (*models.ReserveFundConfig, error) {
		return &models.ReserveFundConfig{
			BuildingID:     buildingID,
			Goal:           12000.00,
			DurationMonths: 24,
			StartDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}, nil
	}

	apartmentRepo := &mockApartmentRepo{}
	apartmentRepo.mockFindByBuilding = func(ctx context.Context, buildingID uint) ([]models.Apartment, error) {
		return []models.Apartment{
			{ID: 1, ParticipationMills: 400},
			{ID: 2, ParticipationMills: 600},
		}, nil
	}

	expenseRepo := &mockExpenseRepo{}
	expenseRepo.mockCreate = func(ctx context.Context, expense *models.Expense) error {
		expense.ID = 77
		return nil
	}
	expenseRepo.mockExistsIssuedInCategory = func(ctx context.Context, buildingID uint, category models.ExpenseCategory, from, to time.Time) (bool, error) {
		return false, nil
	}

	ledgerRepo := &mockLedgerRepo{}
	ledgerRepo.mockAppendDistribution = func(ctx context.Context, expenseID uint, entries []models.Transaction) error {
		return nil
	}

	monthlyRepo := &mockMonthlyBalanceRepo{}

	return reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo
}

func TestReserveFundService_CollectForMonth(t *testing.T) {
	reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo := reserveFixture()
	service := NewReserveFundService(reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo)

	var createdExpense *models.Expense
	expenseRepo.mockCreate = func(ctx context.Context, expense *models.Expense) error {
		expense.ID = 77
		createdExpense = expense
		return nil
	}

	result, err := service.CollectForMonth(context.Background(), CollectRequest{
		BuildingID: 1, Year: 2026, Month: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, 500.00, result.Collected)
	assert.Equal(t, 200.00, result.Shares[0].Amount)
	assert.Equal(t, 300.00, result.Shares[1].Amount)

	// The contribution lands as an issued reserve-fund expense so the
	// month close accounts for it.
	assert.Equal(t, models.CategoryReserveFund, createdExpense.Category)
	assert.Equal(t, 500.00, createdExpense.Amount)
}

func TestReserveFundService_CollectForMonth_SecondCollectionRejected(t *testing.T) {
	reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo := reserveFixture()
	service := NewReserveFundService(reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo)

	created := 0
	expenseRepo.mockCreate = func(ctx context.Context, expense *models.Expense) error {
		expense.ID = 77
		created++
		return nil
	}
	issued := false
	expenseRepo.mockExistsIssuedInCategory = func(ctx context.Context, buildingID uint, category models.ExpenseCategory, from, to time.Time) (bool, error) {
		return issued, nil
	}
	var charged float64
	ledgerRepo.mockAppendDistribution = func(ctx context.Context, expenseID uint, entries []models.Transaction) error {
		for _, e := range entries {
			charged += -e.Amount
		}
		issued = true
		return nil
	}

	req := CollectRequest{BuildingID: 1, Year: 2026, Month: 3}

	_, err := service.CollectForMonth(context.Background(), req)
	assert.NoError(t, err)

	// A retry of the same period must not charge the target again.
	_, err = service.CollectForMonth(context.Background(), req)
	assert.ErrorIs(t, err, ErrAlreadyDistributed)
	assert.Equal(t, 1, created)
	assert.Equal(t, 500.00, charged)
}

func TestReserveFundService_CollectForMonth_BlockedByOutstandingDebt(t *testing.T) {
	reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo := reserveFixture()
	service := NewReserveFundService(reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo)

	_, err := service.CollectForMonth(context.Background(), CollectRequest{
		BuildingID: 1, Year: 2026, Month: 3,
		OutstandingObligations: 120.00,
	})
	assert.ErrorIs(t, err, ErrCollectionBlocked)
}

func TestReserveFundService_CollectForMonth_OutsideWindow(t *testing.T) {
	reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo := reserveFixture()
	service := NewReserveFundService(reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo)

	_, err := service.CollectForMonth(context.Background(), CollectRequest{
		BuildingID: 1, Year: 2030, Month: 1,
	})
	assert.ErrorIs(t, err, ErrOutsideCollectionWindow)
}

func TestReserveFundService_OutstandingAsOfPriorMonthEnd(t *testing.T) {
	reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo := reserveFixture()
	service := NewReserveFundService(reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo)

	ledgerRepo.mockFindByApartmentUpTo = func(ctx context.Context, apartmentID uint, upTo time.Time) ([]models.Transaction, error) {
		if apartmentID == 1 {
			// In debt 75.
			return []models.Transaction{{Type: models.EntryExpenseIssued, Amount: -75.00}}, nil
		}
		// In credit; credits never offset another apartment's debt.
		return []models.Transaction{{Type: models.EntryPaymentReceived, Amount: 40.00}}, nil
	}

	outstanding, err := service.OutstandingAsOfPriorMonthEnd(context.Background(), 1, 2026, 3)
	assert.NoError(t, err)
	assert.Equal(t, 75.00, outstanding)
}

func TestReserveFundService_Progress(t *testing.T) {
	reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo := reserveFixture()
	monthlyRepo.mockSumReserve = func(ctx context.Context, buildingID uint) (float64, error) {
		return 3000.00, nil
	}
	service := NewReserveFundService(reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo)

	progress, err := service.Progress(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 12000.00, progress.Goal)
	assert.Equal(t, 3000.00, progress.Collected)
	assert.Equal(t, 500.00, progress.MonthlyTarget)
	assert.Equal(t, 25.00, progress.PercentReached)
}

func TestReserveFundService_Configure_Validation(t *testing.T) {
	reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo := reserveFixture()
	service := NewReserveFundService(reserveRepo, apartmentRepo, expenseRepo, ledgerRepo, monthlyRepo)

	err := service.Configure(context.Background(), &models.ReserveFundConfig{Goal: 0, DurationMonths: 12})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	err = service.Configure(context.Background(), &models.ReserveFundConfig{Goal: 1000, DurationMonths: 0})
	assert.Error(t, err)
}
