package services

import (
	"context"
	"testing"
	"time"

	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBalanceService_BalanceAsOf_ReplaysSignedAmounts(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	ledgerRepo := &mockLedgerRepo{}
	service := NewBalanceService(ledgerRepo, apartmentRepo)

	apartmentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Apartment, error) {
		return &models.Apartment{ID: id}, nil
	}
	ledgerRepo.mockFindByApartmentUpTo = func(ctx context.Context, apartmentID uint, upTo time.Time) ([]models.Transaction, error) {
		return []models.Transaction{
			{Type: models.EntryExpenseIssued, Amount: -120.50},
			{Type: models.EntryPaymentReceived, Amount: 100.00},
			{Type: models.EntryManagementFee, Amount: -30.00},
		}, nil
	}

	balance, err := service.BalanceAsOf(context.Background(), 1, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, -50.50, balance)
}

func TestBalanceService_BalanceAsOf_AdjustmentPinsBalance(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	ledgerRepo := &mockLedgerRepo{}
	service := NewBalanceService(ledgerRepo, apartmentRepo)

	apartmentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Apartment, error) {
		return &models.Apartment{ID: id}, nil
	}
	ledgerRepo.mockFindByApartmentUpTo = func(ctx context.Context, apartmentID uint, upTo time.Time) ([]models.Transaction, error) {
		return []models.Transaction{
			{Type: models.EntryExpenseIssued, Amount: -200.00},
			{Type: models.EntryBalanceAdjustment, BalanceAfter: -80.00},
			{Type: models.EntryPaymentReceived, Amount: 80.00},
		}, nil
	}

	balance, err := service.BalanceAsOf(context.Background(), 1, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 0.00, balance)
}

func TestBalanceService_MonthlyBreakdown(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	ledgerRepo := &mockLedgerRepo{}
	service := NewBalanceService(ledgerRepo, apartmentRepo)

	apartmentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Apartment, error) {
		return &models.Apartment{ID: id}, nil
	}
	// Entries before June: a 40 debt carried in.
	ledgerRepo.mockFindByApartmentUpTo = func(ctx context.Context, apartmentID uint, upTo time.Time) ([]models.Transaction, error) {
		return []models.Transaction{
			{Type: models.EntryExpenseIssued, Amount: -40.00},
		}, nil
	}
	ledgerRepo.mockFindByApartmentBetween = func(ctx context.Context, apartmentID uint, from, to time.Time) ([]models.Transaction, error) {
		return []models.Transaction{
			{Type: models.EntryExpenseIssued, Amount: -100.00},
			{Type: models.EntryPaymentReceived, Amount: 60.00},
		}, nil
	}

	breakdown, err := service.MonthlyBreakdown(context.Background(), 1, 2026, 6)
	assert.NoError(t, err)
	assert.Equal(t, -40.00, breakdown.OpeningBalance)
	assert.Equal(t, 100.00, breakdown.Charges)
	assert.Equal(t, 60.00, breakdown.Payments)
	assert.Equal(t, -80.00, breakdown.ClosingBalance)
}

func TestBalanceService_Reconcile_DetectsDrift(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	ledgerRepo := &mockLedgerRepo{}
	service := NewBalanceService(ledgerRepo, apartmentRepo)

	apartmentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Apartment, error) {
		return &models.Apartment{ID: id, CurrentBalance: -75.00}, nil
	}
	ledgerRepo.mockFindByApartment = func(ctx context.Context, apartmentID uint) ([]models.Transaction, error) {
		return []models.Transaction{
			{Type: models.EntryExpenseIssued, Amount: -100.00},
			{Type: models.EntryPaymentReceived, Amount: 50.00},
		}, nil
	}

	result, err := service.Reconcile(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, result.Reconciled)
	assert.Equal(t, -50.00, result.LedgerBalance)
	assert.Equal(t, -25.00, result.Drift)
}

func TestBalanceService_Reconcile_ToleratesOneCent(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	ledgerRepo := &mockLedgerRepo{}
	service := NewBalanceService(ledgerRepo, apartmentRepo)

	apartmentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Apartment, error) {
		return &models.Apartment{ID: id, CurrentBalance: -49.99}, nil
	}
	ledgerRepo.mockFindByApartment = func(ctx context.Context, apartmentID uint) ([]models.Transaction, error) {
		return []models.Transaction{
			{Type: models.EntryExpenseIssued, Amount: -50.00},
		}, nil
	}

	result, err := service.Reconcile(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, result.Reconciled)
}

func TestBalanceService_ReconcileAll_ReportsOnlyDrifted(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	ledgerRepo := &mockLedgerRepo{}
	service := NewBalanceService(ledgerRepo, apartmentRepo)

	apartments := []models.Apartment{
		{ID: 1, CurrentBalance: -50.00},
		{ID: 2, CurrentBalance: 10.00},
	}
	apartmentRepo.mockFindAll = func(ctx context.Context) ([]models.Apartment, error) {
		return apartments, nil
	}
	apartmentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Apartment, error) {
		for i := range apartments {
			if apartments[i].ID == id {
				return &apartments[i], nil
			}
		}
		return nil, ErrNotFound
	}
	ledgerRepo.mockFindByApartment = func(ctx context.Context, apartmentID uint) ([]models.Transaction, error) {
		if apartmentID == 1 {
			return []models.Transaction{{Type: models.EntryExpenseIssued, Amount: -50.00}}, nil
		}
		// Apartment 2's cache says 10.00 but the ledger says zero.
		return nil, nil
	}

	drifted, err := service.ReconcileAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, drifted, 1)
	assert.Equal(t, uint(2), drifted[0].ApartmentID)
}
