package services

import (
	"context"
	"testing"
	"time"

	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

func millsApartments() []models.Apartment {
	return []models.Apartment{
		{ID: 1, BuildingID: 1, ParticipationMills: 250},
		{ID: 2, BuildingID: 1, ParticipationMills: 350},
		{ID: 3, BuildingID: 1, ParticipationMills: 400},
	}
}

func TestDistributionService_Distribute_WritesOneChargePerApartment(t *testing.T) {
	expenseRepo := &mockExpenseRepo{}
	apartmentRepo := &mockApartmentRepo{}
	ledgerRepo := &mockLedgerRepo{}
	service := NewDistributionService(expenseRepo, apartmentRepo, ledgerRepo)

	expenseRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Expense, error) {
		return &models.Expense{
			ID:               id,
			BuildingID:       1,
			Amount:           1000.00,
			Category:         models.CategoryCommon,
			DistributionType: models.DistributionByParticipationMills,
			ExpenseDate:      time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		}, nil
	}
	apartmentRepo.mockFindByBuilding = func(ctx context.Context, buildingID uint) ([]models.Apartment, error) {
		return millsApartments(), nil
	}

	var written []models.Transaction
	ledgerRepo.mockAppendDistribution = func(ctx context.Context, expenseID uint, entries []models.Transaction) error {
		written = entries
		return nil
	}

	result, err := service.Distribute(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, 1000.00, result.Total)
	assert.Len(t, written, 3)

	var charged float64
	for _, entry := range written {
		assert.Equal(t, models.EntryExpenseIssued, entry.Type)
		assert.Negative(t, entry.Amount)
		assert.Equal(t, uint(10), *entry.ExpenseID)
		charged += -entry.Amount
	}
	assert.Equal(t, 1000.00, models.RoundCents(charged))
}

func TestDistributionService_Distribute_AlreadyIssued(t *testing.T) {
	expenseRepo := &mockExpenseRepo{}
	service := NewDistributionService(expenseRepo, &mockApartmentRepo{}, &mockLedgerRepo{})

	expenseRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Expense, error) {
		return &models.Expense{ID: id, Amount: 100, IsIssued: true}, nil
	}

	result, err := service.Distribute(context.Background(), 10)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAlreadyDistributed)
}

func TestDistributionService_Distribute_RaceLosesToIssuedFlag(t *testing.T) {
	expenseRepo := &mockExpenseRepo{}
	apartmentRepo := &mockApartmentRepo{}
	ledgerRepo := &mockLedgerRepo{}
	service := NewDistributionService(expenseRepo, apartmentRepo, ledgerRepo)

	expenseRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Expense, error) {
		return &models.Expense{
			ID: id, BuildingID: 1, Amount: 300.00,
			Category:         models.CategoryCommon,
			DistributionType: models.DistributionEqualShare,
		}, nil
	}
	apartmentRepo.mockFindByBuilding = func(ctx context.Context, buildingID uint) ([]models.Apartment, error) {
		return millsApartments(), nil
	}
	// A concurrent distribution won the row lock first.
	ledgerRepo.mockAppendDistribution = func(ctx context.Context, expenseID uint, entries []models.Transaction) error {
		return repository.ErrExpenseAlreadyIssued
	}

	_, err := service.Distribute(context.Background(), 10)
	assert.ErrorIs(t, err, ErrAlreadyDistributed)
}

func TestDistributionService_Distribute_MillsInvariantViolation(t *testing.T) {
	expenseRepo := &mockExpenseRepo{}
	apartmentRepo := &mockApartmentRepo{}
	service := NewDistributionService(expenseRepo, apartmentRepo, &mockLedgerRepo{})

	expenseRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Expense, error) {
		return &models.Expense{
			ID: id, BuildingID: 1, Amount: 100.00,
			Category:         models.CategoryCommon,
			DistributionType: models.DistributionByParticipationMills,
		}, nil
	}
	apartmentRepo.mockFindByBuilding = func(ctx context.Context, buildingID uint) ([]models.Apartment, error) {
		return []models.Apartment{
			{ID: 1, ParticipationMills: 500},
			{ID: 2, ParticipationMills: 400},
		}, nil
	}

	_, err := service.Distribute(context.Background(), 10)
	assert.ErrorIs(t, err, ErrMillsInvariant)
}

func TestDistributionService_Distribute_EqualShareSkipsMillsCheck(t *testing.T) {
	expenseRepo := &mockExpenseRepo{}
	apartmentRepo := &mockApartmentRepo{}
	ledgerRepo := &mockLedgerRepo{}
	service := NewDistributionService(expenseRepo, apartmentRepo, ledgerRepo)

	expenseRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Expense, error) {
		return &models.Expense{
			ID: id, BuildingID: 1, Amount: 90.00,
			Category:         models.CategoryEqualShare,
			DistributionType: models.DistributionEqualShare,
		}, nil
	}
	// Mills don't sum to 1000, but equal_share doesn't use them.
	apartmentRepo.mockFindByBuilding = func(ctx context.Context, buildingID uint) ([]models.Apartment, error) {
		return []models.Apartment{
			{ID: 1, ParticipationMills: 10},
			{ID: 2, ParticipationMills: 20},
			{ID: 3, ParticipationMills: 30},
		}, nil
	}
	ledgerRepo.mockAppendDistribution = func(ctx context.Context, expenseID uint, entries []models.Transaction) error {
		return nil
	}

	result, err := service.Distribute(context.Background(), 10)
	assert.NoError(t, err)
	for _, share := range result.Shares {
		assert.Equal(t, 30.00, share.Amount)
	}
}

func TestDistributionService_Distribute_ManagementFeeEntryType(t *testing.T) {
	expenseRepo := &mockExpenseRepo{}
	apartmentRepo := &mockApartmentRepo{}
	ledgerRepo := &mockLedgerRepo{}
	service := NewDistributionService(expenseRepo, apartmentRepo, ledgerRepo)

	expenseRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Expense, error) {
		return &models.Expense{
			ID: id, BuildingID: 1, Amount: 100.00,
			Category:         models.CategoryManagementFee,
			DistributionType: models.DistributionByParticipationMills,
		}, nil
	}
	apartmentRepo.mockFindByBuilding = func(ctx context.Context, buildingID uint) ([]models.Apartment, error) {
		return millsApartments(), nil
	}

	var written []models.Transaction
	ledgerRepo.mockAppendDistribution = func(ctx context.Context, expenseID uint, entries []models.Transaction) error {
		written = entries
		return nil
	}

	_, err := service.Distribute(context.Background(), 10)
	assert.NoError(t, err)
	for _, entry := range written {
		assert.Equal(t, models.EntryManagementFee, entry.Type)
	}
}

func TestDistributionService_CreateExpense_Validation(t *testing.T) {
	service := NewDistributionService(&mockExpenseRepo{}, &mockApartmentRepo{}, &mockLedgerRepo{})

	err := service.CreateExpense(context.Background(), &models.Expense{
		Amount: 0, Category: models.CategoryCommon,
		DistributionType: models.DistributionEqualShare,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	err = service.CreateExpense(context.Background(), &models.Expense{
		Amount: 10, Category: "snacks",
		DistributionType: models.DistributionEqualShare,
	})
	assert.Error(t, err)

	err = service.CreateExpense(context.Background(), &models.Expense{
		Amount: 10, Category: models.CategoryCommon,
		DistributionType: "by_vibes",
	})
	assert.ErrorIs(t, err, ErrUnknownDistributionType)
}

func TestDistributionService_CreateExpense_RoundsAmountToCents(t *testing.T) {
	expenseRepo := &mockExpenseRepo{}
	var created *models.Expense
	expenseRepo.mockCreate = func(ctx context.Context, expense *models.Expense) error {
		created = expense
		return nil
	}
	service := NewDistributionService(expenseRepo, &mockApartmentRepo{}, &mockLedgerRepo{})

	// A sub-cent amount would make the rounded shares miss the stored
	// total; the boundary rounds before anything is persisted.
	err := service.CreateExpense(context.Background(), &models.Expense{
		Amount: 33.333333, Category: models.CategoryCommon,
		DistributionType: models.DistributionEqualShare,
	})
	assert.NoError(t, err)
	assert.Equal(t, 33.33, created.Amount)
}
