package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/repository"
	"github.com/sgavril/condoflow-api/pkg/logger"
)

// HeatingService distributes heating expenses as a fixed portion split
// by heating mills plus a variable portion split by metered consumption.
type HeatingService struct {
	expenseRepo   repository.ExpenseRepository
	apartmentRepo repository.ApartmentRepository
	buildingRepo  repository.BuildingRepository
	meterRepo     repository.MeterRepository
	ledgerRepo    repository.LedgerRepository
}

// NewHeatingService creates a new heating service
func NewHeatingService(
	expenseRepo repository.ExpenseRepository,
	apartmentRepo repository.ApartmentRepository,
	buildingRepo repository.BuildingRepository,
	meterRepo repository.MeterRepository,
	ledgerRepo repository.LedgerRepository,
) *HeatingService {
	return &HeatingService{
		expenseRepo:   expenseRepo,
		apartmentRepo: apartmentRepo,
		buildingRepo:  buildingRepo,
		meterRepo:     meterRepo,
		ledgerRepo:    ledgerRepo,
	}
}

// HeatingResult reports the split of a heating expense. When no meter
// data exists for the period, the variable portion stays undistributed
// and is reported here instead of being silently dropped.
type HeatingResult struct {
	ExpenseID             uint           `json:"expense_id"`
	FixedCost             float64        `json:"fixed_cost"`
	VariableCost          float64        `json:"variable_cost"`
	UndistributedVariable float64        `json:"undistributed_variable"`
	Shares                []models.Share `json:"shares"`
}

// DistributeHeating splits a heating expense for the given period and
// writes one combined charge entry per apartment. Idempotent on the
// expense's issued flag like any other distribution.
func (s *HeatingService) DistributeHeating(ctx context.Context, expenseID uint, year, month int) (*HeatingResult, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, ErrNotFound
	}
	if expense.Category != models.CategoryHeating {
		return nil, fmt.Errorf("expense %d is not a heating expense", expenseID)
	}
	if expense.IsIssued {
		return nil, ErrAlreadyDistributed
	}
	if expense.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	building, err := s.buildingRepo.FindByID(ctx, expense.BuildingID)
	if err != nil {
		return nil, ErrNotFound
	}

	apartments, err := s.apartmentRepo.FindByBuilding(ctx, expense.BuildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load apartments: %w", err)
	}
	if len(apartments) == 0 {
		return nil, fmt.Errorf("building %d has no apartments", expense.BuildingID)
	}
	if err := validateMills(apartments, models.MillsHeating); err != nil {
		return nil, err
	}

	fixedShare := building.HeatingFixedShare
	if fixedShare < 0 || fixedShare > 1 {
		return nil, fmt.Errorf("building %d has invalid heating fixed share %.2f", building.ID, fixedShare)
	}

	fixedCost := models.RoundCents(expense.Amount * fixedShare)
	variableCost := models.RoundCents(expense.Amount - fixedCost)

	fixedShares, err := models.MillsRule{Kind: models.MillsHeating}.Shares(fixedCost, apartments)
	if err != nil {
		return nil, fmt.Errorf("failed to split fixed cost: %w", err)
	}

	result := &HeatingResult{
		ExpenseID:    expense.ID,
		FixedCost:    fixedCost,
		VariableCost: variableCost,
	}

	combined := make(map[uint]float64, len(apartments))
	for _, share := range fixedShares {
		combined[share.ApartmentID] += share.Amount
	}

	readings, err := s.meterRepo.FindByBuildingPeriod(ctx, expense.BuildingID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load meter readings: %w", err)
	}
	consumption := make(map[uint]float64, len(readings))
	var totalConsumption float64
	for _, reading := range readings {
		consumption[reading.ApartmentID] = reading.Consumption
		totalConsumption += reading.Consumption
	}

	if variableCost > 0 && totalConsumption > 0 {
		variableShares, err := models.SplitByConsumption(variableCost, apartments, consumption)
		if err != nil {
			return nil, fmt.Errorf("failed to split variable cost: %w", err)
		}
		for _, share := range variableShares {
			combined[share.ApartmentID] += share.Amount
		}
	} else if variableCost > 0 {
		// No meter data for the period: hold the variable portion back
		// and surface it to the caller rather than mask it.
		result.UndistributedVariable = variableCost
		logger.Warn("heating variable portion undistributed, no consumption data",
			"building_id", expense.BuildingID, "expense_id", expense.ID,
			"amount", variableCost, "year", year, "month", month)
	}

	for _, apartment := range apartments {
		amount := models.RoundCents(combined[apartment.ID])
		if amount == 0 {
			continue
		}
		result.Shares = append(result.Shares, models.Share{
			ApartmentID: apartment.ID,
			Amount:      amount,
		})
	}

	entries := make([]models.Transaction, 0, len(result.Shares))
	for _, share := range result.Shares {
		entries = append(entries, models.Transaction{
			BuildingID:      expense.BuildingID,
			ApartmentID:     share.ApartmentID,
			Amount:          -share.Amount,
			Type:            models.EntryExpenseIssued,
			Description:     fmt.Sprintf("Heating expense #%d (%d/%02d)", expense.ID, year, month),
			ExpenseID:       &expense.ID,
			Reference:       uuid.NewString(),
			TransactionDate: expense.ExpenseDate,
		})
	}

	if err := s.ledgerRepo.AppendDistribution(ctx, expense.ID, entries); err != nil {
		if errors.Is(err, repository.ErrExpenseAlreadyIssued) {
			return nil, ErrAlreadyDistributed
		}
		return nil, fmt.Errorf("failed to write heating charges: %w", err)
	}

	return result, nil
}

// RecordMeterReading stores one apartment's consumption for a period.
func (s *HeatingService) RecordMeterReading(ctx context.Context, reading *models.MeterReading) error {
	if reading.Consumption < 0 {
		return fmt.Errorf("%w: consumption cannot be negative", ErrInvalidAmount)
	}
	if reading.Month < 1 || reading.Month > 12 {
		return fmt.Errorf("invalid month %d", reading.Month)
	}
	apartment, err := s.apartmentRepo.FindByID(ctx, reading.ApartmentID)
	if err != nil {
		return ErrNotFound
	}
	if apartment.BuildingID != reading.BuildingID {
		return fmt.Errorf("apartment %d does not belong to building %d",
			reading.ApartmentID, reading.BuildingID)
	}
	return s.meterRepo.Upsert(ctx, reading)
}
