package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/repository"
)

// DistributionService splits building expenses across apartments and
// writes the resulting charges to the ledger. Distribution is
// idempotent: an expense is issued at most once.
type DistributionService struct {
	expenseRepo   repository.ExpenseRepository
	apartmentRepo repository.ApartmentRepository
	ledgerRepo    repository.LedgerRepository
}

// NewDistributionService creates a new distribution service
func NewDistributionService(
	expenseRepo repository.ExpenseRepository,
	apartmentRepo repository.ApartmentRepository,
	ledgerRepo repository.LedgerRepository,
) *DistributionService {
	return &DistributionService{
		expenseRepo:   expenseRepo,
		apartmentRepo: apartmentRepo,
		ledgerRepo:    ledgerRepo,
	}
}

// DistributionResult reports the per-apartment shares of one expense.
type DistributionResult struct {
	ExpenseID uint           `json:"expense_id"`
	Total     float64        `json:"total"`
	Shares    []models.Share `json:"shares"`
}

// CreateExpense validates and records an expense awaiting distribution.
func (s *DistributionService) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !models.ValidCategory(expense.Category) {
		return fmt.Errorf("unknown expense category %q", expense.Category)
	}
	if !models.ValidDistributionType(expense.DistributionType) {
		return fmt.Errorf("%w: %q", ErrUnknownDistributionType, expense.DistributionType)
	}
	// Sub-cent inputs would break share conservation downstream.
	expense.Amount = models.RoundCents(expense.Amount)
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// Distribute computes each apartment's share of an expense and writes
// one charge entry per apartment, atomically with the issued flag.
// Re-invoking on an issued expense returns ErrAlreadyDistributed so a
// caller can tell "already done" apart from "done just now".
func (s *DistributionService) Distribute(ctx context.Context, expenseID uint) (*DistributionResult, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, ErrNotFound
	}
	if expense.IsIssued {
		return nil, ErrAlreadyDistributed
	}
	if expense.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	apartments, err := s.apartmentRepo.FindByBuilding(ctx, expense.BuildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load apartments: %w", err)
	}
	if len(apartments) == 0 {
		return nil, fmt.Errorf("building %d has no apartments", expense.BuildingID)
	}

	// Mills-based rules require the building-wide invariant to hold.
	if expense.DistributionType != models.DistributionEqualShare {
		if err := validateMills(apartments, models.MillsParticipation); err != nil {
			return nil, err
		}
	}

	rule, err := models.RuleFor(expense.DistributionType, expense.TargetApartmentIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownDistributionType, err)
	}

	shares, err := rule.Shares(expense.Amount, apartments)
	if err != nil {
		return nil, fmt.Errorf("failed to compute shares: %w", err)
	}

	entries := chargeEntries(expense, shares)
	if err := s.ledgerRepo.AppendDistribution(ctx, expense.ID, entries); err != nil {
		if errors.Is(err, repository.ErrExpenseAlreadyIssued) {
			return nil, ErrAlreadyDistributed
		}
		return nil, fmt.Errorf("failed to write charge entries: %w", err)
	}

	return &DistributionResult{
		ExpenseID: expense.ID,
		Total:     models.SumShares(shares),
		Shares:    shares,
	}, nil
}

// ListExpenses returns a building's expenses with dates in [from, to).
func (s *DistributionService) ListExpenses(ctx context.Context, buildingID uint, from, to time.Time) ([]models.Expense, error) {
	return s.expenseRepo.FindByBuilding(ctx, buildingID, from, to)
}

// Shares returns what each apartment would be charged, without touching
// the ledger. Used by the reporting boundary for previews.
func (s *DistributionService) Shares(ctx context.Context, expenseID uint) ([]models.Share, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, ErrNotFound
	}

	apartments, err := s.apartmentRepo.FindByBuilding(ctx, expense.BuildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load apartments: %w", err)
	}

	rule, err := models.RuleFor(expense.DistributionType, expense.TargetApartmentIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownDistributionType, err)
	}
	return rule.Shares(expense.Amount, apartments)
}

// chargeEntries builds the ledger entries for a set of shares. Shares
// that round to zero produce no entry; the ledger rejects zero amounts.
func chargeEntries(expense *models.Expense, shares []models.Share) []models.Transaction {
	entryType := models.EntryExpenseIssued
	if expense.Category == models.CategoryManagementFee {
		entryType = models.EntryManagementFee
	}

	var entries []models.Transaction
	for _, share := range shares {
		if share.Amount == 0 {
			continue
		}
		entries = append(entries, models.Transaction{
			BuildingID:      expense.BuildingID,
			ApartmentID:     share.ApartmentID,
			Amount:          -share.Amount,
			Type:            entryType,
			Description:     fmt.Sprintf("Expense #%d (%s)", expense.ID, expense.Category),
			ExpenseID:       &expense.ID,
			Reference:       uuid.NewString(),
			TransactionDate: expense.ExpenseDate,
		})
	}
	return entries
}

// validateMills checks the building-wide per-mille invariant for the
// given kinds.
func validateMills(apartments []models.Apartment, kinds ...models.MillsKind) error {
	for _, kind := range kinds {
		if sum := models.MillsSum(apartments, kind); sum != models.MillsTotal {
			return fmt.Errorf("%w: %s mills sum to %d", ErrMillsInvariant, kind, sum)
		}
	}
	return nil
}
