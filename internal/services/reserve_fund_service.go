package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/repository"
)

// ReserveFundService collects a building's savings goal in monthly
// contributions, gated by the absence of outstanding debt.
//
// What counts as "outstanding obligations" for the gate (in particular
// whether management-fee charges belong in it) is a product decision
// the caller makes: CollectRequest carries the already-scoped figure
// instead of this service hard-coding a filter.
type ReserveFundService struct {
	reserveRepo   repository.ReserveFundRepository
	apartmentRepo repository.ApartmentRepository
	expenseRepo   repository.ExpenseRepository
	ledgerRepo    repository.LedgerRepository
	monthlyRepo   repository.MonthlyBalanceRepository
}

// NewReserveFundService creates a new reserve fund service
func NewReserveFundService(
	reserveRepo repository.ReserveFundRepository,
	apartmentRepo repository.ApartmentRepository,
	expenseRepo repository.ExpenseRepository,
	ledgerRepo repository.LedgerRepository,
	monthlyRepo repository.MonthlyBalanceRepository,
) *ReserveFundService {
	return &ReserveFundService{
		reserveRepo:   reserveRepo,
		apartmentRepo: apartmentRepo,
		expenseRepo:   expenseRepo,
		ledgerRepo:    ledgerRepo,
		monthlyRepo:   monthlyRepo,
	}
}

// CollectRequest asks for one month's reserve contribution.
type CollectRequest struct {
	BuildingID uint `json:"building_id"`
	Year       int  `json:"year"`
	Month      int  `json:"month"`

	// Caller-scoped total of unpaid obligations as of the prior
	// month-end. Any positive value blocks collection; the engine
	// prioritizes clearing debt before saving.
	OutstandingObligations float64 `json:"outstanding_obligations"`
}

// CollectionResult reports one month's reserve contribution.
type CollectionResult struct {
	BuildingID uint           `json:"building_id"`
	Year       int            `json:"year"`
	Month      int            `json:"month"`
	Collected  float64        `json:"collected"`
	Shares     []models.Share `json:"shares"`
}

// Configure creates or replaces a building's savings goal.
func (s *ReserveFundService) Configure(ctx context.Context, cfg *models.ReserveFundConfig) error {
	if cfg.Goal <= 0 {
		return ErrInvalidAmount
	}
	if cfg.DurationMonths <= 0 {
		return fmt.Errorf("duration must be at least one month")
	}
	if err := s.reserveRepo.Upsert(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save reserve fund config: %w", err)
	}
	return nil
}

// CollectForMonth distributes the monthly target across apartments by
// participation mills, recording the contribution as an issued
// reserve-fund expense so the month close picks it up. Collection runs
// at most once per period and is refused while outstanding obligations
// exist or outside the window.
func (s *ReserveFundService) CollectForMonth(ctx context.Context, req CollectRequest) (*CollectionResult, error) {
	cfg, err := s.reserveRepo.FindByBuilding(ctx, req.BuildingID)
	if err != nil {
		return nil, ErrNotFound
	}

	if !cfg.Covers(req.Year, req.Month) {
		return nil, ErrOutsideCollectionWindow
	}

	// One contribution per building and month. A retry after a
	// successful collection is a conflict, not a second charge.
	start, end := models.PeriodBounds(req.Year, req.Month)
	collected, err := s.expenseRepo.ExistsIssuedInCategory(ctx, req.BuildingID, models.CategoryReserveFund, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to check prior collection: %w", err)
	}
	if collected {
		return nil, fmt.Errorf("%w: reserve contribution %d/%02d already collected", ErrAlreadyDistributed, req.Year, req.Month)
	}

	if req.OutstandingObligations > 0 {
		return nil, fmt.Errorf("%w: %.2f outstanding", ErrCollectionBlocked, req.OutstandingObligations)
	}

	target := cfg.MonthlyTarget()
	if target <= 0 {
		return nil, ErrInvalidAmount
	}

	apartments, err := s.apartmentRepo.FindByBuilding(ctx, req.BuildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load apartments: %w", err)
	}
	if len(apartments) == 0 {
		return nil, fmt.Errorf("building %d has no apartments", req.BuildingID)
	}
	if err := validateMills(apartments, models.MillsParticipation); err != nil {
		return nil, err
	}

	shares, err := models.MillsRule{Kind: models.MillsParticipation}.Shares(target, apartments)
	if err != nil {
		return nil, fmt.Errorf("failed to compute contributions: %w", err)
	}

	// The contribution is an ordinary expense record so the monthly
	// close accounts for it under its reserve_fund bucket.
	expense := &models.Expense{
		BuildingID:       req.BuildingID,
		Amount:           target,
		Category:         models.CategoryReserveFund,
		DistributionType: models.DistributionByParticipationMills,
		Description:      fmt.Sprintf("Reserve fund contribution %d/%02d", req.Year, req.Month),
		ExpenseDate:      start,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create reserve expense: %w", err)
	}

	entries := chargeEntries(expense, shares)
	if err := s.ledgerRepo.AppendDistribution(ctx, expense.ID, entries); err != nil {
		return nil, fmt.Errorf("failed to write reserve charges: %w", err)
	}

	return &CollectionResult{
		BuildingID: req.BuildingID,
		Year:       req.Year,
		Month:      req.Month,
		Collected:  target,
		Shares:     shares,
	}, nil
}

// OutstandingAsOfPriorMonthEnd is the default gate input: the summed
// debt of the building's apartments at the end of the month before the
// collection month, with no category filtering applied.
func (s *ReserveFundService) OutstandingAsOfPriorMonthEnd(ctx context.Context, buildingID uint, year, month int) (float64, error) {
	apartments, err := s.apartmentRepo.FindByBuilding(ctx, buildingID)
	if err != nil {
		return 0, fmt.Errorf("failed to load apartments: %w", err)
	}

	start, _ := models.PeriodBounds(year, month)
	priorEnd := start.Add(-time.Nanosecond)

	var outstanding float64
	for _, apartment := range apartments {
		entries, err := s.ledgerRepo.FindByApartmentUpTo(ctx, apartment.ID, priorEnd)
		if err != nil {
			return 0, fmt.Errorf("failed to load ledger: %w", err)
		}
		if balance := replay(entries); balance < 0 {
			outstanding += -balance
		}
	}
	return models.RoundCents(outstanding), nil
}

// Progress reports collected reserve amounts against the goal.
func (s *ReserveFundService) Progress(ctx context.Context, buildingID uint) (*models.ReserveFundProgress, error) {
	cfg, err := s.reserveRepo.FindByBuilding(ctx, buildingID)
	if err != nil {
		return nil, ErrNotFound
	}

	collected, err := s.monthlyRepo.SumReserve(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum reserve contributions: %w", err)
	}

	progress := &models.ReserveFundProgress{
		BuildingID:    buildingID,
		Goal:          cfg.Goal,
		Collected:     models.RoundCents(collected),
		MonthlyTarget: cfg.MonthlyTarget(),
	}
	if cfg.Goal > 0 {
		progress.PercentReached = models.RoundCents(collected / cfg.Goal * 100)
	}
	return progress, nil
}
