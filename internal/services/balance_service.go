package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/repository"
)

// BalanceService derives balances from the ledger. The cached
// current_balance on the apartment is a projection; the ledger replay
// is authoritative, and Reconcile detects any divergence between them.
type BalanceService struct {
	ledgerRepo    repository.LedgerRepository
	apartmentRepo repository.ApartmentRepository
}

// NewBalanceService creates a new balance service
func NewBalanceService(ledgerRepo repository.LedgerRepository, apartmentRepo repository.ApartmentRepository) *BalanceService {
	return &BalanceService{
		ledgerRepo:    ledgerRepo,
		apartmentRepo: apartmentRepo,
	}
}

// MonthlyBreakdown summarizes one apartment's month.
type MonthlyBreakdown struct {
	ApartmentID    uint    `json:"apartment_id"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	OpeningBalance float64 `json:"opening_balance"`
	Charges        float64 `json:"charges"`
	Payments       float64 `json:"payments"`
	ClosingBalance float64 `json:"closing_balance"`
}

// ReconcileResult reports the replay check for one apartment.
type ReconcileResult struct {
	ApartmentID    uint    `json:"apartment_id"`
	CachedBalance  float64 `json:"cached_balance"`
	LedgerBalance  float64 `json:"ledger_balance"`
	Drift          float64 `json:"drift"`
	Reconciled     bool    `json:"reconciled"`
	EntriesCounted int     `json:"entries_counted"`
}

// BalanceAsOf replays the apartment's ledger up to and including the
// given date. Charge entries subtract, payment entries add, and
// balance-adjustment entries reset the running total to their recorded
// balance_after.
func (s *BalanceService) BalanceAsOf(ctx context.Context, apartmentID uint, date time.Time) (float64, error) {
	if _, err := s.apartmentRepo.FindByID(ctx, apartmentID); err != nil {
		return 0, ErrNotFound
	}

	entries, err := s.ledgerRepo.FindByApartmentUpTo(ctx, apartmentID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to load ledger: %w", err)
	}
	return replay(entries), nil
}

// MonthlyBreakdown returns an apartment's opening balance, the month's
// charge and payment totals, and the closing balance.
func (s *BalanceService) MonthlyBreakdown(ctx context.Context, apartmentID uint, year, month int) (*MonthlyBreakdown, error) {
	if _, err := s.apartmentRepo.FindByID(ctx, apartmentID); err != nil {
		return nil, ErrNotFound
	}

	start, end := models.PeriodBounds(year, month)

	opening, err := s.BalanceAsOf(ctx, apartmentID, start.Add(-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.FindByApartmentBetween(ctx, apartmentID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	var charges, payments float64
	closing := opening
	for _, e := range entries {
		switch {
		case e.IsCharge():
			charges += -e.Amount
			closing += e.Amount
		case e.IsPayment():
			payments += e.Amount
			closing += e.Amount
		case e.IsAdjustment():
			closing = e.BalanceAfter
		}
	}

	return &MonthlyBreakdown{
		ApartmentID:    apartmentID,
		Year:           year,
		Month:          month,
		OpeningBalance: models.RoundCents(opening),
		Charges:        models.RoundCents(charges),
		Payments:       models.RoundCents(payments),
		ClosingBalance: models.RoundCents(closing),
	}, nil
}

// Reconcile replays the full ledger and compares the result against the
// cached balance. Drift beyond a cent is a data-integrity fault; the
// engine reports it and never repairs the cache silently.
func (s *BalanceService) Reconcile(ctx context.Context, apartmentID uint) (*ReconcileResult, error) {
	apartment, err := s.apartmentRepo.FindByID(ctx, apartmentID)
	if err != nil {
		return nil, ErrNotFound
	}

	entries, err := s.ledgerRepo.FindByApartment(ctx, apartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	ledgerBalance := replay(entries)
	drift := models.RoundCents(apartment.CurrentBalance - ledgerBalance)

	return &ReconcileResult{
		ApartmentID:    apartmentID,
		CachedBalance:  apartment.CurrentBalance,
		LedgerBalance:  ledgerBalance,
		Drift:          drift,
		Reconciled:     models.AlmostEqual(apartment.CurrentBalance, ledgerBalance),
		EntriesCounted: len(entries),
	}, nil
}

// ReconcileAll sweeps every apartment and returns the results that
// show drift. An empty slice means the projections are healthy.
func (s *BalanceService) ReconcileAll(ctx context.Context) ([]ReconcileResult, error) {
	apartments, err := s.apartmentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load apartments: %w", err)
	}

	var drifted []ReconcileResult
	for _, apartment := range apartments {
		result, err := s.Reconcile(ctx, apartment.ID)
		if err != nil {
			return nil, err
		}
		if !result.Reconciled {
			drifted = append(drifted, *result)
		}
	}
	return drifted, nil
}

// replay folds ledger entries into a balance, in storage order.
func replay(entries []models.Transaction) float64 {
	var balance float64
	for _, e := range entries {
		if e.IsAdjustment() {
			balance = e.BalanceAfter
			continue
		}
		balance = models.RoundCents(balance + e.Amount)
	}
	return balance
}
