package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/repository"
)

// LedgerService is the write/read boundary of the transaction log.
type LedgerService struct {
	ledgerRepo    repository.LedgerRepository
	apartmentRepo repository.ApartmentRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledgerRepo repository.LedgerRepository, apartmentRepo repository.ApartmentRepository) *LedgerService {
	return &LedgerService{
		ledgerRepo:    ledgerRepo,
		apartmentRepo: apartmentRepo,
	}
}

// Append validates and writes one ledger entry. Charge amounts must be
// negative, payment amounts positive; mis-signed and zero amounts are
// rejected before anything touches storage.
func (s *LedgerService) Append(ctx context.Context, entry *models.Transaction) error {
	if !models.ValidEntryType(entry.Type) {
		return fmt.Errorf("%w: %q", ErrUnknownEntryType, entry.Type)
	}
	if entry.Amount == 0 && !entry.IsAdjustment() {
		return ErrZeroAmount
	}
	if entry.IsCharge() && entry.Amount > 0 {
		return fmt.Errorf("%w: charge entries carry negative amounts", ErrInvalidAmount)
	}
	if entry.IsPayment() && entry.Amount < 0 {
		return fmt.Errorf("%w: payment entries carry positive amounts", ErrInvalidAmount)
	}
	if entry.Reference == "" {
		entry.Reference = uuid.NewString()
	}
	if entry.TransactionDate.IsZero() {
		entry.TransactionDate = time.Now()
	}

	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// RecordAdjustment writes a balance-adjustment entry that pins the
// apartment's balance to newBalance. The escape hatch for manual
// corrections; replays honor it by resetting the running total.
func (s *LedgerService) RecordAdjustment(ctx context.Context, apartmentID uint, newBalance float64, memo string) (*models.Transaction, error) {
	apartment, err := s.apartmentRepo.FindByID(ctx, apartmentID)
	if err != nil {
		return nil, ErrNotFound
	}

	entry := &models.Transaction{
		BuildingID:      apartment.BuildingID,
		ApartmentID:     apartment.ID,
		Type:            models.EntryBalanceAdjustment,
		Description:     memo,
		BalanceAfter:    models.RoundCents(newBalance),
		Reference:       uuid.NewString(),
		TransactionDate: time.Now(),
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record adjustment: %w", err)
	}
	return entry, nil
}

// Ledger returns an apartment's full transaction history in replay
// order, for audit.
func (s *LedgerService) Ledger(ctx context.Context, apartmentID uint) ([]models.Transaction, error) {
	if _, err := s.apartmentRepo.FindByID(ctx, apartmentID); err != nil {
		return nil, ErrNotFound
	}
	return s.ledgerRepo.FindByApartment(ctx, apartmentID)
}
