package repository

import (
	"context"
	"time"

	"github.com/sgavril/condoflow-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository is the append-only transaction log. Every append
// runs as one database transaction: the apartment row is locked, the
// balance snapshots are taken inside the lock, the entry is inserted
// and the cached balance is moved to balance_after. Entries are never
// edited or deleted.
type LedgerRepository interface {
	Append(ctx context.Context, entry *models.Transaction) error
	AppendDistribution(ctx context.Context, expenseID uint, entries []models.Transaction) error
	AppendPayment(ctx context.Context, payment *models.Payment, entry *models.Transaction) error
	FindByApartment(ctx context.Context, apartmentID uint) ([]models.Transaction, error)
	FindByApartmentUpTo(ctx context.Context, apartmentID uint, upTo time.Time) ([]models.Transaction, error)
	FindByApartmentBetween(ctx context.Context, apartmentID uint, from, to time.Time) ([]models.Transaction, error)
	FindByExpense(ctx context.Context, expenseID uint) ([]models.Transaction, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// Append writes a single entry and updates the apartment's cached balance
func (r *ledgerRepository) Append(ctx context.Context, entry *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return appendEntry(tx, entry)
	})
}

// AppendDistribution writes all charge entries of a distributed expense
// and marks the expense issued, atomically. Serializes against other
// distributions and closes for the same building via the building row
// lock; a concurrent duplicate invocation fails the is_issued guard.
func (r *ledgerRepository) AppendDistribution(ctx context.Context, expenseID uint, entries []models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var expense models.Expense
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&expense, expenseID).Error; err != nil {
			return err
		}
		if expense.IsIssued {
			return ErrExpenseAlreadyIssued
		}

		if err := lockBuilding(tx, expense.BuildingID); err != nil {
			return err
		}

		for i := range entries {
			if err := appendEntry(tx, &entries[i]); err != nil {
				return err
			}
		}

		now := time.Now()
		return tx.Model(&expense).Updates(map[string]interface{}{
			"is_issued": true,
			"issued_at": now,
		}).Error
	})
}

// AppendPayment writes the payment record and its ledger entry in one
// transaction. The previous-obligations split is derived from the
// balance observed inside the lock.
func (r *ledgerRepository) AppendPayment(ctx context.Context, payment *models.Payment, entry *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var apartment models.Apartment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&apartment, payment.ApartmentID).Error; err != nil {
			return err
		}

		payment.PreviousObligationsAmount = models.PreviousObligationsPortion(
			apartment.CurrentBalance, payment.Amount)
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		entry.PaymentID = &payment.ID
		return appendLocked(tx, entry, &apartment)
	})
}

// FindByApartment retrieves the full ledger in replay order
func (r *ledgerRepository) FindByApartment(ctx context.Context, apartmentID uint) ([]models.Transaction, error) {
	var entries []models.Transaction
	err := r.db.WithContext(ctx).
		Where("apartment_id = ?", apartmentID).
		Order("transaction_date ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) FindByApartmentUpTo(ctx context.Context, apartmentID uint, upTo time.Time) ([]models.Transaction, error) {
	var entries []models.Transaction
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND transaction_date <= ?", apartmentID, upTo).
		Order("transaction_date ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) FindByApartmentBetween(ctx context.Context, apartmentID uint, from, to time.Time) ([]models.Transaction, error) {
	var entries []models.Transaction
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND transaction_date >= ? AND transaction_date < ?", apartmentID, from, to).
		Order("transaction_date ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) FindByExpense(ctx context.Context, expenseID uint) ([]models.Transaction, error) {
	var entries []models.Transaction
	err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("transaction_date ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// appendEntry locks the apartment row, then delegates to appendLocked.
func appendEntry(tx *gorm.DB, entry *models.Transaction) error {
	var apartment models.Apartment
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&apartment, entry.ApartmentID).Error; err != nil {
		return err
	}
	return appendLocked(tx, entry, &apartment)
}

// appendLocked performs the read-modify-write with the apartment row
// already locked: snapshot balances, insert the entry, move the cache.
func appendLocked(tx *gorm.DB, entry *models.Transaction, apartment *models.Apartment) error {
	if entry.Amount == 0 && entry.Type != models.EntryBalanceAdjustment {
		return ErrZeroAmountEntry
	}

	entry.BalanceBefore = apartment.CurrentBalance
	if entry.Type == models.EntryBalanceAdjustment {
		// Adjustments carry their target balance in balance_after.
		entry.Amount = models.RoundCents(entry.BalanceAfter - entry.BalanceBefore)
	} else {
		entry.BalanceAfter = models.RoundCents(apartment.CurrentBalance + entry.Amount)
	}

	if err := tx.Create(entry).Error; err != nil {
		return err
	}

	return tx.Model(apartment).
		Update("current_balance", entry.BalanceAfter).Error
}

// lockBuilding takes the building row lock used to serialize
// building-scoped operations (distribution, closing, collection).
func lockBuilding(tx *gorm.DB, buildingID uint) error {
	var building models.Building
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&building, buildingID).Error
}
