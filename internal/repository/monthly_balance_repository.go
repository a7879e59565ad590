package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sgavril/condoflow-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MonthlyBalanceRepository defines the interface for monthly balance
// snapshots. Records are created lazily and mutate only until closed.
type MonthlyBalanceRepository interface {
	Find(ctx context.Context, buildingID uint, year, month int) (*models.MonthlyBalance, error)
	FindOrCreate(ctx context.Context, buildingID uint, year, month int) (*models.MonthlyBalance, error)
	FindByBuilding(ctx context.Context, buildingID uint) ([]models.MonthlyBalance, error)
	CloseAndSeed(ctx context.Context, closing *models.MonthlyBalance, carry float64) error
	SumReserve(ctx context.Context, buildingID uint) (float64, error)
}

type monthlyBalanceRepository struct {
	db *gorm.DB
}

// NewMonthlyBalanceRepository creates a new monthly balance repository
func NewMonthlyBalanceRepository(db *gorm.DB) MonthlyBalanceRepository {
	return &monthlyBalanceRepository{db: db}
}

func (r *monthlyBalanceRepository) Find(ctx context.Context, buildingID uint, year, month int) (*models.MonthlyBalance, error) {
	var mb models.MonthlyBalance
	err := r.db.WithContext(ctx).
		Where("building_id = ? AND year = ? AND month = ?", buildingID, year, month).
		First(&mb).Error
	if err != nil {
		return nil, err
	}
	return &mb, nil
}

// FindOrCreate returns the month's record, creating an open one lazily
func (r *monthlyBalanceRepository) FindOrCreate(ctx context.Context, buildingID uint, year, month int) (*models.MonthlyBalance, error) {
	mb, err := r.Find(ctx, buildingID, year, month)
	if err == nil {
		return mb, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	mb = &models.MonthlyBalance{
		BuildingID: buildingID,
		Year:       year,
		Month:      month,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "building_id"}, {Name: "year"}, {Name: "month"}},
			DoNothing: true,
		}).
		Create(mb).Error; err != nil {
		return nil, err
	}
	// Re-read in case a concurrent creator won the conflict.
	return r.Find(ctx, buildingID, year, month)
}

func (r *monthlyBalanceRepository) FindByBuilding(ctx context.Context, buildingID uint) ([]models.MonthlyBalance, error) {
	var balances []models.MonthlyBalance
	err := r.db.WithContext(ctx).
		Where("building_id = ?", buildingID).
		Order("year ASC, month ASC").
		Find(&balances).Error
	return balances, err
}

// CloseAndSeed persists the close and seeds the following month's
// previous obligations in one transaction. The is_closed guard rejects
// a double close; a differing non-zero previous_obligations on the
// target month is a reconciliation conflict, never overwritten.
func (r *monthlyBalanceRepository) CloseAndSeed(ctx context.Context, closing *models.MonthlyBalance, carry float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBuilding(tx, closing.BuildingID); err != nil {
			return err
		}

		now := time.Now()
		result := tx.Model(&models.MonthlyBalance{}).
			Where("id = ? AND is_closed = false", closing.ID).
			Updates(map[string]interface{}{
				"total_expenses":               closing.TotalExpenses,
				"total_payments":               closing.TotalPayments,
				"reserve_fund_amount":          closing.ReserveFundAmount,
				"management_fees":              closing.ManagementFees,
				"scheduled_maintenance_amount": closing.ScheduledMaintenanceAmount,
				"carry_forward":                closing.CarryForward,
				"annual_carry_forward":         closing.AnnualCarryForward,
				"is_closed":                    true,
				"closed_at":                    now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMonthClosed
		}
		closing.IsClosed = true
		closing.ClosedAt = &now

		nextYear, nextMonth := models.NextPeriod(closing.Year, closing.Month)

		var next models.MonthlyBalance
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("building_id = ? AND year = ? AND month = ?", closing.BuildingID, nextYear, nextMonth).
			First(&next).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.MonthlyBalance{
				BuildingID:          closing.BuildingID,
				Year:                nextYear,
				Month:               nextMonth,
				PreviousObligations: carry,
			}).Error
		case err != nil:
			return err
		}

		if next.PreviousObligations != 0 && !models.AlmostEqual(next.PreviousObligations, carry) {
			return ErrCarryForwardConflict
		}
		if next.IsClosed {
			if models.AlmostEqual(next.PreviousObligations, carry) {
				return nil
			}
			return ErrCarryForwardConflict
		}

		return tx.Model(&next).Update("previous_obligations", carry).Error
	})
}

// SumReserve totals the reserve contributions recorded on a building's
// monthly snapshots.
func (r *monthlyBalanceRepository) SumReserve(ctx context.Context, buildingID uint) (float64, error) {
	var result struct {
		Total float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.MonthlyBalance{}).
		Select("COALESCE(SUM(reserve_fund_amount), 0) as total").
		Where("building_id = ?", buildingID).
		Scan(&result).Error
	return result.Total, err
}
