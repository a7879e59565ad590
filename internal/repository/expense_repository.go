package repository

import (
	"context"
	"time"

	"github.com/sgavril/condoflow-api/internal/models"

	"gorm.io/gorm"
)

// ExpenseRepository defines the interface for expense data access
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	FindByID(ctx context.Context, id uint) (*models.Expense, error)
	FindByBuilding(ctx context.Context, buildingID uint, from, to time.Time) ([]models.Expense, error)
	SumIssuedByCategory(ctx context.Context, buildingID uint, from, to time.Time) (map[models.ExpenseCategory]float64, error)
	ExistsIssuedInCategory(ctx context.Context, buildingID uint, category models.ExpenseCategory, from, to time.Time) (bool, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) FindByID(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) FindByBuilding(ctx context.Context, buildingID uint, from, to time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("building_id = ? AND expense_date >= ? AND expense_date < ?", buildingID, from, to).
		Order("expense_date ASC, id ASC").
		Find(&expenses).Error
	return expenses, err
}

// SumIssuedByCategory totals the issued expenses of a period per
// category. Undistributed expenses are excluded; only issued charges
// have reached the ledger.
func (r *expenseRepository) SumIssuedByCategory(ctx context.Context, buildingID uint, from, to time.Time) (map[models.ExpenseCategory]float64, error) {
	var rows []struct {
		Category models.ExpenseCategory
		Total    float64
	}

	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) as total").
		Where("building_id = ? AND is_issued = true AND expense_date >= ? AND expense_date < ?",
			buildingID, from, to).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[models.ExpenseCategory]float64, len(rows))
	for _, row := range rows {
		sums[row.Category] = row.Total
	}
	return sums, nil
}

// ExistsIssuedInCategory reports whether an issued expense of the given
// category already exists in the period. Recurring charges like the
// reserve contribution use it as their once-per-month guard.
func (r *expenseRepository) ExistsIssuedInCategory(ctx context.Context, buildingID uint, category models.ExpenseCategory, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("building_id = ? AND category = ? AND is_issued = true AND expense_date >= ? AND expense_date < ?",
			buildingID, category, from, to).
		Count(&count).Error
	return count > 0, err
}
