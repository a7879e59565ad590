package repository

import (
	"context"
	"time"

	"github.com/sgavril/condoflow-api/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment data access.
// Payments are created by LedgerRepository.AppendPayment; this
// repository only reads them.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindByApartment(ctx context.Context, apartmentID uint) ([]models.Payment, error)
	SumByBuildingBetween(ctx context.Context, buildingID uint, from, to time.Time) (float64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByApartment(ctx context.Context, apartmentID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("apartment_id = ?", apartmentID).
		Order("payment_date ASC, id ASC").
		Find(&payments).Error
	return payments, err
}

// SumByBuildingBetween totals a building's payments within a period
func (r *paymentRepository) SumByBuildingBetween(ctx context.Context, buildingID uint, from, to time.Time) (float64, error) {
	var result struct {
		Total float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("building_id = ? AND payment_date >= ? AND payment_date < ?", buildingID, from, to).
		Scan(&result).Error
	return result.Total, err
}
