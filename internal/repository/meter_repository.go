package repository

import (
	"context"

	"github.com/sgavril/condoflow-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MeterRepository defines the interface for heating meter readings
type MeterRepository interface {
	Upsert(ctx context.Context, reading *models.MeterReading) error
	FindByBuildingPeriod(ctx context.Context, buildingID uint, year, month int) ([]models.MeterReading, error)
}

type meterRepository struct {
	db *gorm.DB
}

// NewMeterRepository creates a new meter reading repository
func NewMeterRepository(db *gorm.DB) MeterRepository {
	return &meterRepository{db: db}
}

// Upsert records a reading, replacing an earlier one for the same
// apartment and period.
func (r *meterRepository) Upsert(ctx context.Context, reading *models.MeterReading) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "building_id"}, {Name: "apartment_id"},
				{Name: "year"}, {Name: "month"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"consumption", "updated_at"}),
		}).
		Create(reading).Error
}

func (r *meterRepository) FindByBuildingPeriod(ctx context.Context, buildingID uint, year, month int) ([]models.MeterReading, error) {
	var readings []models.MeterReading
	err := r.db.WithContext(ctx).
		Where("building_id = ? AND year = ? AND month = ?", buildingID, year, month).
		Order("apartment_id ASC").
		Find(&readings).Error
	return readings, err
}
