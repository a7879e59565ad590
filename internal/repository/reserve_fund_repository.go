package repository

import (
	"context"

	"github.com/sgavril/condoflow-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReserveFundRepository defines the interface for reserve fund configs
type ReserveFundRepository interface {
	Upsert(ctx context.Context, cfg *models.ReserveFundConfig) error
	FindByBuilding(ctx context.Context, buildingID uint) (*models.ReserveFundConfig, error)
}

type reserveFundRepository struct {
	db *gorm.DB
}

// NewReserveFundRepository creates a new reserve fund repository
func NewReserveFundRepository(db *gorm.DB) ReserveFundRepository {
	return &reserveFundRepository{db: db}
}

// Upsert creates or replaces a building's reserve fund goal
func (r *reserveFundRepository) Upsert(ctx context.Context, cfg *models.ReserveFundConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "building_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"goal", "duration_months", "start_date", "updated_at"}),
		}).
		Create(cfg).Error
}

func (r *reserveFundRepository) FindByBuilding(ctx context.Context, buildingID uint) (*models.ReserveFundConfig, error) {
	var cfg models.ReserveFundConfig
	err := r.db.WithContext(ctx).
		Where("building_id = ?", buildingID).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
