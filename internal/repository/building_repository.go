package repository

import (
	"context"

	"github.com/sgavril/condoflow-api/internal/models"

	"gorm.io/gorm"
)

// BuildingRepository defines the interface for building data access
type BuildingRepository interface {
	Create(ctx context.Context, building *models.Building) error
	FindByID(ctx context.Context, id uint) (*models.Building, error)
	FindAll(ctx context.Context) ([]models.Building, error)
}

type buildingRepository struct {
	db *gorm.DB
}

// NewBuildingRepository creates a new building repository
func NewBuildingRepository(db *gorm.DB) BuildingRepository {
	return &buildingRepository{db: db}
}

func (r *buildingRepository) Create(ctx context.Context, building *models.Building) error {
	return r.db.WithContext(ctx).Create(building).Error
}

// FindByID retrieves a building with its apartments preloaded
func (r *buildingRepository) FindByID(ctx context.Context, id uint) (*models.Building, error) {
	var building models.Building
	err := r.db.WithContext(ctx).
		Preload("Apartments", func(db *gorm.DB) *gorm.DB {
			return db.Order("apartments.id ASC")
		}).
		First(&building, id).Error
	if err != nil {
		return nil, err
	}
	return &building, nil
}

func (r *buildingRepository) FindAll(ctx context.Context) ([]models.Building, error) {
	var buildings []models.Building
	err := r.db.WithContext(ctx).Order("id ASC").Find(&buildings).Error
	return buildings, err
}
