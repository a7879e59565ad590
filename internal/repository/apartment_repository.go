package repository

import (
	"context"
	"fmt"

	"github.com/sgavril/condoflow-api/internal/models"

	"gorm.io/gorm"
)

// MillsUpdate carries one apartment's new weights for a reallocation.
type MillsUpdate struct {
	ApartmentID        uint `json:"apartment_id"`
	ParticipationMills int  `json:"participation_mills"`
	HeatingMills       int  `json:"heating_mills"`
	ElevatorMills      int  `json:"elevator_mills"`
}

// ApartmentRepository defines the interface for apartment data access
type ApartmentRepository interface {
	Create(ctx context.Context, apartment *models.Apartment) error
	FindByID(ctx context.Context, id uint) (*models.Apartment, error)
	FindByBuilding(ctx context.Context, buildingID uint) ([]models.Apartment, error)
	FindAll(ctx context.Context) ([]models.Apartment, error)
	UpdateMills(ctx context.Context, buildingID uint, updates []MillsUpdate) error
}

type apartmentRepository struct {
	db *gorm.DB
}

// NewApartmentRepository creates a new apartment repository
func NewApartmentRepository(db *gorm.DB) ApartmentRepository {
	return &apartmentRepository{db: db}
}

func (r *apartmentRepository) Create(ctx context.Context, apartment *models.Apartment) error {
	return r.db.WithContext(ctx).Create(apartment).Error
}

func (r *apartmentRepository) FindByID(ctx context.Context, id uint) (*models.Apartment, error) {
	var apartment models.Apartment
	if err := r.db.WithContext(ctx).First(&apartment, id).Error; err != nil {
		return nil, err
	}
	return &apartment, nil
}

func (r *apartmentRepository) FindByBuilding(ctx context.Context, buildingID uint) ([]models.Apartment, error) {
	var apartments []models.Apartment
	err := r.db.WithContext(ctx).
		Where("building_id = ?", buildingID).
		Order("id ASC").
		Find(&apartments).Error
	return apartments, err
}

func (r *apartmentRepository) FindAll(ctx context.Context) ([]models.Apartment, error) {
	var apartments []models.Apartment
	err := r.db.WithContext(ctx).Order("id ASC").Find(&apartments).Error
	return apartments, err
}

// UpdateMills rewrites the weights of a building's apartments in one
// transaction. The caller validates the per-mille invariant first.
func (r *apartmentRepository) UpdateMills(ctx context.Context, buildingID uint, updates []MillsUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			result := tx.Model(&models.Apartment{}).
				Where("id = ? AND building_id = ?", u.ApartmentID, buildingID).
				Updates(map[string]interface{}{
					"participation_mills": u.ParticipationMills,
					"heating_mills":       u.HeatingMills,
					"elevator_mills":      u.ElevatorMills,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("apartment %d not found in building %d: %w",
					u.ApartmentID, buildingID, gorm.ErrRecordNotFound)
			}
		}
		return nil
	})
}
