package services

import (
	"context"
	"fmt"

	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/repository"
)

// BuildingService manages buildings and apartment registration,
// including mills reallocation. Mills change only here, never as a
// side effect of billing.
type BuildingService struct {
	buildingRepo  repository.BuildingRepository
	apartmentRepo repository.ApartmentRepository
}

// NewBuildingService creates a new building service
func NewBuildingService(buildingRepo repository.BuildingRepository, apartmentRepo repository.ApartmentRepository) *BuildingService {
	return &BuildingService{
		buildingRepo:  buildingRepo,
		apartmentRepo: apartmentRepo,
	}
}

// CreateBuilding registers a new building.
func (s *BuildingService) CreateBuilding(ctx context.Context, building *models.Building) error {
	if building.Name == "" {
		return fmt.Errorf("building name is required")
	}
	if building.HeatingFixedShare == 0 {
		building.HeatingFixedShare = 0.30
	}
	if building.HeatingFixedShare < 0 || building.HeatingFixedShare > 1 {
		return fmt.Errorf("heating fixed share must be between 0 and 1")
	}
	return s.buildingRepo.Create(ctx, building)
}

// GetBuilding returns a building with its apartments.
func (s *BuildingService) GetBuilding(ctx context.Context, id uint) (*models.Building, error) {
	building, err := s.buildingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return building, nil
}

// ListBuildings returns all managed buildings.
func (s *BuildingService) ListBuildings(ctx context.Context) ([]models.Building, error) {
	return s.buildingRepo.FindAll(ctx)
}

// AddApartment registers an apartment in a building. Mills of a fresh
// apartment may be zero; the invariant is checked when billing runs
// and when mills are reallocated, not at registration.
func (s *BuildingService) AddApartment(ctx context.Context, apartment *models.Apartment) error {
	if apartment.Number == "" {
		return fmt.Errorf("apartment number is required")
	}
	if apartment.ParticipationMills < 0 || apartment.HeatingMills < 0 || apartment.ElevatorMills < 0 {
		return fmt.Errorf("mills cannot be negative")
	}
	if _, err := s.buildingRepo.FindByID(ctx, apartment.BuildingID); err != nil {
		return ErrNotFound
	}
	return s.apartmentRepo.Create(ctx, apartment)
}

// ReallocateMills rewrites the building's weights. The update must
// cover every apartment and each mills kind must sum to 1000 after it.
func (s *BuildingService) ReallocateMills(ctx context.Context, buildingID uint, updates []repository.MillsUpdate) error {
	apartments, err := s.apartmentRepo.FindByBuilding(ctx, buildingID)
	if err != nil {
		return fmt.Errorf("failed to load apartments: %w", err)
	}
	if len(apartments) == 0 {
		return ErrNotFound
	}

	byID := make(map[uint]repository.MillsUpdate, len(updates))
	for _, u := range updates {
		byID[u.ApartmentID] = u
	}

	proposed := make([]models.Apartment, len(apartments))
	copy(proposed, apartments)
	for i := range proposed {
		if u, ok := byID[proposed[i].ID]; ok {
			proposed[i].ParticipationMills = u.ParticipationMills
			proposed[i].HeatingMills = u.HeatingMills
			proposed[i].ElevatorMills = u.ElevatorMills
		}
	}

	if err := validateMills(proposed,
		models.MillsParticipation, models.MillsHeating, models.MillsElevator); err != nil {
		return err
	}

	return s.apartmentRepo.UpdateMills(ctx, buildingID, updates)
}
