package models

import (
	"time"
)

// MillsTotal is the per-mille weight every building must distribute
// across its apartments, independently for each mills kind.
const MillsTotal = 1000

// MillsKind names one of the three independent per-mille weightings.
type MillsKind string

const (
	MillsParticipation MillsKind = "participation"
	MillsHeating       MillsKind = "heating"
	MillsElevator      MillsKind = "elevator"
)

// Building represents a managed condominium building
type Building struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Address string `json:"address"`

	// Fraction of a heating expense allocated as fixed cost (by heating
	// mills); the remainder is variable cost allocated by consumption.
	HeatingFixedShare float64 `gorm:"type:decimal(4,2);default:0.30" json:"heating_fixed_share"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Apartments []Apartment `gorm:"foreignKey:BuildingID" json:"apartments,omitempty"`
}

// TableName specifies the table name for GORM
func (Building) TableName() string {
	return "buildings"
}

// MillsSum adds up one mills kind across a set of apartments.
func MillsSum(apartments []Apartment, kind MillsKind) int {
	var sum int
	for _, a := range apartments {
		switch kind {
		case MillsHeating:
			sum += a.HeatingMills
		case MillsElevator:
			sum += a.ElevatorMills
		default:
			sum += a.ParticipationMills
		}
	}
	return sum
}

// BuildingResponse is the JSON response format for buildings
type BuildingResponse struct {
	ID                uint                `json:"id"`
	Name              string              `json:"name"`
	Address           string              `json:"address"`
	HeatingFixedShare float64             `json:"heating_fixed_share"`
	Apartments        []ApartmentResponse `json:"apartments,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}

// ToResponse converts Building to BuildingResponse
func (b *Building) ToResponse() BuildingResponse {
	resp := BuildingResponse{
		ID:                b.ID,
		Name:              b.Name,
		Address:           b.Address,
		HeatingFixedShare: b.HeatingFixedShare,
		CreatedAt:         b.CreatedAt,
	}
	for _, a := range b.Apartments {
		resp.Apartments = append(resp.Apartments, a.ToResponse())
	}
	return resp
}
