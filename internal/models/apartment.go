package models

import (
	"time"
)

// Apartment represents one unit inside a building. The three mills values
// are independent per-mille weights; each kind sums to MillsTotal across
// the building. They change only through an explicit reallocation, never
// as a side effect of billing.
type Apartment struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BuildingID uint   `gorm:"not null;index" json:"building_id"`
	Number     string `gorm:"not null" json:"number"`
	OwnerName  string `json:"owner_name"`

	ParticipationMills int `gorm:"not null;default:0" json:"participation_mills"`
	HeatingMills       int `gorm:"not null;default:0" json:"heating_mills"`
	ElevatorMills      int `gorm:"not null;default:0" json:"elevator_mills"`

	// Cached projection of the ledger. Negative means the apartment owes
	// money. Written only in the same transaction as the ledger entry
	// that produces it; the ledger stays the source of truth.
	CurrentBalance float64 `gorm:"type:decimal(12,2);not null;default:0" json:"current_balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

// TableName specifies the table name for GORM
func (Apartment) TableName() string {
	return "apartments"
}

// Owes returns true when the apartment has outstanding obligations
func (a *Apartment) Owes() bool {
	return a.CurrentBalance < 0
}

// Mills returns the weight of the requested kind.
func (a *Apartment) Mills(kind MillsKind) int {
	switch kind {
	case MillsHeating:
		return a.HeatingMills
	case MillsElevator:
		return a.ElevatorMills
	default:
		return a.ParticipationMills
	}
}

// ApartmentResponse is the JSON response format for apartments
type ApartmentResponse struct {
	ID                 uint    `json:"id"`
	BuildingID         uint    `json:"building_id"`
	Number             string  `json:"number"`
	OwnerName          string  `json:"owner_name"`
	ParticipationMills int     `json:"participation_mills"`
	HeatingMills       int     `json:"heating_mills"`
	ElevatorMills      int     `json:"elevator_mills"`
	CurrentBalance     float64 `json:"current_balance"`
}

// ToResponse converts Apartment to ApartmentResponse
func (a *Apartment) ToResponse() ApartmentResponse {
	return ApartmentResponse{
		ID:                 a.ID,
		BuildingID:         a.BuildingID,
		Number:             a.Number,
		OwnerName:          a.OwnerName,
		ParticipationMills: a.ParticipationMills,
		HeatingMills:       a.HeatingMills,
		ElevatorMills:      a.ElevatorMills,
		CurrentBalance:     a.CurrentBalance,
	}
}
