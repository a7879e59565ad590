package models

import (
	"fmt"
	"sort"
)

// DistributionType selects the allocation rule for an expense
type DistributionType string

// Distribution type constants
const (
	DistributionByParticipationMills DistributionType = "by_participation_mills"
	DistributionEqualShare           DistributionType = "equal_share"
	DistributionByMeters             DistributionType = "by_meters"
	DistributionSpecificApartments   DistributionType = "specific_apartments"
)

// ValidDistributionType reports whether t is a known allocation rule.
func ValidDistributionType(t DistributionType) bool {
	switch t {
	case DistributionByParticipationMills, DistributionEqualShare,
		DistributionByMeters, DistributionSpecificApartments:
		return true
	}
	return false
}

// Share is one apartment's portion of a distributed amount.
type Share struct {
	ApartmentID uint    `json:"apartment_id"`
	Amount      float64 `json:"amount"`
}

// SumShares adds up share amounts, rounded to cents.
func SumShares(shares []Share) float64 {
	var sum float64
	for _, s := range shares {
		sum += s.Amount
	}
	return RoundCents(sum)
}

// DistributionRule computes per-apartment shares of an amount. The
// implementations form a closed set; a new allocation rule is a new
// variant here, not a new switch arm at the call sites.
type DistributionRule interface {
	Shares(amount float64, apartments []Apartment) ([]Share, error)
}

// RuleFor maps an expense's distribution type to its rule variant.
// Subset rules (by_meters, specific_apartments) apply participation
// mills within the designated apartments only.
func RuleFor(t DistributionType, targetIDs []uint) (DistributionRule, error) {
	switch t {
	case DistributionByParticipationMills:
		return MillsRule{Kind: MillsParticipation}, nil
	case DistributionEqualShare:
		return EqualShareRule{}, nil
	case DistributionByMeters, DistributionSpecificApartments:
		if len(targetIDs) == 0 {
			return nil, fmt.Errorf("distribution type %q requires target apartments", t)
		}
		return SubsetRule{Kind: MillsParticipation, ApartmentIDs: targetIDs}, nil
	default:
		return nil, fmt.Errorf("unknown distribution type %q", t)
	}
}

// MillsRule distributes proportionally to one mills kind. A zero mills
// total falls back to an equal split instead of dividing by zero.
type MillsRule struct {
	Kind MillsKind
}

func (r MillsRule) Shares(amount float64, apartments []Apartment) ([]Share, error) {
	return splitByWeights(amount, apartments, func(a Apartment) float64 {
		return float64(a.Mills(r.Kind))
	})
}

// EqualShareRule distributes the amount evenly across all apartments.
type EqualShareRule struct{}

func (EqualShareRule) Shares(amount float64, apartments []Apartment) ([]Share, error) {
	return splitByWeights(amount, apartments, func(Apartment) float64 { return 1 })
}

// SubsetRule distributes across a designated subset of apartments by
// mills; apartments outside the subset receive zero.
type SubsetRule struct {
	Kind         MillsKind
	ApartmentIDs []uint
}

func (r SubsetRule) Shares(amount float64, apartments []Apartment) ([]Share, error) {
	member := make(map[uint]bool, len(r.ApartmentIDs))
	for _, id := range r.ApartmentIDs {
		member[id] = true
	}

	var subset []Apartment
	for _, a := range apartments {
		if member[a.ID] {
			subset = append(subset, a)
		}
	}
	if len(subset) == 0 {
		return nil, fmt.Errorf("no target apartments found in building")
	}

	return splitByWeights(amount, subset, func(a Apartment) float64 {
		return float64(a.Mills(r.Kind))
	})
}

// SplitByConsumption distributes an amount proportionally to metered
// consumption. The caller must ensure the consumption total is not zero.
func SplitByConsumption(amount float64, apartments []Apartment, consumption map[uint]float64) ([]Share, error) {
	return splitByWeights(amount, apartments, func(a Apartment) float64 {
		return consumption[a.ID]
	})
}

// splitByWeights is the shared proportional split. Each share is rounded
// to cents and the residual cent, if any, is assigned to the first
// apartment in ID order so the shares always add up to the amount
// exactly. A zero weight total degrades to an equal split.
func splitByWeights(amount float64, apartments []Apartment, weight func(Apartment) float64) ([]Share, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %.2f", amount)
	}
	if len(apartments) == 0 {
		return nil, fmt.Errorf("no apartments to distribute across")
	}

	sorted := make([]Apartment, len(apartments))
	copy(sorted, apartments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var total float64
	for _, a := range sorted {
		w := weight(a)
		if w < 0 {
			return nil, fmt.Errorf("negative weight for apartment %d", a.ID)
		}
		total += w
	}

	shares := make([]Share, len(sorted))
	var distributed float64
	for i, a := range sorted {
		var portion float64
		if total == 0 {
			portion = amount / float64(len(sorted))
		} else {
			portion = amount * weight(a) / total
		}
		shares[i] = Share{ApartmentID: a.ID, Amount: RoundCents(portion)}
		distributed += shares[i].Amount
	}

	residual := RoundCents(amount - distributed)
	if residual != 0 {
		shares[0].Amount = RoundCents(shares[0].Amount + residual)
	}

	return shares, nil
}
