package booking

import (
	"fmt"
	"math"
)

// TransportType identifies a transport tier.
type TransportType string

const (
	TransportJeep TransportType = "jeep"
	TransportTaxi TransportType = "taxi"
	TransportSUV  TransportType = "suv"
	TransportBus  TransportType = "bus"
)

// TransportTier describes one selectable transport option.
type TransportTier struct {
	ID          TransportType `json:"id"`
	Name        string        `json:"name"`
	BaseFare    int64         `json:"baseFare"`
	PerKm       float64       `json:"perKm"`
	Capacity    int           `json:"capacity"`
	Description string        `json:"description"`
}

var tiers = []TransportTier{
	{ID: TransportJeep, Name: "Shared Jeep", BaseFare: 100, PerKm: 12, Capacity: 10, Description: "Shared ride on the standard hill routes"},
	{ID: TransportTaxi, Name: "Private Taxi", BaseFare: 300, PerKm: 25, Capacity: 4, Description: "Private hatchback or sedan with driver"},
	{ID: TransportSUV, Name: "SUV", BaseFare: 500, PerKm: 35, Capacity: 7, Description: "Private SUV for families and steep roads"},
	{ID: TransportBus, Name: "SNT Bus", BaseFare: 50, PerKm: 4, Capacity: 40, Description: "State transport bus on scheduled routes"},
}

// Tiers returns the transport catalog in display order.
func Tiers() []TransportTier {
	out := make([]TransportTier, len(tiers))
	copy(out, tiers)
	return out
}

// FindTier looks up a tier by id.
func FindTier(id TransportType) (TransportTier, bool) {
	for _, t := range tiers {
		if t.ID == id {
			return t, true
		}
	}
	return TransportTier{}, false
}

// PricingStrategy defines the interface for calculating fares.
type PricingStrategy interface {
	// Calculate returns the fare in whole rupees for the given parameters.
	Calculate(params PricingParams) (int64, error)
}

// PricingParams holds the inputs for fare calculation.
type PricingParams struct {
	DistanceKm float64
	Tier       TransportTier
}

// TierPricingStrategy charges the tier base fare plus a per-kilometre rate.
type TierPricingStrategy struct{}

// NewTierPricingStrategy creates a new TierPricingStrategy.
func NewTierPricingStrategy() *TierPricingStrategy {
	return &TierPricingStrategy{}
}

// Calculate computes base + perKm * distance, rounded to the rupee.
func (s *TierPricingStrategy) Calculate(params PricingParams) (int64, error) {
	if params.DistanceKm < 0 {
		return 0, fmt.Errorf("distance cannot be negative")
	}
	if math.IsNaN(params.DistanceKm) || math.IsInf(params.DistanceKm, 0) {
		return 0, fmt.Errorf("distance must be finite")
	}
	return params.Tier.BaseFare + int64(math.Round(params.Tier.PerKm*params.DistanceKm)), nil
}
