package cart

import (
    "math"
    "strings"
)

// Destination tiers for delivery-fee calculation.
const (
    TierCity     = "city"
    TierStandard = "standard"
)

// Tariff holds the fixed delivery-rate configuration: a base fee up to
// a free weight limit per tier, plus a flat surcharge for every whole
// kilogram over the limit.
type Tariff struct {
    CityDistrict        string
    CityBaseFee         float64
    CityFreeLimitKg     float64
    StandardBaseFee     float64
    StandardFreeLimitKg float64
    ExtraPerKg          float64
}

// DefaultTariff mirrors the storefront's published delivery rates.
func DefaultTariff() Tariff {
    return Tariff{
        CityDistrict:        "Dhaka City",
        CityBaseFee:         60,
        CityFreeLimitKg:     2,
        StandardBaseFee:     120,
        StandardFreeLimitKg: 1,
        ExtraPerKg:          20,
    }
}

// DeliveryFee computes the shipping cost for the current cart. The
// district name decides the tier: a case-insensitive exact match
// against the configured city district selects the city tariff. When
// no district is given, destinationTier is consulted instead. Pure
// read, no side effects.
func (s *Store) DeliveryFee(destinationTier, district string) float64 {
    base := s.tariff.StandardBaseFee
    limit := s.tariff.StandardFreeLimitKg

    if s.isCityDestination(destinationTier, district) {
        base = s.tariff.CityBaseFee
        limit = s.tariff.CityFreeLimitKg
    }

    weight := s.TotalWeight()
    if weight <= limit {
        return base
    }

    // Excess weight is billed per whole kg, rounded up.
    extraKg := math.Ceil(weight - limit)
    return base + extraKg*s.tariff.ExtraPerKg
}

// TotalWeight sums line weight times quantity across the cart. Lines
// with absent or unparsable weight contribute 0.
func (s *Store) TotalWeight() float64 {
    var total float64
    for _, line := range s.lines {
        total += parseWeight(line.Weight) * float64(line.Quantity)
    }
    return total
}

func (s *Store) isCityDestination(destinationTier, district string) bool {
    if district != "" {
        return strings.EqualFold(strings.TrimSpace(district), s.tariff.CityDistrict)
    }
    return strings.EqualFold(strings.TrimSpace(destinationTier), TierCity)
}
