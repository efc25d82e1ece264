// Package pricing computes distance-based delivery fees.
package pricing

import (
	"math"
)

// BaseFee is the flat fee charged for any distance up to the first tier bound.
const BaseFee int64 = 30

// Open-ended tier constants. Kept exactly as tuned; changing them is a pricing decision.
const (
	openTierOffsetKm = 51.956746045892004
	openTierScaleKm  = 5.0
)

var openTierExponent = math.Log10(4)

// tier is one bounded band of the tariff. Within (lower, UpperKm] the fee is
// fee(lower) + Surcharge + (d-lower)*RatePerKm.
type tier struct {
	UpperKm   float64
	RatePerKm float64
	Surcharge float64
}

// tiers must be ordered by UpperKm. The 2-5 km band carries an extra flat 30 on top
// of fee(2); it is part of the published tariff and must not be folded away.
var tiers = []tier{
	{UpperKm: 2, RatePerKm: 0, Surcharge: 0},
	{UpperKm: 5, RatePerKm: 4, Surcharge: 30},
	{UpperKm: 20, RatePerKm: 8, Surcharge: 0},
	{UpperKm: 200, RatePerKm: 12, Surcharge: 0},
}

// boundaryFees[i] is the rounded fee at tiers[i].UpperKm.
var boundaryFees = buildBoundaryFees()

func buildBoundaryFees() []int64 {
	fees := make([]int64, len(tiers))
	lower := 0.0
	prev := float64(BaseFee)
	for i, t := range tiers {
		if i == 0 {
			fees[i] = BaseFee
		} else {
			fees[i] = roundFee(prev + t.Surcharge + (t.UpperKm-lower)*t.RatePerKm)
		}
		prev = float64(fees[i])
		lower = t.UpperKm
	}
	return fees
}

// DeliveryFee maps a distance in kilometres to a whole-unit delivery fee.
//
// Callers are expected to Validate the distance first. Negative and NaN inputs fall
// into the base tier; +Inf saturates.
func DeliveryFee(distanceKm float64) int64 {
	if !(distanceKm > tiers[0].UpperKm) {
		return BaseFee
	}
	if math.IsInf(distanceKm, 1) {
		return math.MaxInt64
	}

	lower := tiers[0].UpperKm
	for i := 1; i < len(tiers); i++ {
		t := tiers[i]
		if distanceKm <= t.UpperKm {
			return roundFee(float64(boundaryFees[i-1]) + t.Surcharge + (distanceKm-lower)*t.RatePerKm)
		}
		lower = t.UpperKm
	}

	fee := roundFee(openTierFee(distanceKm))
	// The power law was fitted without the 2-5 km surcharge, so just past the last
	// bound it undercuts fee(200). Hold the boundary fee until it catches up.
	if last := boundaryFees[len(boundaryFees)-1]; fee < last {
		return last
	}
	return fee
}

// openTierFee is the super-linear charge applied beyond the last bounded tier.
func openTierFee(distanceKm float64) float64 {
	return (distanceKm + openTierOffsetKm) * math.Pow(distanceKm/openTierScaleKm, openTierExponent)
}

// DeliveryFeeForMeters converts a geodesic distance in meters and prices it.
func DeliveryFeeForMeters(meters float64) int64 {
	return DeliveryFee(meters / 1000)
}

// Validate rejects distances the tariff is not defined for.
func Validate(distanceKm float64) error {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return ErrInvalidDistance{Distance: distanceKm}
	}
	return nil
}

// TierBounds returns the upper bound and boundary fee of each bounded tier.
func TierBounds() (bounds []float64, fees []int64) {
	bounds = make([]float64, len(tiers))
	fees = make([]int64, len(tiers))
	for i, t := range tiers {
		bounds[i] = t.UpperKm
		fees[i] = boundaryFees[i]
	}
	return bounds, fees
}

// roundFee saturates at MaxInt64 so the open tier stays monotonic for huge inputs.
func roundFee(v float64) int64 {
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Round(v))
}
