package calculator

import "math"

// Weights of the efficiency score terms. These are fixed product constants.
const (
	costEfficiencyWeight = 100.0
	throughputWeight     = 10.0
)

// Round2 rounds half up to 2 decimal places.
// NaN and infinities are returned unchanged.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// ratio returns num/den, or 0 when den is zero.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// CostPerUnit returns totalSpent / totalUnits rounded to 2 places.
// It returns 0 when totalUnits is 0.
func CostPerUnit(totalSpent float64, totalUnits int) float64 {
	return Round2(ratio(totalSpent, float64(totalUnits)))
}

// TimePerUnit returns totalMinutes / totalUnits rounded to 2 places.
// It returns 0 when totalUnits is 0.
func TimePerUnit(totalMinutes float64, totalUnits int) float64 {
	return Round2(ratio(totalMinutes, float64(totalUnits)))
}

// CostPerHour returns the spend per hour of logged time.
// It returns 0 when totalMinutes is 0.
func CostPerHour(totalSpent, totalMinutes float64) float64 {
	return Round2(ratio(totalSpent, totalMinutes/60))
}

// UnitsPerHour returns the units per hour of logged time.
// It returns 0 when totalMinutes is 0.
func UnitsPerHour(totalUnits int, totalMinutes float64) float64 {
	return Round2(ratio(float64(totalUnits), totalMinutes/60))
}

// EfficiencyScore combines cost efficiency, throughput and rating:
//
//	(units/spent)*100 + (units/hours)*10 + rating
//
// A term whose denominator is zero contributes 0, so with no spend and no
// time the score is the rating alone. Only the final sum is rounded.
func EfficiencyScore(totalUnits int, totalSpent, totalMinutes, rating float64) float64 {
	units := float64(totalUnits)
	perDollar := ratio(units, totalSpent)
	perHour := ratio(units, totalMinutes/60)
	return Round2(perDollar*costEfficiencyWeight + perHour*throughputWeight + rating)
}
