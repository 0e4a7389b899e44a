package quotes

// RatePerKg is the flat tariff applied to every shipment, in currency units
// per kilogram. A single-entry tariff table stands in for the planned
// zone/weight-tier pricing.
const RatePerKg = 500.0

// CalculateRate prices a shipment of the given weight in kilograms. The
// result is fixed on the quote at creation and never recomputed.
func CalculateRate(weightKg float64) float64 {
	return weightKg * RatePerKg
}
