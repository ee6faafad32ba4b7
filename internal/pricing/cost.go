package pricing

// CostParameters holds the physical and economic inputs of one production unit.
// Callers clamp every field to >= 0 before calling ComputeCost.
type CostParameters struct {
	WeightGrams       float64 `json:"weight_grams"`
	PrintMinutes      float64 `json:"print_minutes"`
	FilamentCostPerKg float64 `json:"filament_cost_per_kg"`

	PrinterPowerWatts float64 `json:"printer_power_watts"`
	EnergyCostPerKwh  float64 `json:"energy_cost_per_kwh"`

	MonthlyFixedCost float64 `json:"monthly_fixed_cost"`
	UnitsPerMonth    float64 `json:"units_per_month"`

	PrinterPurchaseValue float64 `json:"printer_purchase_value"`
	PrinterLifetimeHours float64 `json:"printer_lifetime_hours"`

	AccessoriesCost    float64 `json:"accessories_cost"`
	FailureRatePercent float64 `json:"failure_rate_percent"`
}

// CostBreakdown contains every line item of the unit cost.
type CostBreakdown struct {
	Material         float64 `json:"material"`
	Energy           float64 `json:"energy"`
	FixedCostPerUnit float64 `json:"fixed_cost_per_unit"`
	Amortization     float64 `json:"amortization"`
	Accessories      float64 `json:"accessories"`
	FailureSurcharge float64 `json:"failure_surcharge"`
	UnitCost         float64 `json:"unit_cost"`
}

// ComputeCost derives the production unit cost. Zero denominators drop the
// corresponding term instead of failing.
func ComputeCost(p CostParameters) CostBreakdown {
	totalHours := p.PrintMinutes / 60.0

	material := (p.WeightGrams / 1000.0) * p.FilamentCostPerKg
	energy := (p.PrinterPowerWatts / 1000.0) * totalHours * p.EnergyCostPerKwh

	fixedCostPerUnit := 0.0
	if p.UnitsPerMonth > 0 {
		fixedCostPerUnit = p.MonthlyFixedCost / p.UnitsPerMonth
	}

	amortization := 0.0
	if p.PrinterLifetimeHours > 0 {
		amortization = (p.PrinterPurchaseValue / p.PrinterLifetimeHours) * totalHours
	}

	// Failures waste material and energy only.
	variableCost := material + energy
	failureSurcharge := variableCost * (p.FailureRatePercent / 100.0)

	unitCost := material + energy + fixedCostPerUnit + amortization + p.AccessoriesCost + failureSurcharge

	return CostBreakdown{
		Material:         material,
		Energy:           energy,
		FixedCostPerUnit: fixedCostPerUnit,
		Amortization:     amortization,
		Accessories:      p.AccessoriesCost,
		FailureSurcharge: failureSurcharge,
		UnitCost:         unitCost,
	}
}
