package pricing

// Variation is an alternate filament/weight/time combination of one item. It
// shares every other cost and pricing parameter with the item.
type Variation struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	FilamentID        *int64  `json:"filament_id,omitempty"`
	FilamentCostPerKg float64 `json:"filament_cost_per_kg"`
	WeightGrams       float64 `json:"weight_grams"`
	PrintMinutes      float64 `json:"print_minutes"`

	CalculatedCost  float64 `json:"calculated_cost"`
	CalculatedPrice float64 `json:"calculated_price"`
	NetProfit       float64 `json:"net_profit"`
}

// SharedParameters are the item-level inputs every variation inherits.
type SharedParameters struct {
	Cost    CostParameters
	Pricing PricingParameters
}

// CostFor overlays the variation's own fields onto the shared cost inputs.
func (s SharedParameters) CostFor(filamentCostPerKg, weightGrams, printMinutes float64) CostParameters {
	p := s.Cost
	p.FilamentCostPerKg = filamentCostPerKg
	p.WeightGrams = weightGrams
	p.PrintMinutes = printMinutes
	return p
}

// RecomputeVariation returns v with its calculated fields derived from the
// current shared parameters. v's own inputs are left untouched.
func RecomputeVariation(v Variation, shared SharedParameters) Variation {
	res := Calculate(shared.CostFor(v.FilamentCostPerKg, v.WeightGrams, v.PrintMinutes), shared.Pricing)

	v.CalculatedCost = res.Breakdown.UnitCost
	v.CalculatedPrice = res.Price.ConsumerPrice
	v.NetProfit = res.Price.NetProfit
	return v
}

// RecomputeAll recomputes every variation against shared. The input slice is
// not modified.
func RecomputeAll(variations []Variation, shared SharedParameters) []Variation {
	out := make([]Variation, len(variations))
	for i, v := range variations {
		out[i] = RecomputeVariation(v, shared)
	}
	return out
}
