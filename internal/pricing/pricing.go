// Package pricing turns production parameters into a unit cost, a consumer
// price and a net profit. Every function is pure and safe to call on each
// input change.
package pricing

// Result groups the cost breakdown with the price derived from it. Both halves
// always come from the same call.
type Result struct {
	Breakdown CostBreakdown `json:"breakdown"`
	Price     PriceResult   `json:"price"`
}

// Calculate runs the cost model and then the pricing strategy selected by
// pricing.Mode.
func Calculate(cost CostParameters, pricing PricingParameters) Result {
	breakdown := ComputeCost(cost)
	price := pricing.Strategy().Price(breakdown.UnitCost, pricing.Quantity, pricing.Markup)

	return Result{
		Breakdown: breakdown,
		Price:     price,
	}
}

// Rounded returns a copy with every amount rounded to two decimals, ready to
// persist or display.
func (r Result) Rounded() Result {
	return Result{
		Breakdown: CostBreakdown{
			Material:         Round2(r.Breakdown.Material),
			Energy:           Round2(r.Breakdown.Energy),
			FixedCostPerUnit: Round2(r.Breakdown.FixedCostPerUnit),
			Amortization:     Round2(r.Breakdown.Amortization),
			Accessories:      Round2(r.Breakdown.Accessories),
			FailureSurcharge: Round2(r.Breakdown.FailureSurcharge),
			UnitCost:         Round2(r.Breakdown.UnitCost),
		},
		Price: PriceResult{
			BasePrice:     Round2(r.Price.BasePrice),
			ConsumerPrice: Round2(r.Price.ConsumerPrice),
			GrossProfit:   Round2(r.Price.GrossProfit),
			NetProfit:     Round2(r.Price.NetProfit),
		},
	}
}
