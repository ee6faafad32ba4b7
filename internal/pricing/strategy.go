package pricing

// Mode selects which pricing strategy applies to an item.
type Mode string

const (
	ModeDirect      Mode = "direct"
	ModeMarketplace Mode = "marketplace"
)

// ParseMode maps a stored or submitted value to a Mode, defaulting to direct pricing.
func ParseMode(raw string) Mode {
	if Mode(raw) == ModeMarketplace {
		return ModeMarketplace
	}
	return ModeDirect
}

// PriceResult is the outcome of a pricing strategy. Profits may be negative.
type PriceResult struct {
	BasePrice     float64 `json:"base_price"`
	ConsumerPrice float64 `json:"consumer_price"`
	GrossProfit   float64 `json:"gross_profit"`
	NetProfit     float64 `json:"net_profit"`
}

// Strategy turns a unit cost into a consumer price.
type Strategy interface {
	Price(unitCost float64, quantity int, markup float64) PriceResult
}

// PricingParameters carries the inputs of both strategies; Mode decides which
// group of fields is read.
type PricingParameters struct {
	Quantity int     `json:"quantity"`
	Markup   float64 `json:"markup"`
	Mode     Mode    `json:"mode"`

	// Direct mode.
	TaxPercent         float64 `json:"tax_percent"`
	PaymentFeePercent  float64 `json:"payment_fee_percent"`
	IncludeFeesInPrice bool    `json:"include_fees_in_price"`

	// Marketplace mode.
	FreeShippingProgram bool `json:"free_shipping_program"`
}

// Strategy returns the strategy selected by p.Mode.
func (p PricingParameters) Strategy() Strategy {
	if p.Mode == ModeMarketplace {
		return MarketplaceCommission{FreeShippingProgram: p.FreeShippingProgram}
	}
	return DirectMarkup{
		TaxPercent:         p.TaxPercent,
		PaymentFeePercent:  p.PaymentFeePercent,
		IncludeFeesInPrice: p.IncludeFeesInPrice,
	}
}

// DirectMarkup prices with a markup multiplier and treats tax and payment fee
// as percentages of the final consumer price.
type DirectMarkup struct {
	TaxPercent         float64
	PaymentFeePercent  float64
	IncludeFeesInPrice bool
}

// Price implements Strategy.
func (d DirectMarkup) Price(unitCost float64, quantity int, markup float64) PriceResult {
	qty := float64(quantity)
	basePrice := unitCost * markup * qty

	consumerPrice := basePrice
	if d.IncludeFeesInPrice && (d.TaxPercent > 0 || d.PaymentFeePercent > 0) {
		// price = base + price*rate  =>  price = base / (1 - rate)
		divisor := 1 - d.TaxPercent/100.0 - d.PaymentFeePercent/100.0
		if divisor > 0 {
			consumerPrice = basePrice / divisor
		}
	}

	grossProfit := consumerPrice - unitCost*qty
	taxPaid := consumerPrice * d.TaxPercent / 100.0
	feePaid := consumerPrice * d.PaymentFeePercent / 100.0

	return PriceResult{
		BasePrice:     basePrice,
		ConsumerPrice: consumerPrice,
		GrossProfit:   grossProfit,
		NetProfit:     grossProfit - taxPaid - feePaid,
	}
}
