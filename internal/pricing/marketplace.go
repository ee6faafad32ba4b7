package pricing

// ShopeeFeeCalculator holds the seller fee schedule of the Shopee marketplace:
// a percentage commission plus a fixed fee per sale, a cheaper fixed fee for
// low-priced listings and a ceiling on the commission amount.
type ShopeeFeeCalculator struct {
	StandardRate      float64
	FreeShippingRate  float64
	FixedFee          float64
	LowPriceFixedFee  float64
	LowPriceThreshold float64
	CommissionCap     float64
}

// DefaultShopeeFees is the fee schedule used when none is configured.
var DefaultShopeeFees = ShopeeFeeCalculator{
	StandardRate:      0.14,
	FreeShippingRate:  0.20,
	FixedFee:          7.00,
	LowPriceFixedFee:  2.00,
	LowPriceThreshold: 8.00,
	CommissionCap:     100.00,
}

// MarketplaceQuote is a PriceResult plus the fees the marketplace keeps.
type MarketplaceQuote struct {
	PriceResult
	CommissionRate   float64 `json:"commission_rate"`
	CommissionAmount float64 `json:"commission_amount"`
	FixedFee         float64 `json:"fixed_fee"`
	LowPriceTier     bool    `json:"low_price_tier"`
	CommissionCapped bool    `json:"commission_capped"`
}

// Quote runs the fee tiers in order: gross-up, low-price fixed fee, commission cap.
// The cap is checked against the tier-adjusted price.
func (c ShopeeFeeCalculator) Quote(unitCost float64, quantity int, markup float64, freeShippingProgram bool) MarketplaceQuote {
	rate := c.StandardRate
	if freeShippingProgram {
		rate = c.FreeShippingRate
	}
	fixedFee := c.FixedFee

	qty := float64(quantity)
	productionCost := unitCost * qty
	basePrice := unitCost * markup * qty

	price := grossUp(basePrice, fixedFee, rate)

	lowPriceTier := false
	if price < c.LowPriceThreshold {
		lowPriceTier = true
		fixedFee = c.LowPriceFixedFee
		price = grossUp(basePrice, fixedFee, rate)
	}

	commission := price * rate
	capped := false
	if commission > c.CommissionCap {
		// Above the cap the marketplace charges a flat amount, so the price
		// becomes additive instead of a gross-up.
		capped = true
		commission = c.CommissionCap
		price = productionCost + commission + fixedFee
	}

	return MarketplaceQuote{
		PriceResult: PriceResult{
			BasePrice:     basePrice,
			ConsumerPrice: price,
			GrossProfit:   price - productionCost,
			NetProfit:     price - productionCost - commission - fixedFee,
		},
		CommissionRate:   rate,
		CommissionAmount: commission,
		FixedFee:         fixedFee,
		LowPriceTier:     lowPriceTier,
		CommissionCapped: capped,
	}
}

func grossUp(basePrice, fixedFee, rate float64) float64 {
	if rate >= 1 {
		return basePrice + fixedFee
	}
	return (basePrice + fixedFee) / (1 - rate)
}

// MarketplaceCommission prices through a marketplace fee schedule. A zero
// Fees value means DefaultShopeeFees.
type MarketplaceCommission struct {
	FreeShippingProgram bool
	Fees                ShopeeFeeCalculator
}

// Price implements Strategy.
func (m MarketplaceCommission) Price(unitCost float64, quantity int, markup float64) PriceResult {
	return m.Quote(unitCost, quantity, markup).PriceResult
}

// Quote returns the full fee detail behind Price.
func (m MarketplaceCommission) Quote(unitCost float64, quantity int, markup float64) MarketplaceQuote {
	return m.fees().Quote(unitCost, quantity, markup, m.FreeShippingProgram)
}

func (m MarketplaceCommission) fees() ShopeeFeeCalculator {
	if m.Fees == (ShopeeFeeCalculator{}) {
		return DefaultShopeeFees
	}
	return m.Fees
}

// PriceAtConfiguredRate quotes the marketplace strategy with the item's own
// free-shipping choice. Edit and save flows use this.
func PriceAtConfiguredRate(unitCost float64, quantity int, markup float64, freeShippingProgram bool) MarketplaceQuote {
	return MarketplaceCommission{FreeShippingProgram: freeShippingProgram}.Quote(unitCost, quantity, markup)
}

// EstimateAtWorstCaseRate is the display-only estimate shown on the item detail
// view. It always assumes the free-shipping commission rate, whatever the item
// has configured.
func EstimateAtWorstCaseRate(unitCost float64, quantity int, markup float64) MarketplaceQuote {
	return MarketplaceCommission{FreeShippingProgram: true}.Quote(unitCost, quantity, markup)
}
