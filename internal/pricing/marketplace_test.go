package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShopeeQuote_StandardRate(t *testing.T) {
	got := DefaultShopeeFees.Quote(1, 1, 1, false)

	require.InDelta(t, 8/0.86, got.ConsumerPrice, eps)
	require.InDelta(t, 0.14, got.CommissionRate, eps)
	require.InDelta(t, 7, got.FixedFee, eps)
	require.False(t, got.LowPriceTier)
	require.False(t, got.CommissionCapped)
	require.InDelta(t, 8/0.86-1-(8/0.86)*0.14-7, got.NetProfit, eps)
}

func TestShopeeQuote_DefaultFixedFeeKeepsPriceAboveThreshold(t *testing.T) {
	for _, unitCost := range []float64{0, 0.5} {
		got := DefaultShopeeFees.Quote(unitCost, 1, 1, false)

		require.InDelta(t, (unitCost+7)/0.86, got.ConsumerPrice, eps)
		require.GreaterOrEqual(t, got.ConsumerPrice, 8.0)
		require.False(t, got.LowPriceTier)
	}
}

func TestShopeeQuote_LowPriceTierSwitchesFixedFee(t *testing.T) {
	fees := DefaultShopeeFees
	fees.FixedFee = 5

	got := fees.Quote(0, 1, 1, false)

	require.True(t, got.LowPriceTier)
	require.InDelta(t, 2, got.FixedFee, eps)
	require.InDelta(t, 2/0.86, got.ConsumerPrice, eps)
	require.InDelta(t, 2/0.86-(2/0.86)*0.14-2, got.NetProfit, eps)
}

func TestShopeeQuote_CommissionCapSwitchesToAdditivePrice(t *testing.T) {
	got := DefaultShopeeFees.Quote(1000, 1, 1, false)

	require.True(t, got.CommissionCapped)
	require.InDelta(t, 100, got.CommissionAmount, eps)
	require.InDelta(t, 1000+100+7, got.ConsumerPrice, eps)
	require.InDelta(t, 107, got.GrossProfit, eps)
	require.InDelta(t, 0, got.NetProfit, eps)
}

func TestShopeeQuote_CapCheckedAfterLowPriceTier(t *testing.T) {
	fees := ShopeeFeeCalculator{
		StandardRate:      0.5,
		FreeShippingRate:  0.5,
		FixedFee:          3,
		LowPriceFixedFee:  1,
		LowPriceThreshold: 8,
		CommissionCap:     1,
	}

	got := fees.Quote(1, 1, 1, false)

	// (1+3)/0.5 = 8 is not below 8; commission 4 > cap 1.
	require.False(t, got.LowPriceTier)
	require.True(t, got.CommissionCapped)
	require.InDelta(t, 1+1+3, got.ConsumerPrice, eps)

	got = fees.Quote(0.5, 1, 1, false)

	// (0.5+3)/0.5 = 7 < 8 so fee 1, price 3; commission 1.5 > cap 1.
	require.True(t, got.LowPriceTier)
	require.True(t, got.CommissionCapped)
	require.InDelta(t, 0.5+1+1, got.ConsumerPrice, eps)
	require.InDelta(t, 0, got.NetProfit, eps)
}

func TestShopeeQuote_QuantityScalesBase(t *testing.T) {
	got := DefaultShopeeFees.Quote(10, 3, 2, true)

	require.InDelta(t, 60, got.BasePrice, eps)
	require.InDelta(t, 67/0.8, got.ConsumerPrice, eps)
	require.InDelta(t, 67/0.8-30, got.GrossProfit, eps)
}

func TestMarketplaceCommission_ZeroFeesUsesDefault(t *testing.T) {
	m := MarketplaceCommission{FreeShippingProgram: true}

	require.Equal(t, DefaultShopeeFees.Quote(3, 2, 1.8, true), m.Quote(3, 2, 1.8))
	require.Equal(t, m.Quote(3, 2, 1.8).PriceResult, m.Price(3, 2, 1.8))
}

func TestEstimateAtWorstCaseRateIgnoresConfiguredToggle(t *testing.T) {
	configured := PriceAtConfiguredRate(20, 1, 2, false)
	estimate := EstimateAtWorstCaseRate(20, 1, 2)

	require.InDelta(t, 0.14, configured.CommissionRate, eps)
	require.InDelta(t, 0.20, estimate.CommissionRate, eps)
	require.Greater(t, estimate.ConsumerPrice, configured.ConsumerPrice)
	require.Equal(t, PriceAtConfiguredRate(20, 1, 2, true), estimate)
}
