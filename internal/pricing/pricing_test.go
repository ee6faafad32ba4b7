package pricing

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func randomCostParameters() CostParameters {
	return CostParameters{
		WeightGrams:          gofakeit.Float64Range(0, 2000),
		PrintMinutes:         gofakeit.Float64Range(0, 3000),
		FilamentCostPerKg:    gofakeit.Float64Range(0, 400),
		PrinterPowerWatts:    gofakeit.Float64Range(0, 1500),
		EnergyCostPerKwh:     gofakeit.Float64Range(0, 3),
		MonthlyFixedCost:     gofakeit.Float64Range(0, 5000),
		UnitsPerMonth:        gofakeit.Float64Range(0, 500),
		PrinterPurchaseValue: gofakeit.Float64Range(0, 20000),
		PrinterLifetimeHours: gofakeit.Float64Range(0, 10000),
		AccessoriesCost:      gofakeit.Float64Range(0, 50),
		FailureRatePercent:   gofakeit.Float64Range(0, 100),
	}
}

func requireFinite(t *testing.T, name string, v float64) {
	t.Helper()
	require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s is not finite: %v", name, v)
}

func TestCalculate_DirectModeEndToEnd(t *testing.T) {
	cost := CostParameters{
		WeightGrams:        250,
		PrintMinutes:       180,
		FilamentCostPerKg:  100,
		PrinterPowerWatts:  200,
		EnergyCostPerKwh:   1,
		FailureRatePercent: 10,
		AccessoriesCost:    2,
	}
	res := Calculate(cost, PricingParameters{Quantity: 2, Markup: 3, Mode: ModeDirect})

	// material 25, energy 0.6, failure 2.56, accessories 2
	require.InDelta(t, 30.16, res.Breakdown.UnitCost, eps)
	require.InDelta(t, 180.96, res.Price.BasePrice, eps)
	require.InDelta(t, 180.96, res.Price.ConsumerPrice, eps)
	require.InDelta(t, 120.64, res.Price.NetProfit, eps)
}

func TestCalculate_MarketplaceModeUsesConfiguredRate(t *testing.T) {
	cost := CostParameters{WeightGrams: 100, FilamentCostPerKg: 100}

	standard := Calculate(cost, PricingParameters{Quantity: 1, Markup: 2, Mode: ModeMarketplace})
	freeShipping := Calculate(cost, PricingParameters{Quantity: 1, Markup: 2, Mode: ModeMarketplace, FreeShippingProgram: true})

	require.InDelta(t, (20+7)/0.86, standard.Price.ConsumerPrice, eps)
	require.InDelta(t, (20+7)/0.80, freeShipping.Price.ConsumerPrice, eps)
}

func TestCalculate_AllZeroInputIsFinite(t *testing.T) {
	for _, mode := range []Mode{ModeDirect, ModeMarketplace} {
		res := Calculate(CostParameters{}, PricingParameters{Mode: mode})

		requireFinite(t, "unit cost", res.Breakdown.UnitCost)
		requireFinite(t, "consumer price", res.Price.ConsumerPrice)
		requireFinite(t, "net profit", res.Price.NetProfit)
		require.Zero(t, res.Breakdown.UnitCost)
	}
}

func TestCalculate_IsIdempotent(t *testing.T) {
	gofakeit.Seed(11)
	for i := 0; i < 200; i++ {
		cost := randomCostParameters()
		pricing := PricingParameters{
			Quantity:            gofakeit.Number(1, 20),
			Markup:              gofakeit.Float64Range(0, 5),
			Mode:                ParseMode(gofakeit.RandomString([]string{"direct", "marketplace"})),
			TaxPercent:          gofakeit.Float64Range(0, 30),
			PaymentFeePercent:   gofakeit.Float64Range(0, 30),
			IncludeFeesInPrice:  gofakeit.Bool(),
			FreeShippingProgram: gofakeit.Bool(),
		}

		first := Calculate(cost, pricing)
		second := Calculate(cost, pricing)

		require.InDelta(t, first.Breakdown.UnitCost, second.Breakdown.UnitCost, eps)
		require.InDelta(t, first.Price.ConsumerPrice, second.Price.ConsumerPrice, eps)
		require.InDelta(t, first.Price.NetProfit, second.Price.NetProfit, eps)
		requireFinite(t, "consumer price", first.Price.ConsumerPrice)
		requireFinite(t, "net profit", first.Price.NetProfit)
	}
}

func TestResult_Rounded(t *testing.T) {
	res := Result{
		Breakdown: CostBreakdown{Material: 1.005, UnitCost: 2.3349},
		Price:     PriceResult{ConsumerPrice: 9.302325581, NetProfit: -0.125},
	}.Rounded()

	require.Equal(t, 1.01, res.Breakdown.Material)
	require.Equal(t, 2.33, res.Breakdown.UnitCost)
	require.Equal(t, 9.3, res.Price.ConsumerPrice)
	require.Equal(t, -0.13, res.Price.NetProfit)
}

func TestRound2_NonFinite(t *testing.T) {
	require.Zero(t, Round2(math.NaN()))
	require.Zero(t, Round2(math.Inf(1)))
	require.Equal(t, 25.0, Round2(25.000000001))
}

func TestParseMode(t *testing.T) {
	require.Equal(t, ModeMarketplace, ParseMode("marketplace"))
	require.Equal(t, ModeDirect, ParseMode("direct"))
	require.Equal(t, ModeDirect, ParseMode(""))
	require.Equal(t, ModeDirect, ParseMode("shopee"))
}
