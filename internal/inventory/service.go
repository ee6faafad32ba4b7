// Package inventory ties the catalog store to the pricing engine. Every call
// reads a fresh snapshot of its inputs; derived values are recomputed before
// anything is written back.
package inventory

import (
	"context"
	"errors"
	"math"

	"github.com/Simplici0/printstock/internal/form"
	"github.com/Simplici0/printstock/internal/model"
	"github.com/Simplici0/printstock/internal/pricing"
	"github.com/Simplici0/printstock/internal/store"
)

// Store is the persistence the service needs.
type Store interface {
	ListFilaments(ctx context.Context, activeOnly bool) ([]model.Filament, error)
	GetFilament(ctx context.Context, id int64) (model.Filament, error)
	CreateFilament(ctx context.Context, f model.Filament) (int64, error)
	UpdateFilament(ctx context.Context, f model.Filament) error
	DeleteFilament(ctx context.Context, id int64) error

	GetPreset(ctx context.Context) (model.Preset, error)
	SavePreset(ctx context.Context, p model.Preset) error

	CreateItem(ctx context.Context, it model.Item) error
	GetItem(ctx context.Context, id string) (model.Item, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	DeleteItem(ctx context.Context, id string) error
	SaveItemWithVariations(ctx context.Context, it model.Item, variations []pricing.Variation) error
	ReplaceVariations(ctx context.Context, itemID string, variations []pricing.Variation) error
	ListVariations(ctx context.Context, itemID string) ([]pricing.Variation, error)
}

var _ Store = (*store.Store)(nil)

type Service struct {
	store Store
}

func NewService(s Store) *Service {
	return &Service{store: s}
}

// ItemInput is what a user submits for an item.
//
// FilamentCostPerKg overrides the catalog price of FilamentID when set; with
// neither, the cost per kg inside Cost is used.
type ItemInput struct {
	Name              string                    `json:"name"`
	FilamentID        int64                     `json:"filament_id,omitempty"`
	FilamentCostPerKg *float64                  `json:"filament_cost_per_kg,omitempty"`
	Cost              pricing.CostParameters    `json:"cost"`
	Pricing           pricing.PricingParameters `json:"pricing"`
}

// VariationInput is one submitted variation. An empty ID creates a new one.
type VariationInput struct {
	ID                string   `json:"id,omitempty"`
	Name              string   `json:"name"`
	FilamentID        int64    `json:"filament_id,omitempty"`
	FilamentCostPerKg *float64 `json:"filament_cost_per_kg,omitempty"`
	WeightGrams       float64  `json:"weight_grams"`
	PrintMinutes      float64  `json:"print_minutes"`
}

// ItemDetail is the full view of one item.
type ItemDetail struct {
	Item   model.Item     `json:"item"`
	Result pricing.Result `json:"result"`

	// ConfiguredMarketplace prices the item at the commission rate its own
	// free-shipping flag selects. WorstCaseEstimate always assumes the
	// free-shipping rate and is for display only.
	ConfiguredMarketplace pricing.MarketplaceQuote `json:"configured_marketplace"`
	WorstCaseEstimate     pricing.MarketplaceQuote `json:"worst_case_estimate"`

	Variations []pricing.Variation `json:"variations"`
}

// nonNegative is the clamp applied to every engine input.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Min(v, form.MaxNumber)
}

func sanitizeCost(p pricing.CostParameters) pricing.CostParameters {
	return pricing.CostParameters{
		WeightGrams:          nonNegative(p.WeightGrams),
		PrintMinutes:         nonNegative(p.PrintMinutes),
		FilamentCostPerKg:    nonNegative(p.FilamentCostPerKg),
		PrinterPowerWatts:    nonNegative(p.PrinterPowerWatts),
		EnergyCostPerKwh:     nonNegative(p.EnergyCostPerKwh),
		MonthlyFixedCost:     nonNegative(p.MonthlyFixedCost),
		UnitsPerMonth:        nonNegative(p.UnitsPerMonth),
		PrinterPurchaseValue: nonNegative(p.PrinterPurchaseValue),
		PrinterLifetimeHours: nonNegative(p.PrinterLifetimeHours),
		AccessoriesCost:      nonNegative(p.AccessoriesCost),
		FailureRatePercent:   nonNegative(p.FailureRatePercent),
	}
}

func sanitizePricing(p pricing.PricingParameters) pricing.PricingParameters {
	out := p
	if out.Quantity < 1 {
		out.Quantity = 1
	}
	if out.Quantity > int(form.MaxNumber) {
		out.Quantity = int(form.MaxNumber)
	}
	out.Markup = nonNegative(p.Markup)
	out.Mode = pricing.ParseMode(string(p.Mode))
	out.TaxPercent = nonNegative(p.TaxPercent)
	out.PaymentFeePercent = nonNegative(p.PaymentFeePercent)
	return out
}

// resolveCostPerKg picks the filament price: explicit override, then the
// catalog entry, then fallback.
func (s *Service) resolveCostPerKg(ctx context.Context, filamentID int64, override *float64, fallback float64) (float64, *int64, error) {
	var ref *int64
	if filamentID > 0 {
		id := filamentID
		ref = &id
	}

	if override != nil {
		return nonNegative(*override), ref, nil
	}
	if ref == nil {
		return nonNegative(fallback), nil, nil
	}

	f, err := s.store.GetFilament(ctx, filamentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, nil, invalidField("filament_id", "unknown filament")
		}
		return 0, nil, err
	}
	return f.CostPerKg, ref, nil
}
