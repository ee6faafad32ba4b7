package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Simplici0/printstock/internal/logger"
	"github.com/Simplici0/printstock/internal/model"
	"github.com/Simplici0/printstock/internal/pricing"
	"github.com/Simplici0/printstock/internal/store"
)

// Defaults returns the initial values of a new item, taken from the preset.
func (s *Service) Defaults(ctx context.Context) (ItemInput, error) {
	p, err := s.store.GetPreset(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return ItemInput{}, err
	}
	if errors.Is(err, store.ErrNotFound) {
		p = model.Preset{Markup: 1}
	}

	return ItemInput{
		Cost: pricing.CostParameters{
			PrinterPowerWatts:    p.PrinterPowerWatts,
			EnergyCostPerKwh:     p.EnergyCostPerKwh,
			MonthlyFixedCost:     p.MonthlyFixedCost,
			UnitsPerMonth:        p.UnitsPerMonth,
			PrinterPurchaseValue: p.PrinterPurchaseValue,
			PrinterLifetimeHours: p.PrinterLifetimeHours,
			AccessoriesCost:      p.AccessoriesCost,
			FailureRatePercent:   p.FailureRatePercent,
		},
		Pricing: pricing.PricingParameters{
			Quantity:          1,
			Markup:            p.Markup,
			Mode:              pricing.ModeDirect,
			TaxPercent:        p.TaxPercent,
			PaymentFeePercent: p.PaymentFeePercent,
		},
	}, nil
}

// buildItem resolves the filament price and runs the engine on in.
func (s *Service) buildItem(ctx context.Context, id string, in ItemInput) (model.Item, pricing.Result, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Item{}, pricing.Result{}, invalidField("name", "required")
	}

	cost := sanitizeCost(in.Cost)
	costPerKg, filamentID, err := s.resolveCostPerKg(ctx, in.FilamentID, in.FilamentCostPerKg, cost.FilamentCostPerKg)
	if err != nil {
		return model.Item{}, pricing.Result{}, err
	}
	cost.FilamentCostPerKg = costPerKg

	it := model.Item{
		ID:         id,
		Name:       name,
		FilamentID: filamentID,
		Cost:       cost,
		Pricing:    sanitizePricing(in.Pricing),
	}
	res := pricing.Calculate(it.Cost, it.Pricing)
	it.ApplyResult(res)
	return it, res, nil
}

// Quote prices in without saving anything. Names are not required here.
func (s *Service) Quote(ctx context.Context, in ItemInput) (pricing.Result, error) {
	if strings.TrimSpace(in.Name) == "" {
		in.Name = "quote"
	}
	_, res, err := s.buildItem(ctx, "", in)
	if err != nil {
		return pricing.Result{}, err
	}
	return res.Rounded(), nil
}

func (s *Service) CreateItem(ctx context.Context, in ItemInput) (model.Item, error) {
	it, _, err := s.buildItem(ctx, uuid.NewString(), in)
	if err != nil {
		return model.Item{}, err
	}

	if err := s.store.CreateItem(ctx, it); err != nil {
		return model.Item{}, err
	}
	logger.Info(ctx, "item created",
		logger.String("item_id", it.ID),
		logger.Float64("unit_cost", it.UnitCost),
		logger.Float64("consumer_price", it.ConsumerPrice),
	)

	return s.getItem(ctx, it.ID)
}

// UpdateItem replaces the item's inputs. Shared parameters may have changed,
// so every variation is recomputed and saved together with the item.
func (s *Service) UpdateItem(ctx context.Context, id string, in ItemInput) (ItemDetail, error) {
	if _, err := s.getItem(ctx, id); err != nil {
		return ItemDetail{}, err
	}

	it, _, err := s.buildItem(ctx, id, in)
	if err != nil {
		return ItemDetail{}, err
	}

	variations, err := s.store.ListVariations(ctx, id)
	if err != nil {
		return ItemDetail{}, err
	}
	variations = pricing.RecomputeAll(variations, it.Shared())

	if err := s.store.SaveItemWithVariations(ctx, it, variations); err != nil {
		return ItemDetail{}, translate(err, "item")
	}
	logger.Info(ctx, "item updated",
		logger.String("item_id", id),
		logger.Int("variations", len(variations)),
	)

	return s.ItemDetail(ctx, id)
}

func (s *Service) ItemDetail(ctx context.Context, id string) (ItemDetail, error) {
	it, err := s.getItem(ctx, id)
	if err != nil {
		return ItemDetail{}, err
	}

	variations, err := s.store.ListVariations(ctx, id)
	if err != nil {
		return ItemDetail{}, err
	}

	res := pricing.Calculate(it.Cost, it.Pricing)
	unitCost := res.Breakdown.UnitCost
	qty, markup := it.Pricing.Quantity, it.Pricing.Markup

	return ItemDetail{
		Item:                  it,
		Result:                res.Rounded(),
		ConfiguredMarketplace: roundQuote(pricing.PriceAtConfiguredRate(unitCost, qty, markup, it.Pricing.FreeShippingProgram)),
		WorstCaseEstimate:     roundQuote(pricing.EstimateAtWorstCaseRate(unitCost, qty, markup)),
		Variations:            roundVariations(pricing.RecomputeAll(variations, it.Shared())),
	}, nil
}

func (s *Service) ListItems(ctx context.Context) ([]model.Item, error) {
	return s.store.ListItems(ctx)
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return translate(err, "item")
	}
	logger.Info(ctx, "item deleted", logger.String("item_id", id))
	return nil
}

func (s *Service) getItem(ctx context.Context, id string) (model.Item, error) {
	it, err := s.store.GetItem(ctx, id)
	if err != nil {
		return model.Item{}, translate(err, "item")
	}
	return it, nil
}

func roundQuote(q pricing.MarketplaceQuote) pricing.MarketplaceQuote {
	q.BasePrice = pricing.Round2(q.BasePrice)
	q.ConsumerPrice = pricing.Round2(q.ConsumerPrice)
	q.GrossProfit = pricing.Round2(q.GrossProfit)
	q.NetProfit = pricing.Round2(q.NetProfit)
	q.CommissionAmount = pricing.Round2(q.CommissionAmount)
	return q
}
