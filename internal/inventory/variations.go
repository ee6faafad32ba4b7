package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Simplici0/printstock/internal/logger"
	"github.com/Simplici0/printstock/internal/pricing"
)

func (s *Service) buildVariation(ctx context.Context, in VariationInput) (pricing.Variation, error) {
	costPerKg, filamentID, err := s.resolveCostPerKg(ctx, in.FilamentID, in.FilamentCostPerKg, 0)
	if err != nil {
		return pricing.Variation{}, err
	}

	return pricing.Variation{
		ID:                lo.Ternary(in.ID == "", uuid.NewString(), in.ID),
		Name:              strings.TrimSpace(in.Name),
		FilamentID:        filamentID,
		FilamentCostPerKg: costPerKg,
		WeightGrams:       nonNegative(in.WeightGrams),
		PrintMinutes:      nonNegative(in.PrintMinutes),
	}, nil
}

// PreviewVariation prices one variation against the item without saving it.
func (s *Service) PreviewVariation(ctx context.Context, itemID string, in VariationInput) (pricing.Variation, error) {
	it, err := s.getItem(ctx, itemID)
	if err != nil {
		return pricing.Variation{}, err
	}

	v, err := s.buildVariation(ctx, in)
	if err != nil {
		return pricing.Variation{}, err
	}
	return roundVariation(pricing.RecomputeVariation(v, it.Shared())), nil
}

// SaveVariations replaces the item's variations with ins. All of them are
// recomputed against the item's current parameters before they are stored.
func (s *Service) SaveVariations(ctx context.Context, itemID string, ins []VariationInput) ([]pricing.Variation, error) {
	it, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	variations := make([]pricing.Variation, 0, len(ins))
	for i, in := range ins {
		v, err := s.buildVariation(ctx, in)
		if err != nil {
			return nil, err
		}
		if v.Name == "" {
			return nil, invalidField(fmt.Sprintf("variations[%d].name", i), "required")
		}
		variations = append(variations, v)
	}

	if dup, ok := firstDuplicateID(variations); ok {
		return nil, invalidField("variations", "duplicate id "+dup)
	}

	variations = pricing.RecomputeAll(variations, it.Shared())
	if err := s.store.ReplaceVariations(ctx, itemID, variations); err != nil {
		return nil, err
	}
	logger.Info(ctx, "variations saved",
		logger.String("item_id", itemID),
		logger.Int("count", len(variations)),
	)

	return roundVariations(variations), nil
}

func firstDuplicateID(vs []pricing.Variation) (string, bool) {
	dups := lo.FindDuplicatesBy(vs, func(v pricing.Variation) string { return v.ID })
	if len(dups) == 0 {
		return "", false
	}
	return dups[0].ID, true
}

func roundVariation(v pricing.Variation) pricing.Variation {
	v.CalculatedCost = pricing.Round2(v.CalculatedCost)
	v.CalculatedPrice = pricing.Round2(v.CalculatedPrice)
	v.NetProfit = pricing.Round2(v.NetProfit)
	return v
}

func roundVariations(vs []pricing.Variation) []pricing.Variation {
	return lo.Map(vs, func(v pricing.Variation, _ int) pricing.Variation { return roundVariation(v) })
}
