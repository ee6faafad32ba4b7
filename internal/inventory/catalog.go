package inventory

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/Simplici0/printstock/internal/logger"
	"github.com/Simplici0/printstock/internal/model"
	"github.com/Simplici0/printstock/internal/pricing"
)

func (s *Service) ListFilaments(ctx context.Context, activeOnly bool) ([]model.Filament, error) {
	return s.store.ListFilaments(ctx, activeOnly)
}

// FilamentInput is a submitted catalog entry. A nil Active means active on
// create and unchanged on update.
type FilamentInput struct {
	Name      string
	Color     string
	CostPerKg float64
	Active    *bool
}

func (in FilamentInput) apply(f model.Filament) model.Filament {
	f.Name = strings.TrimSpace(in.Name)
	f.Color = strings.TrimSpace(in.Color)
	f.CostPerKg = in.CostPerKg
	f.Active = lo.FromPtrOr(in.Active, f.Active)
	return f
}

func (s *Service) CreateFilament(ctx context.Context, in FilamentInput) (model.Filament, error) {
	f := in.apply(model.Filament{Active: true})
	if err := validateStruct(f); err != nil {
		return model.Filament{}, err
	}

	id, err := s.store.CreateFilament(ctx, f)
	if err != nil {
		return model.Filament{}, err
	}
	logger.Info(ctx, "filament created", logger.Int64("filament_id", id), logger.String("name", f.Name))

	created, err := s.store.GetFilament(ctx, id)
	if err != nil {
		return model.Filament{}, translate(err, "filament")
	}
	return created, nil
}

// UpdateFilament changes a catalog entry. Items and variations keep the cost
// per kg they were saved with until they are edited again.
func (s *Service) UpdateFilament(ctx context.Context, id int64, in FilamentInput) (model.Filament, error) {
	current, err := s.store.GetFilament(ctx, id)
	if err != nil {
		return model.Filament{}, translate(err, "filament")
	}

	f := in.apply(current)
	if err := validateStruct(f); err != nil {
		return model.Filament{}, err
	}

	if err := s.store.UpdateFilament(ctx, f); err != nil {
		return model.Filament{}, translate(err, "filament")
	}

	updated, err := s.store.GetFilament(ctx, id)
	if err != nil {
		return model.Filament{}, translate(err, "filament")
	}
	return updated, nil
}

func (s *Service) DeleteFilament(ctx context.Context, id int64) error {
	if err := s.store.DeleteFilament(ctx, id); err != nil {
		return translate(err, "filament")
	}
	logger.Info(ctx, "filament deleted", logger.Int64("filament_id", id))
	return nil
}

func (s *Service) Preset(ctx context.Context) (model.Preset, error) {
	p, err := s.store.GetPreset(ctx)
	if err != nil {
		return model.Preset{}, translate(err, "preset")
	}
	return p, nil
}

func (s *Service) UpdatePreset(ctx context.Context, p model.Preset) (model.Preset, error) {
	if err := validateStruct(p); err != nil {
		return model.Preset{}, err
	}
	if err := s.store.SavePreset(ctx, p); err != nil {
		return model.Preset{}, err
	}
	return s.Preset(ctx)
}

// FilamentMatrix prices a print of the given weight and time with every
// active filament, using the item's other parameters. The table is empty when
// both are zero.
func (s *Service) FilamentMatrix(ctx context.Context, itemID string, weightGrams, printMinutes float64) ([]pricing.Row, error) {
	it, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return s.matrix(ctx, it, pricing.WeightAndTime{
		WeightGrams:  nonNegative(weightGrams),
		PrintMinutes: nonNegative(printMinutes),
	})
}

// ItemMatrix is FilamentMatrix for the item's own weight and print time.
func (s *Service) ItemMatrix(ctx context.Context, itemID string) ([]pricing.Row, error) {
	it, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return s.matrix(ctx, it, pricing.WeightAndTime{
		WeightGrams:  it.Cost.WeightGrams,
		PrintMinutes: it.Cost.PrintMinutes,
	})
}

func (s *Service) matrix(ctx context.Context, it model.Item, wt pricing.WeightAndTime) ([]pricing.Row, error) {
	filaments, err := s.store.ListFilaments(ctx, true)
	if err != nil {
		return nil, err
	}

	catalog := lo.Map(filaments, func(f model.Filament, _ int) pricing.Filament { return f.Pricing() })
	return pricing.BuildMatrix(catalog, wt, it.Shared()), nil
}
