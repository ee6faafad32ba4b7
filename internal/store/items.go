package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Simplici0/printstock/internal/db"
	"github.com/Simplici0/printstock/internal/model"
	"github.com/Simplici0/printstock/internal/pricing"
)

var itemColumns = []string{
	"id", "name", "filament_id",
	"filament_cost_per_kg", "weight_grams", "print_minutes",
	"printer_power_watts", "energy_cost_per_kwh",
	"monthly_fixed_cost", "units_per_month",
	"printer_purchase_value", "printer_lifetime_hours",
	"accessories_cost", "failure_rate_percent",
	"quantity", "markup", "pricing_mode",
	"tax_percent", "payment_fee_percent", "include_fees_in_price", "free_shipping_program",
	"unit_cost", "material_cost", "energy_cost", "consumer_price", "net_profit",
	"created_at", "updated_at",
}

func scanItem(row scanner) (model.Item, error) {
	var (
		it         model.Item
		filamentID sql.NullInt64
		mode       string
	)
	err := row.Scan(
		&it.ID, &it.Name, &filamentID,
		&it.Cost.FilamentCostPerKg, &it.Cost.WeightGrams, &it.Cost.PrintMinutes,
		&it.Cost.PrinterPowerWatts, &it.Cost.EnergyCostPerKwh,
		&it.Cost.MonthlyFixedCost, &it.Cost.UnitsPerMonth,
		&it.Cost.PrinterPurchaseValue, &it.Cost.PrinterLifetimeHours,
		&it.Cost.AccessoriesCost, &it.Cost.FailureRatePercent,
		&it.Pricing.Quantity, &it.Pricing.Markup, &mode,
		&it.Pricing.TaxPercent, &it.Pricing.PaymentFeePercent, &it.Pricing.IncludeFeesInPrice, &it.Pricing.FreeShippingProgram,
		&it.UnitCost, &it.MaterialCost, &it.EnergyCost, &it.ConsumerPrice, &it.NetProfit,
		sqlTime{&it.CreatedAt}, sqlTime{&it.UpdatedAt},
	)
	it.FilamentID = idPtr(filamentID)
	it.Pricing.Mode = pricing.ParseMode(mode)
	return it, err
}

func itemValues(it model.Item) map[string]any {
	return map[string]any{
		"name":                   it.Name,
		"filament_id":            nullableID(it.FilamentID),
		"filament_cost_per_kg":   it.Cost.FilamentCostPerKg,
		"weight_grams":           it.Cost.WeightGrams,
		"print_minutes":          it.Cost.PrintMinutes,
		"printer_power_watts":    it.Cost.PrinterPowerWatts,
		"energy_cost_per_kwh":    it.Cost.EnergyCostPerKwh,
		"monthly_fixed_cost":     it.Cost.MonthlyFixedCost,
		"units_per_month":        it.Cost.UnitsPerMonth,
		"printer_purchase_value": it.Cost.PrinterPurchaseValue,
		"printer_lifetime_hours": it.Cost.PrinterLifetimeHours,
		"accessories_cost":       it.Cost.AccessoriesCost,
		"failure_rate_percent":   it.Cost.FailureRatePercent,
		"quantity":               it.Pricing.Quantity,
		"markup":                 it.Pricing.Markup,
		"pricing_mode":           string(it.Pricing.Mode),
		"tax_percent":            it.Pricing.TaxPercent,
		"payment_fee_percent":    it.Pricing.PaymentFeePercent,
		"include_fees_in_price":  it.Pricing.IncludeFeesInPrice,
		"free_shipping_program":  it.Pricing.FreeShippingProgram,
		"unit_cost":              pricing.Round2(it.UnitCost),
		"material_cost":          pricing.Round2(it.MaterialCost),
		"energy_cost":            pricing.Round2(it.EnergyCost),
		"consumer_price":         pricing.Round2(it.ConsumerPrice),
		"net_profit":             pricing.Round2(it.NetProfit),
	}
}

// CreateItem inserts an item; the caller assigns its id.
func (s *Store) CreateItem(ctx context.Context, it model.Item) error {
	values := itemValues(it)
	values["id"] = it.ID

	if _, err := exec(ctx, s.db, s.sb.Insert("items").SetMap(values)); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (s *Store) GetItem(ctx context.Context, id string) (model.Item, error) {
	row, err := queryRow(ctx, s.db, s.sb.Select(itemColumns...).From("items").Where(sq.Eq{"id": id}))
	if err != nil {
		return model.Item{}, err
	}

	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, ErrNotFound
		}
		return model.Item{}, fmt.Errorf("query item: %w", err)
	}
	return it, nil
}

// ListItems returns items newest first.
func (s *Store) ListItems(ctx context.Context) ([]model.Item, error) {
	rows, err := query(ctx, s.db, s.sb.Select(itemColumns...).From("items").OrderBy("datetime(created_at) DESC", "name ASC"))
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	res, err := exec(ctx, s.db, s.sb.Delete("items").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return requireAffected(res)
}

// SaveItemWithVariations updates the item row and replaces its variations in a
// single transaction, so readers never see outputs from two different inputs.
func (s *Store) SaveItemWithVariations(ctx context.Context, it model.Item, variations []pricing.Variation) error {
	return db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := exec(ctx, tx, s.sb.
			Update("items").
			SetMap(itemValues(it)).
			Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
			Where(sq.Eq{"id": it.ID}))
		if err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}

		return replaceVariations(ctx, tx, s.sb, it.ID, variations)
	})
}

// ReplaceVariations swaps the stored variations of an item.
func (s *Store) ReplaceVariations(ctx context.Context, itemID string, variations []pricing.Variation) error {
	return db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return replaceVariations(ctx, tx, s.sb, itemID, variations)
	})
}

func replaceVariations(ctx context.Context, tx dbtx, sb sq.StatementBuilderType, itemID string, variations []pricing.Variation) error {
	if _, err := exec(ctx, tx, sb.Delete("variations").Where(sq.Eq{"item_id": itemID})); err != nil {
		return fmt.Errorf("delete variations: %w", err)
	}
	if len(variations) == 0 {
		return nil
	}

	ins := sb.Insert("variations").Columns(
		"id", "item_id", "name", "filament_id",
		"filament_cost_per_kg", "weight_grams", "print_minutes",
		"calculated_cost", "calculated_price", "position",
	)
	for i, v := range variations {
		ins = ins.Values(
			v.ID, itemID, v.Name, nullableID(v.FilamentID),
			v.FilamentCostPerKg, v.WeightGrams, v.PrintMinutes,
			pricing.Round2(v.CalculatedCost), pricing.Round2(v.CalculatedPrice), i,
		)
	}
	if _, err := exec(ctx, tx, ins); err != nil {
		return fmt.Errorf("insert variations: %w", err)
	}
	return nil
}

// ListVariations returns the stored variations of an item in display order.
func (s *Store) ListVariations(ctx context.Context, itemID string) ([]pricing.Variation, error) {
	rows, err := query(ctx, s.db, s.sb.
		Select("id", "name", "filament_id", "filament_cost_per_kg", "weight_grams", "print_minutes", "calculated_cost", "calculated_price").
		From("variations").
		Where(sq.Eq{"item_id": itemID}).
		OrderBy("position ASC"))
	if err != nil {
		return nil, fmt.Errorf("query variations: %w", err)
	}
	defer rows.Close()

	variations := make([]pricing.Variation, 0)
	for rows.Next() {
		var (
			v          pricing.Variation
			filamentID sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.Name, &filamentID, &v.FilamentCostPerKg, &v.WeightGrams, &v.PrintMinutes, &v.CalculatedCost, &v.CalculatedPrice); err != nil {
			return nil, fmt.Errorf("scan variation: %w", err)
		}
		v.FilamentID = idPtr(filamentID)
		variations = append(variations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variations: %w", err)
	}
	return variations, nil
}
