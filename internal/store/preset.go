package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Simplici0/printstock/internal/model"
)

const presetID = 1

// GetPreset reads the default preset singleton.
func (s *Store) GetPreset(ctx context.Context) (model.Preset, error) {
	row, err := queryRow(ctx, s.db, s.sb.
		Select(
			"printer_power_watts", "energy_cost_per_kwh", "monthly_fixed_cost", "units_per_month",
			"printer_purchase_value", "printer_lifetime_hours", "failure_rate_percent",
			"accessories_cost", "markup", "tax_percent", "payment_fee_percent",
		).
		From("default_preset").
		Where(sq.Eq{"id": presetID}))
	if err != nil {
		return model.Preset{}, err
	}

	var p model.Preset
	err = row.Scan(
		&p.PrinterPowerWatts,
		&p.EnergyCostPerKwh,
		&p.MonthlyFixedCost,
		&p.UnitsPerMonth,
		&p.PrinterPurchaseValue,
		&p.PrinterLifetimeHours,
		&p.FailureRatePercent,
		&p.AccessoriesCost,
		&p.Markup,
		&p.TaxPercent,
		&p.PaymentFeePercent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Preset{}, ErrNotFound
		}
		return model.Preset{}, fmt.Errorf("query default_preset: %w", err)
	}
	return p, nil
}

// SavePreset inserts or replaces the default preset singleton.
func (s *Store) SavePreset(ctx context.Context, p model.Preset) error {
	_, err := exec(ctx, s.db, s.sb.
		Insert("default_preset").
		Columns(
			"id", "printer_power_watts", "energy_cost_per_kwh", "monthly_fixed_cost", "units_per_month",
			"printer_purchase_value", "printer_lifetime_hours", "failure_rate_percent",
			"accessories_cost", "markup", "tax_percent", "payment_fee_percent",
		).
		Values(
			presetID, p.PrinterPowerWatts, p.EnergyCostPerKwh, p.MonthlyFixedCost, p.UnitsPerMonth,
			p.PrinterPurchaseValue, p.PrinterLifetimeHours, p.FailureRatePercent,
			p.AccessoriesCost, p.Markup, p.TaxPercent, p.PaymentFeePercent,
		).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			printer_power_watts = excluded.printer_power_watts,
			energy_cost_per_kwh = excluded.energy_cost_per_kwh,
			monthly_fixed_cost = excluded.monthly_fixed_cost,
			units_per_month = excluded.units_per_month,
			printer_purchase_value = excluded.printer_purchase_value,
			printer_lifetime_hours = excluded.printer_lifetime_hours,
			failure_rate_percent = excluded.failure_rate_percent,
			accessories_cost = excluded.accessories_cost,
			markup = excluded.markup,
			tax_percent = excluded.tax_percent,
			payment_fee_percent = excluded.payment_fee_percent,
			updated_at = CURRENT_TIMESTAMP`))
	if err != nil {
		return fmt.Errorf("save default_preset: %w", err)
	}
	return nil
}
