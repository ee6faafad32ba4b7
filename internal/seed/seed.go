package seed

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/printstock/internal/db"
	"github.com/Simplici0/printstock/internal/model"
)

const (
	defaultFilamentName  = "PLA Genérico"
	defaultFilamentColor = "Natural"
	defaultFilamentCost  = 120.00
)

// DefaultPreset is written once when the database has no preset yet.
var DefaultPreset = model.Preset{
	PrinterPowerWatts:  150,
	EnergyCostPerKwh:   0.80,
	FailureRatePercent: 10,
	Markup:             2,
}

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, database *sql.DB, cfg Config) (Stats, error) {
	stats := Stats{}

	err := db.WithTx(ctx, database, func(tx *sql.Tx) error {
		if err := seedAdmin(ctx, tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
			return err
		}
		if err := ensureFilament(ctx, tx, &stats); err != nil {
			return err
		}
		return ensurePreset(ctx, tx, &stats)
	})
	if err != nil {
		return Stats{}, fmt.Errorf("seed: %w", err)
	}

	return stats, nil
}

func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, string(hash)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureFilament(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM filaments LIMIT 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check filament catalog: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO filaments (name, color, cost_per_kg, active)
		VALUES (?, ?, ?, TRUE)
	`, defaultFilamentName, defaultFilamentColor, defaultFilamentCost); err != nil {
		return fmt.Errorf("insert default filament: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensurePreset(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM default_preset WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check default preset existence: %w", err)
	}
	if exists {
		return nil
	}

	p := DefaultPreset
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO default_preset (
			id,
			printer_power_watts,
			energy_cost_per_kwh,
			monthly_fixed_cost,
			units_per_month,
			printer_purchase_value,
			printer_lifetime_hours,
			failure_rate_percent,
			accessories_cost,
			markup,
			tax_percent,
			payment_fee_percent
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.PrinterPowerWatts, p.EnergyCostPerKwh, p.MonthlyFixedCost, p.UnitsPerMonth,
		p.PrinterPurchaseValue, p.PrinterLifetimeHours, p.FailureRatePercent,
		p.AccessoriesCost, p.Markup, p.TaxPercent, p.PaymentFeePercent,
	); err != nil {
		return fmt.Errorf("insert default preset singleton: %w", err)
	}
	stats.Inserts++
	return nil
}
