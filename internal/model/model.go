package model

import (
	"time"

	"github.com/Simplici0/printstock/internal/pricing"
)

// Filament is a catalog entry as stored.
type Filament struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,max=120"`
	Color     string    `json:"color" validate:"max=60"`
	CostPerKg float64   `json:"cost_per_kg" validate:"gte=0"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pricing returns the engine view of the filament.
func (f Filament) Pricing() pricing.Filament {
	return pricing.Filament{ID: f.ID, Name: f.Name, Color: f.Color, CostPerKg: f.CostPerKg}
}

// Preset is the singleton supplying initial values for new items.
type Preset struct {
	PrinterPowerWatts    float64 `json:"printer_power_watts" validate:"gte=0"`
	EnergyCostPerKwh     float64 `json:"energy_cost_per_kwh" validate:"gte=0"`
	MonthlyFixedCost     float64 `json:"monthly_fixed_cost" validate:"gte=0"`
	UnitsPerMonth        float64 `json:"units_per_month" validate:"gte=0"`
	PrinterPurchaseValue float64 `json:"printer_purchase_value" validate:"gte=0"`
	PrinterLifetimeHours float64 `json:"printer_lifetime_hours" validate:"gte=0"`
	FailureRatePercent   float64 `json:"failure_rate_percent" validate:"gte=0,lte=100"`
	AccessoriesCost      float64 `json:"accessories_cost" validate:"gte=0"`
	Markup               float64 `json:"markup" validate:"gte=0"`
	TaxPercent           float64 `json:"tax_percent" validate:"gte=0,lte=100"`
	PaymentFeePercent    float64 `json:"payment_fee_percent" validate:"gte=0,lte=100"`
}

// Item is a catalog item with its pricing inputs and the outputs saved with it.
type Item struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	FilamentID *int64                    `json:"filament_id,omitempty"`
	Cost       pricing.CostParameters    `json:"cost"`
	Pricing    pricing.PricingParameters `json:"pricing"`

	UnitCost      float64 `json:"unit_cost"`
	MaterialCost  float64 `json:"material_cost"`
	EnergyCost    float64 `json:"energy_cost"`
	ConsumerPrice float64 `json:"consumer_price"`
	NetProfit     float64 `json:"net_profit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Shared returns the parameters the item's variations inherit.
func (i Item) Shared() pricing.SharedParameters {
	return pricing.SharedParameters{Cost: i.Cost, Pricing: i.Pricing}
}

// ApplyResult copies the saved outputs from res, rounded to two decimals.
func (i *Item) ApplyResult(res pricing.Result) {
	r := res.Rounded()
	i.UnitCost = r.Breakdown.UnitCost
	i.MaterialCost = r.Breakdown.Material
	i.EnergyCost = r.Breakdown.Energy
	i.ConsumerPrice = r.Price.ConsumerPrice
	i.NetProfit = r.Price.NetProfit
}
