package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/Simplici0/printstock/internal/form"
	"github.com/Simplici0/printstock/internal/inventory"
	"github.com/Simplici0/printstock/internal/model"
	"github.com/Simplici0/printstock/internal/pricing"
)

// optionalNumber is nil for a blank field, so "not given" and "0" differ.
func optionalNumber(raw string) *float64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return lo.ToPtr(form.Number(raw))
}

func parseItemForm(r *http.Request) inventory.ItemInput {
	v := r.FormValue
	return inventory.ItemInput{
		Name:              strings.TrimSpace(v("name")),
		FilamentID:        form.OptionalID(v("filament_id")),
		FilamentCostPerKg: optionalNumber(v("filament_cost_per_kg")),
		Cost: pricing.CostParameters{
			WeightGrams:          form.Number(v("weight_grams")),
			PrintMinutes:         form.Number(v("print_minutes")),
			FilamentCostPerKg:    form.Number(v("filament_cost_per_kg")),
			PrinterPowerWatts:    form.Number(v("printer_power_watts")),
			EnergyCostPerKwh:     form.Number(v("energy_cost_per_kwh")),
			MonthlyFixedCost:     form.Number(v("monthly_fixed_cost")),
			UnitsPerMonth:        form.Number(v("units_per_month")),
			PrinterPurchaseValue: form.Number(v("printer_purchase_value")),
			PrinterLifetimeHours: form.Number(v("printer_lifetime_hours")),
			AccessoriesCost:      form.Number(v("accessories_cost")),
			FailureRatePercent:   form.Number(v("failure_rate_percent")),
		},
		Pricing: pricing.PricingParameters{
			Quantity:            form.Quantity(v("quantity")),
			Markup:              form.Number(v("markup")),
			Mode:                pricing.ParseMode(strings.TrimSpace(v("mode"))),
			TaxPercent:          form.Number(v("tax_percent")),
			PaymentFeePercent:   form.Number(v("payment_fee_percent")),
			IncludeFeesInPrice:  form.Bool(v("include_fees_in_price")),
			FreeShippingProgram: form.Bool(v("free_shipping_program")),
		},
	}
}

func parseVariationForm(r *http.Request) inventory.VariationInput {
	v := r.FormValue
	return inventory.VariationInput{
		ID:                strings.TrimSpace(v("id")),
		Name:              strings.TrimSpace(v("name")),
		FilamentID:        form.OptionalID(v("filament_id")),
		FilamentCostPerKg: optionalNumber(v("filament_cost_per_kg")),
		WeightGrams:       form.Number(v("weight_grams")),
		PrintMinutes:      form.Number(v("print_minutes")),
	}
}

// parseVariationsForm reads the repeated variation_* fields; the n-th value of
// every field belongs to the n-th variation. Names drive the count.
func parseVariationsForm(r *http.Request) []inventory.VariationInput {
	names := r.Form["variation_name"]
	at := func(field string, i int) string {
		values := r.Form[field]
		if i < len(values) {
			return values[i]
		}
		return ""
	}

	return lo.Times(len(names), func(i int) inventory.VariationInput {
		return inventory.VariationInput{
			ID:                strings.TrimSpace(at("variation_id", i)),
			Name:              strings.TrimSpace(names[i]),
			FilamentID:        form.OptionalID(at("variation_filament_id", i)),
			FilamentCostPerKg: optionalNumber(at("variation_filament_cost_per_kg", i)),
			WeightGrams:       form.Number(at("variation_weight_grams", i)),
			PrintMinutes:      form.Number(at("variation_print_minutes", i)),
		}
	})
}

// optionalBool is nil when the field was not submitted at all.
func optionalBool(r *http.Request, field string) *bool {
	if !r.Form.Has(field) {
		return nil
	}
	return lo.ToPtr(form.Bool(r.Form.Get(field)))
}

func parseFilamentForm(r *http.Request) inventory.FilamentInput {
	return inventory.FilamentInput{
		Name:      strings.TrimSpace(r.FormValue("name")),
		Color:     strings.TrimSpace(r.FormValue("color")),
		CostPerKg: parseSignedNumber(r.FormValue("cost_per_kg")),
		Active:    optionalBool(r, "active"),
	}
}

func parsePresetForm(r *http.Request) model.Preset {
	v := r.FormValue
	return model.Preset{
		PrinterPowerWatts:    parseSignedNumber(v("printer_power_watts")),
		EnergyCostPerKwh:     parseSignedNumber(v("energy_cost_per_kwh")),
		MonthlyFixedCost:     parseSignedNumber(v("monthly_fixed_cost")),
		UnitsPerMonth:        parseSignedNumber(v("units_per_month")),
		PrinterPurchaseValue: parseSignedNumber(v("printer_purchase_value")),
		PrinterLifetimeHours: parseSignedNumber(v("printer_lifetime_hours")),
		FailureRatePercent:   parseSignedNumber(v("failure_rate_percent")),
		AccessoriesCost:      parseSignedNumber(v("accessories_cost")),
		Markup:               parseSignedNumber(v("markup")),
		TaxPercent:           parseSignedNumber(v("tax_percent")),
		PaymentFeePercent:    parseSignedNumber(v("payment_fee_percent")),
	}
}

// parseSignedNumber keeps the sign so that catalog and preset writes are
// rejected by validation instead of silently clamped.
func parseSignedNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "-") {
		return -form.Number(strings.TrimPrefix(s, "-"))
	}
	return form.Number(s)
}

func filamentIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
