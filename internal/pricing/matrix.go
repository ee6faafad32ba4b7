package pricing

// Filament is a catalog entry.
type Filament struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	CostPerKg float64 `json:"cost_per_kg"`
}

// WeightAndTime fixes the print that every filament is compared on.
type WeightAndTime struct {
	WeightGrams  float64
	PrintMinutes float64
}

// Row is one line of the filament comparison table.
type Row struct {
	Filament  Filament      `json:"filament"`
	Breakdown CostBreakdown `json:"breakdown"`
	Price     PriceResult   `json:"price"`
}

// BuildMatrix prices the same print with every filament of the catalog, in
// catalog order. It returns an empty table when weight and time are both zero.
func BuildMatrix(filaments []Filament, wt WeightAndTime, shared SharedParameters) []Row {
	if wt.WeightGrams == 0 && wt.PrintMinutes == 0 {
		return []Row{}
	}

	rows := make([]Row, 0, len(filaments))
	for _, f := range filaments {
		res := Calculate(shared.CostFor(f.CostPerKg, wt.WeightGrams, wt.PrintMinutes), shared.Pricing)
		rows = append(rows, Row{
			Filament:  f,
			Breakdown: res.Breakdown,
			Price:     res.Price,
		})
	}
	return rows
}
