package view

import (
	"fmt"
	"strings"

	"pricewatch-engine/internal/domain"
)

// PriceBounds are min/max prices over the currently visible set, used
// for "cheapest"/"priciest" badges. They must be recomputed on every
// view change; a price of 0 is a genuine value and may win cheapest.
type PriceBounds struct {
	MinInput  float64 `json:"minInput"`
	MaxInput  float64 `json:"maxInput"`
	MinOutput float64 `json:"minOutput"`
	MaxOutput float64 `json:"maxOutput"`
}

func BoundsOf(visible []domain.ProcessedModel) (PriceBounds, bool) {
	if len(visible) == 0 {
		return PriceBounds{}, false
	}
	b := PriceBounds{
		MinInput:  visible[0].InputPrice,
		MaxInput:  visible[0].InputPrice,
		MinOutput: visible[0].OutputPrice,
		MaxOutput: visible[0].OutputPrice,
	}
	for _, m := range visible[1:] {
		if m.InputPrice < b.MinInput {
			b.MinInput = m.InputPrice
		}
		if m.InputPrice > b.MaxInput {
			b.MaxInput = m.InputPrice
		}
		if m.OutputPrice < b.MinOutput {
			b.MinOutput = m.OutputPrice
		}
		if m.OutputPrice > b.MaxOutput {
			b.MaxOutput = m.OutputPrice
		}
	}
	return b, true
}

type Magnitude string

const (
	MagnitudeHigh      Magnitude = "high"
	MagnitudeMedium    Magnitude = "medium"
	MagnitudeLow       Magnitude = "low"
	MagnitudeUndefined Magnitude = "undefined"
)

// BudgetMagnitude buckets a budget for display emphasis.
func BudgetMagnitude(budget *float64) Magnitude {
	switch {
	case budget == nil:
		return MagnitudeUndefined
	case *budget >= HighValueThreshold:
		return MagnitudeHigh
	case *budget >= 1_000_000:
		return MagnitudeMedium
	default:
		return MagnitudeLow
	}
}

// FormatBudget renders a budget for cards and exports: "48M DH",
// "760K DH", "Budget à confirmer" when unknown.
func FormatBudget(budget *float64) string {
	if budget == nil {
		return "Budget à confirmer"
	}
	v := *budget
	switch {
	case v >= 1_000_000:
		s := strings.TrimSuffix(fmt.Sprintf("%.1f", v/1_000_000), ".0")
		return s + "M DH"
	case v >= 1_000:
		return fmt.Sprintf("%.0fK DH", v/1_000)
	default:
		return fmt.Sprintf("%.0f DH", v)
	}
}

// FormatPrice renders a per-1M-token price for tables and exports.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}
