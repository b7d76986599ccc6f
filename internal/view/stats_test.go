package view

import (
	"testing"

	"pricewatch-engine/internal/domain"
)

// Bounds come from the visible set only, and a 0 price is a genuine
// value that may win "cheapest".
func TestBoundsOf(t *testing.T) {
	visible := []domain.ProcessedModel{
		{ID: "free", InputPrice: 0, OutputPrice: 0},
		{ID: "mid", InputPrice: 2.5, OutputPrice: 10},
		{ID: "high", InputPrice: 5, OutputPrice: 15},
	}

	b, ok := BoundsOf(visible)
	if !ok {
		t.Fatal("ok=false for non-empty set")
	}
	if b.MinInput != 0 || b.MaxInput != 5 {
		t.Errorf("input bounds: got %v/%v want 0/5", b.MinInput, b.MaxInput)
	}
	if b.MinOutput != 0 || b.MaxOutput != 15 {
		t.Errorf("output bounds: got %v/%v want 0/15", b.MinOutput, b.MaxOutput)
	}
}

func TestBoundsOfEmpty(t *testing.T) {
	if _, ok := BoundsOf(nil); ok {
		t.Fatal("ok=true for empty set")
	}
}

func TestBoundsOfSingle(t *testing.T) {
	b, ok := BoundsOf([]domain.ProcessedModel{{InputPrice: 3, OutputPrice: 15}})
	if !ok || b.MinInput != 3 || b.MaxInput != 3 || b.MinOutput != 15 || b.MaxOutput != 15 {
		t.Fatalf("got %+v ok=%v", b, ok)
	}
}

func TestBudgetMagnitude(t *testing.T) {
	cases := []struct {
		name   string
		budget *float64
		want   Magnitude
	}{
		{name: "nil", budget: nil, want: MagnitudeUndefined},
		{name: "high at threshold", budget: budget(10_000_000), want: MagnitudeHigh},
		{name: "medium just under", budget: budget(9_999_999), want: MagnitudeMedium},
		{name: "medium at million", budget: budget(1_000_000), want: MagnitudeMedium},
		{name: "low", budget: budget(999_999), want: MagnitudeLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BudgetMagnitude(tc.budget); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestFormatBudget(t *testing.T) {
	cases := []struct {
		name   string
		budget *float64
		want   string
	}{
		{name: "millions trims .0", budget: budget(48_000_000), want: "48M DH"},
		{name: "millions keeps half", budget: budget(3_500_000), want: "3.5M DH"},
		{name: "thousands", budget: budget(760_000), want: "760K DH"},
		{name: "small", budget: budget(500), want: "500 DH"},
		{name: "unknown", budget: nil, want: "Budget à confirmer"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatBudget(tc.budget); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(2.5); got != "$2.50" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPrice(0); got != "$0.00" {
		t.Fatalf("got %q", got)
	}
}
