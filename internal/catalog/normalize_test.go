package catalog

import (
	"testing"

	"pricewatch-engine/internal/domain"
)

func TestExtractProvider(t *testing.T) {
	cases := []struct {
		name string
		id   string
		want string
	}{
		{name: "simple", id: "mistralai/mistral-7b-instruct", want: "Mistralai"},
		{name: "hyphenated", id: "x-ai/grok-2", want: "X Ai"},
		{name: "multi word", id: "meta-llama/llama-3-70b", want: "Meta Llama"},
		{name: "no slash", id: "gpt-4", want: "Unknown"},
		{name: "empty", id: "", want: "Unknown"},
		{name: "extra slashes", id: "openai/gpt-4/turbo", want: "Openai"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractProvider(tc.id); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestPricePerMillion(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "typical", input: "0.000003", want: 3},
		{name: "zero is genuine", input: "0", want: 0},
		{name: "sub cent", input: "0.00000015", want: 0.15},
		{name: "unparsable degrades to zero", input: "n/a", want: 0},
		{name: "empty degrades to zero", input: "", want: 0},
		{name: "whitespace", input: " 0.000001 ", want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PricePerMillion(tc.input); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

// Float multiplication would give 2.9999999... for some per-token
// strings; the decimal path must not.
func TestPricePerMillionExact(t *testing.T) {
	if got := PricePerMillion("0.0000000001"); got != 0.0001 {
		t.Fatalf("got %v want 0.0001", got)
	}
}

func TestNormalizeAll(t *testing.T) {
	m := domain.Model{ID: "anthropic/claude-test", Name: "Claude Test", ContextLength: 200000}
	m.Pricing.Prompt = "0.000003"
	m.Pricing.Completion = "0.000015"
	m.Architecture.Modality = "text->text"

	raw := []domain.Model{m, {ID: "standalone", Name: "No Provider"}}

	got := NormalizeAll(raw)
	if len(got) != 2 {
		t.Fatalf("len=%d", len(got))
	}
	first := got[0]
	if first.Provider != "Anthropic" {
		t.Errorf("provider: got %q", first.Provider)
	}
	if first.InputPrice != 3 || first.OutputPrice != 15 {
		t.Errorf("prices: got %v/%v want 3/15", first.InputPrice, first.OutputPrice)
	}
	if first.ContextWindow != 200000 || first.Modality != "text->text" {
		t.Errorf("context/modality: got %d/%q", first.ContextWindow, first.Modality)
	}
	if got[1].Provider != "Unknown" {
		t.Errorf("missing provider segment: got %q want Unknown", got[1].Provider)
	}
	// Source order must survive normalization.
	if got[0].ID != "anthropic/claude-test" || got[1].ID != "standalone" {
		t.Errorf("order changed: %q, %q", got[0].ID, got[1].ID)
	}
}
