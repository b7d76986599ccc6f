package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"pricewatch-engine/internal/domain"
)

const unknownProvider = "Unknown"

var perMillion = decimal.NewFromInt(1_000_000)

// ExtractProvider derives a display name from a slash-delimited model id:
// "mistralai/mistral-7b" -> "Mistralai", "x-ai/grok-2" -> "X Ai".
// Ids without a provider segment map to "Unknown".
func ExtractProvider(modelID string) string {
	parts := strings.Split(modelID, "/")
	if len(parts) < 2 {
		return unknownProvider
	}

	words := strings.Split(parts[0], "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// PricePerMillion converts a per-token price string to a per-1M-token
// price. Unparsable input degrades to 0 instead of failing; callers must
// never see a NaN.
func PricePerMillion(pricePerToken string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(pricePerToken))
	if err != nil {
		return 0
	}
	f, _ := d.Mul(perMillion).Float64()
	return f
}

// Normalize maps one raw model to its display-ready form. Pure, total,
// one record at a time.
func Normalize(m domain.Model) domain.ProcessedModel {
	return domain.ProcessedModel{
		ID:            m.ID,
		Name:          m.Name,
		Provider:      ExtractProvider(m.ID),
		InputPrice:    PricePerMillion(m.Pricing.Prompt),
		OutputPrice:   PricePerMillion(m.Pricing.Completion),
		ContextWindow: m.ContextLength,
		Modality:      m.Architecture.Modality,
	}
}

// NormalizeAll preserves source order.
func NormalizeAll(models []domain.Model) []domain.ProcessedModel {
	out := make([]domain.ProcessedModel, 0, len(models))
	for _, m := range models {
		out = append(out, Normalize(m))
	}
	return out
}
