package view

import (
	"sort"
	"strings"

	"pricewatch-engine/internal/domain"
)

// DeriveModels runs the fixed pipeline over the models catalog:
// search filter, then provider-set filter, then stable sort. The stage
// order is load-bearing: a query hit on a provider name does not rescue
// an item the provider filter excludes.
func DeriveModels(items []domain.ProcessedModel, st State) []domain.ProcessedModel {
	out := searchModels(items, st.Query)
	out = filterProviders(out, st.Providers)
	sortModels(out, st.SortField, st.SortOrder)
	return out
}

func searchModels(items []domain.ProcessedModel, query string) []domain.ProcessedModel {
	out := make([]domain.ProcessedModel, 0, len(items))
	if query == "" {
		return append(out, items...)
	}
	q := strings.ToLower(query)
	for _, m := range items {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Provider), q) ||
			strings.Contains(strings.ToLower(m.ID), q) {
			out = append(out, m)
		}
	}
	return out
}

func filterProviders(items []domain.ProcessedModel, providers map[string]bool) []domain.ProcessedModel {
	if len(providers) == 0 {
		return items
	}
	out := items[:0]
	for _, m := range items {
		if providers[m.Provider] {
			out = append(out, m)
		}
	}
	return out
}

func sortModels(items []domain.ProcessedModel, field string, order SortOrder) {
	sort.SliceStable(items, func(i, j int) bool {
		less := modelLess(items[i], items[j], field)
		if order == Desc {
			return modelLess(items[j], items[i], field)
		}
		return less
	})
}

func modelLess(a, b domain.ProcessedModel, field string) bool {
	switch field {
	case "inputPrice":
		return a.InputPrice < b.InputPrice
	case "outputPrice":
		return a.OutputPrice < b.OutputPrice
	case "contextWindow":
		return a.ContextWindow < b.ContextWindow
	case "provider":
		return strings.ToLower(a.Provider) < strings.ToLower(b.Provider)
	case "modality":
		return strings.ToLower(a.Modality) < strings.ToLower(b.Modality)
	case "id":
		return strings.ToLower(a.ID) < strings.ToLower(b.ID)
	default: // name
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}

type ProviderCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProviderCounts lists distinct providers by descending model count.
// First-seen order breaks ties so the output is deterministic.
func ProviderCounts(items []domain.ProcessedModel) []ProviderCount {
	idx := make(map[string]int)
	var out []ProviderCount
	for _, m := range items {
		if i, ok := idx[m.Provider]; ok {
			out[i].Count++
			continue
		}
		idx[m.Provider] = len(out)
		out = append(out, ProviderCount{Name: m.Provider, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
