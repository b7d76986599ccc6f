package view

import (
	"sort"
	"strings"
	"time"

	"pricewatch-engine/internal/domain"
)

// UrgentWindow is how far ahead a deadline still counts as urgent.
const UrgentWindow = 72 * time.Hour

// IsUrgent reports whether a deadline falls strictly within the next
// 72 hours. Past-due deadlines are not urgent.
func IsUrgent(deadline, now time.Time) bool {
	d := deadline.Sub(now)
	return d > 0 && d < UrgentWindow
}

// DeriveConsultations runs the fixed pipeline: search filter, then tab
// filter, then stable sort. The montant_eleve tab re-sorts its subset
// descending by budget as part of the filter itself; that baked-in sort
// wins over the user's sort while the tab is active. Deliberate UX
// shortcut carried over from the dashboard, do not "fix".
func DeriveConsultations(items []domain.Consultation, st State, now time.Time) []domain.Consultation {
	out := searchConsultations(items, st.Query)

	switch st.Tab {
	case TabUrgents:
		out = filterInPlace(out, func(c domain.Consultation) bool {
			return IsUrgent(c.Deadline, now)
		})
	case TabNouveaux:
		out = filterInPlace(out, func(c domain.Consultation) bool {
			return c.Status == domain.StatusNouveau
		})
	case TabMontantEleve:
		out = filterInPlace(out, func(c domain.Consultation) bool {
			return c.Budget != nil && *c.Budget >= HighValueThreshold
		})
		sort.SliceStable(out, func(i, j int) bool {
			return budgetKey(out[i]) > budgetKey(out[j])
		})
		return out
	}

	sortConsultations(out, st.SortField, st.SortOrder)
	return out
}

func searchConsultations(items []domain.Consultation, query string) []domain.Consultation {
	out := make([]domain.Consultation, 0, len(items))
	if query == "" {
		return append(out, items...)
	}
	q := strings.ToLower(query)
	for _, c := range items {
		if strings.Contains(strings.ToLower(c.Title), q) ||
			strings.Contains(strings.ToLower(c.Organisme), q) ||
			strings.Contains(strings.ToLower(c.Reference), q) {
			out = append(out, c)
		}
	}
	return out
}

func filterInPlace(items []domain.Consultation, keep func(domain.Consultation) bool) []domain.Consultation {
	out := items[:0]
	for _, c := range items {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// budgetKey maps an unknown budget to -1 so it sorts before any known
// value in ascending order.
func budgetKey(c domain.Consultation) float64 {
	if c.Budget == nil {
		return -1
	}
	return *c.Budget
}

func sortConsultations(items []domain.Consultation, field string, order SortOrder) {
	sort.SliceStable(items, func(i, j int) bool {
		if order == Desc {
			return consultationLess(items[j], items[i], field)
		}
		return consultationLess(items[i], items[j], field)
	})
}

func consultationLess(a, b domain.Consultation, field string) bool {
	switch field {
	case "budget":
		return budgetKey(a) < budgetKey(b)
	case "deadline":
		return a.Deadline.Before(b.Deadline)
	case "createdAt":
		return a.CreatedAt.Before(b.CreatedAt)
	case "organisme":
		return strings.ToLower(a.Organisme) < strings.ToLower(b.Organisme)
	case "reference":
		return strings.ToLower(a.Reference) < strings.ToLower(b.Reference)
	case "status":
		return strings.ToLower(string(a.Status)) < strings.ToLower(string(b.Status))
	case "category":
		return strings.ToLower(a.Category) < strings.ToLower(b.Category)
	default: // title
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	}
}

// TabCounts computes the badge numbers for each tab over the
// search-filtered set only, so the counts always agree with what a tab
// click would show.
func TabCounts(items []domain.Consultation, query string, now time.Time) map[Tab]int {
	base := searchConsultations(items, query)

	counts := map[Tab]int{TabTous: len(base)}
	for _, c := range base {
		if IsUrgent(c.Deadline, now) {
			counts[TabUrgents]++
		}
		if c.Status == domain.StatusNouveau {
			counts[TabNouveaux]++
		}
		if c.Budget != nil && *c.Budget >= HighValueThreshold {
			counts[TabMontantEleve]++
		}
	}
	return counts
}
