package view

// Package view implements the derived-view pipeline: the fixed
// search -> tab/provider filter -> sort chain that turns a normalized
// catalog plus UI state into the list a shell should display. Every
// derivation is a fresh computation over value snapshots; nothing here
// mutates the source list.

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

type ViewMode string

const (
	ModeCards ViewMode = "cards"
	ModeTable ViewMode = "table"
)

type Tab string

const (
	TabTous         Tab = "tous"
	TabUrgents      Tab = "urgents"
	TabNouveaux     Tab = "nouveaux"
	TabMontantEleve Tab = "montant_eleve"
)

// HighValueThreshold is the montant_eleve cutoff, inclusive.
const HighValueThreshold = 10_000_000

// State is the per-session UI state. All mutations go through the named
// setters; there are no cross-field invariants, the derivation always
// recomputes from scratch.
type State struct {
	Query     string          `json:"query"`
	Tab       Tab             `json:"tab"`
	Providers map[string]bool `json:"providers,omitempty"`
	SortField string          `json:"sortField"`
	SortOrder SortOrder       `json:"sortOrder"`
	Mode      ViewMode        `json:"mode"`
}

func NewState() State {
	return State{
		Tab:       TabTous,
		SortField: "name",
		SortOrder: Asc,
		Mode:      ModeCards,
	}
}

func (s *State) SetQuery(q string) { s.Query = q }

func (s *State) SetTab(t Tab) { s.Tab = t }

func (s *State) SetMode(m ViewMode) { s.Mode = m }

// SortBy toggles the order when the field is already active and resets
// to ascending when switching fields, matching the table-header UX.
func (s *State) SortBy(field string) {
	if s.SortField == field {
		if s.SortOrder == Asc {
			s.SortOrder = Desc
		} else {
			s.SortOrder = Asc
		}
		return
	}
	s.SortField = field
	s.SortOrder = Asc
}

// ToggleProvider adds or removes a provider from the filter set. An
// empty set means "no provider filtering".
func (s *State) ToggleProvider(provider string) {
	if s.Providers == nil {
		s.Providers = make(map[string]bool)
	}
	if s.Providers[provider] {
		delete(s.Providers, provider)
		return
	}
	s.Providers[provider] = true
}

func (s *State) ClearProviders() { s.Providers = nil }

func ValidTab(t Tab) bool {
	switch t {
	case TabTous, TabUrgents, TabNouveaux, TabMontantEleve:
		return true
	}
	return false
}

func ValidMode(m ViewMode) bool {
	return m == ModeCards || m == ModeTable
}
