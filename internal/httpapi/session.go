package httpapi

import (
	"net/url"
	"sync"

	"pricewatch-engine/internal/selection"
	"pricewatch-engine/internal/view"
)

// Session is the engine-side view-state store for one shell window: the
// models page state, the consultations page state, and the comparison
// selection with its URL mirror. The engine is single-user, so there is
// exactly one; the mutex serializes shell events into the one logical
// thread of control the pipeline assumes.
type Session struct {
	mu sync.Mutex

	models        view.State
	consultations view.State

	params  selection.URLValues
	compare *selection.Set
}

// NewSession hydrates the comparison selection from query exactly once.
// Unknown ids are dropped, the first three matches survive. knownIDs is
// the id set of the currently loaded catalog.
func NewSession(query url.Values, knownIDs map[string]bool) *Session {
	if query == nil {
		query = url.Values{}
	}

	cs := view.NewState()
	cs.SortField = "deadline"

	s := &Session{
		models:        view.NewState(),
		consultations: cs,
		params:        selection.URLValues{V: query},
	}
	s.compare = selection.New(s.params, knownIDs)
	return s
}

// ModelsState returns a snapshot safe to derive from.
func (s *Session) ModelsState() view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.models)
}

func (s *Session) ConsultationsState() view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.consultations)
}

// UpdateModels applies a mutation to the models page state.
func (s *Session) UpdateModels(fn func(*view.State)) view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.models)
	return cloneState(s.models)
}

func (s *Session) UpdateConsultations(fn func(*view.State)) view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.consultations)
	return cloneState(s.consultations)
}

// Compare runs fn with the selection set held under the session lock.
func (s *Session) Compare(fn func(*selection.Set) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.compare)
}

// CompareIDs returns the selection in insertion order.
func (s *Session) CompareIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compare.IDs()
}

// Query renders the mirrored URL query string, e.g. "compare=a%2Cb".
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params.Encode()
}

// Reset starts a fresh page session in place: default view state and a
// selection re-hydrated from query. This is the only point where the
// external URL is read back in.
func (s *Session) Reset(query url.Values, knownIDs map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query == nil {
		query = url.Values{}
	}

	cs := view.NewState()
	cs.SortField = "deadline"

	s.models = view.NewState()
	s.consultations = cs
	s.params = selection.URLValues{V: query}
	s.compare = selection.New(s.params, knownIDs)
}

func cloneState(st view.State) view.State {
	out := st
	if st.Providers != nil {
		out.Providers = make(map[string]bool, len(st.Providers))
		for k, v := range st.Providers {
			out.Providers[k] = v
		}
	}
	return out
}
