package selection

import (
	"errors"
	"strings"
)

// Limit is the comparison cap: at most 3 items side by side.
const Limit = 3

// Key is the external query-parameter key the selection mirrors into.
const Key = "compare"

// ErrLimit is returned when a 4th distinct id is toggled in. The set is
// left untouched; callers surface a warning instead of truncating.
var ErrLimit = errors.New("comparison limit reached")

// Store is the external key-value store the selection syncs to. In the
// product it is the page URL's query string.
type Store interface {
	Get(key string) string
	Set(key, value string)
	Del(key string)
}

// Set is an ordered id set of at most Limit entries, mirrored into a
// Store under Key on every change. Hydration from the store happens
// exactly once, at construction; external edits made afterwards are not
// re-observed (deliberate: re-reading the URL mid-session causes scroll
// jumps in the shell).
type Set struct {
	store Store
	ids   []string
}

// New hydrates from the store: split on comma, drop ids not present in
// known, keep the first Limit matches, then write the cleaned value
// back out.
func New(store Store, known map[string]bool) *Set {
	s := &Set{store: store}

	raw := store.Get(Key)
	if raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if !known[id] || s.has(id) {
				continue
			}
			s.ids = append(s.ids, id)
			if len(s.ids) == Limit {
				break
			}
		}
	}
	s.sync()
	return s
}

func (s *Set) has(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Has reports whether id is currently selected.
func (s *Set) Has(id string) bool { return s.has(id) }

// IDs returns the selection in insertion order.
func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Set) Len() int { return len(s.ids) }

// Toggle removes id when selected, appends it otherwise. Adding beyond
// Limit returns ErrLimit and changes nothing. added reports whether the
// call ended with id in the set.
func (s *Set) Toggle(id string) (added bool, err error) {
	if s.has(id) {
		s.Remove(id)
		return false, nil
	}
	if len(s.ids) >= Limit {
		return false, ErrLimit
	}
	s.ids = append(s.ids, id)
	s.sync()
	return true, nil
}

// Remove drops id if present.
func (s *Set) Remove(id string) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			s.sync()
			return
		}
	}
}

// Clear empties the selection and removes the external key.
func (s *Set) Clear() {
	if len(s.ids) == 0 {
		return
	}
	s.ids = nil
	s.sync()
}

// sync mirrors the selection outward: comma-joined ids, or the key
// removed entirely (not set to "") when the selection is empty.
func (s *Set) sync() {
	if len(s.ids) == 0 {
		s.store.Del(Key)
		return
	}
	s.store.Set(Key, strings.Join(s.ids, ","))
}
