package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pricewatch-engine/internal/events"
	"pricewatch-engine/internal/refresh"
	"pricewatch-engine/internal/selection"
)

type CompareHandler struct {
	Session   *Session
	Hub       *events.Hub
	Refresher *refresh.Refresher
}

type compareResponse struct {
	Compare []string `json:"compare"`
	Query   string   `json:"query"`
}

func (h CompareHandler) state() compareResponse {
	return compareResponse{
		Compare: h.Session.CompareIDs(),
		Query:   h.Session.Query(),
	}
}

func (h CompareHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.state())
}

type toggleReq struct {
	ID string `json:"id"`
}

// Toggle adds or removes one model from the comparison. A 4th distinct
// add is rejected: 409, a selection_limit warning on the hub, and no
// state change.
func (h CompareHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ID) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "body must be {\"id\": \"...\"}")
		return
	}

	models, _, err := h.Refresher.Models(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "catalog_unavailable", err.Error())
		return
	}
	known := false
	for _, m := range models {
		if m.ID == req.ID {
			known = true
			break
		}
	}
	if !known {
		WriteError(w, r, http.StatusNotFound, "unknown_model", "no such model id: "+req.ID)
		return
	}

	reqID := RequestIDFrom(r.Context())
	terr := h.Session.Compare(func(s *selection.Set) error {
		_, err := s.Toggle(req.ID)
		return err
	})
	if errors.Is(terr, selection.ErrLimit) {
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeSelectionLimit, 1, map[string]any{
			"id":    req.ID,
			"limit": selection.Limit,
		}))
		WriteError(w, r, http.StatusConflict, "selection_limit", "maximum 3 models; deselect one before adding another")
		return
	}

	h.publishChanged(reqID)
	writeJSON(w, h.state())
}

// RemoveByPath handles DELETE /compare/{id}. Removing an id that is not
// selected is a no-op, not an error.
func (h CompareHandler) RemoveByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/compare/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "missing id")
		return
	}

	_ = h.Session.Compare(func(s *selection.Set) error {
		s.Remove(id)
		return nil
	})

	h.publishChanged(RequestIDFrom(r.Context()))
	writeJSON(w, h.state())
}

// Clear empties the selection; the mirrored URL key disappears rather
// than going empty.
func (h CompareHandler) Clear(w http.ResponseWriter, r *http.Request) {
	_ = h.Session.Compare(func(s *selection.Set) error {
		s.Clear()
		return nil
	})

	h.publishChanged(RequestIDFrom(r.Context()))
	writeJSON(w, h.state())
}

func (h CompareHandler) publishChanged(reqID string) {
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeSelectionChanged, 1, map[string]any{
		"compare": h.Session.CompareIDs(),
		"query":   h.Session.Query(),
	}))
}
