package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"

	"pricewatch-engine/internal/events"
	"pricewatch-engine/internal/refresh"
	"pricewatch-engine/internal/view"
)

// SessionHandler exposes the view-state setters. Each mutation is an
// independent setter; the derived view is never patched, the shell just
// re-fetches /models or /consultations afterwards.
type SessionHandler struct {
	Session   *Session
	Hub       *events.Hub
	Refresher *refresh.Refresher
}

type sessionResponse struct {
	Models        view.State `json:"models"`
	Consultations view.State `json:"consultations"`
	Compare       []string   `json:"compare,omitempty"`
	Query         string     `json:"query"`
}

func (h SessionHandler) snapshot() sessionResponse {
	return sessionResponse{
		Models:        h.Session.ModelsState(),
		Consultations: h.Session.ConsultationsState(),
		Compare:       h.Session.CompareIDs(),
		Query:         h.Session.Query(),
	}
}

func (h SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.snapshot())
}

type mutateReq struct {
	Page     string `json:"page"` // models | consultations
	Query    string `json:"q"`
	Tab      string `json:"tab"`
	Field    string `json:"field"`
	Mode     string `json:"mode"`
	Provider string `json:"provider"`
}

func (h SessionHandler) decode(w http.ResponseWriter, r *http.Request) (mutateReq, bool) {
	var req mutateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON: "+err.Error())
		return req, false
	}
	if req.Page != "models" && req.Page != "consultations" {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "page must be models or consultations")
		return req, false
	}
	return req, true
}

func (h SessionHandler) apply(w http.ResponseWriter, r *http.Request, page string, fn func(*view.State)) {
	if page == "models" {
		h.Session.UpdateModels(fn)
	} else {
		h.Session.UpdateConsultations(fn)
	}
	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeViewChanged, 1, map[string]any{
		"page": page,
	}))
	writeJSON(w, h.snapshot())
}

func (h SessionHandler) Search(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	h.apply(w, r, req.Page, func(st *view.State) { st.SetQuery(req.Query) })
}

func (h SessionHandler) Tab(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	t := view.Tab(req.Tab)
	if !view.ValidTab(t) {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "unknown tab: "+req.Tab)
		return
	}
	h.apply(w, r, req.Page, func(st *view.State) { st.SetTab(t) })
}

// Sort toggles: same field flips the order, a new field starts
// ascending.
func (h SessionHandler) Sort(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	if req.Field == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "field is required")
		return
	}
	h.apply(w, r, req.Page, func(st *view.State) { st.SortBy(req.Field) })
}

func (h SessionHandler) View(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	m := view.ViewMode(req.Mode)
	if !view.ValidMode(m) {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "mode must be cards or table")
		return
	}
	h.apply(w, r, req.Page, func(st *view.State) { st.SetMode(m) })
}

func (h SessionHandler) ToggleProvider(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	if req.Provider == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "provider is required")
		return
	}
	h.apply(w, r, req.Page, func(st *view.State) { st.ToggleProvider(req.Provider) })
}

func (h SessionHandler) ClearProviders(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	h.apply(w, r, req.Page, func(st *view.State) { st.ClearProviders() })
}

type resetReq struct {
	// Query is the shell's current URL query string, e.g. "compare=a,b".
	// This is the one-time inbound hydration point; later URL edits are
	// not observed until the next reset.
	Query string `json:"query"`
}

func (h SessionHandler) DoReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON: "+err.Error())
		return
	}

	q, err := url.ParseQuery(req.Query)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "bad query string: "+err.Error())
		return
	}

	// Resolve hydration ids against the currently loaded catalog;
	// unknown ids are silently dropped.
	models, _, err := h.Refresher.Models(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "catalog_unavailable", err.Error())
		return
	}
	known := make(map[string]bool, len(models))
	for _, m := range models {
		known[m.ID] = true
	}

	h.Session.Reset(q, known)
	writeJSON(w, h.snapshot())
}
