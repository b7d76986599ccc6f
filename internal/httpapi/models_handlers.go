package httpapi

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"pricewatch-engine/internal/domain"
	"pricewatch-engine/internal/refresh"
	"pricewatch-engine/internal/view"
)

type ModelsHandler struct {
	Refresher *refresh.Refresher
	Session   *Session
}

type modelsResponse struct {
	Models    []domain.ProcessedModel `json:"models"`
	Total     int                     `json:"total"`
	Visible   int                     `json:"visible"`
	Providers []view.ProviderCount    `json:"providers"`
	Bounds    *view.PriceBounds       `json:"bounds,omitempty"`
	State     view.State              `json:"state"`
	Compare   []string                `json:"compare,omitempty"`
	FetchedAt time.Time               `json:"fetchedAt"`
}

// List serves the derived models view: session state, optionally
// overridden per request by query params (q, providers, sort, order,
// view) so a stateless shell can drive it too.
func (h ModelsHandler) List(w http.ResponseWriter, r *http.Request) {
	models, fetchedAt, err := h.Refresher.Models(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "catalog_unavailable", err.Error())
		return
	}

	st := h.Session.ModelsState()
	applyModelOverrides(&st, r.URL.Query())

	visible := view.DeriveModels(models, st)

	resp := modelsResponse{
		Models:    visible,
		Total:     len(models),
		Visible:   len(visible),
		Providers: view.ProviderCounts(models),
		State:     st,
		Compare:   h.Session.CompareIDs(),
		FetchedAt: fetchedAt,
	}
	// Badge min/max always come from the post-filter set.
	if b, ok := view.BoundsOf(visible); ok {
		resp.Bounds = &b
	}

	writeJSON(w, resp)
}

func applyModelOverrides(st *view.State, q url.Values) {
	if q.Has("q") {
		st.SetQuery(q.Get("q"))
	}
	if q.Has("providers") {
		st.ClearProviders()
		for _, p := range strings.Split(q.Get("providers"), ",") {
			if p = strings.TrimSpace(p); p != "" {
				st.ToggleProvider(p)
			}
		}
	}
	applySortOverrides(st, q)
}

func applySortOverrides(st *view.State, q url.Values) {
	if v := q.Get("sort"); v != "" {
		st.SortField = v
		st.SortOrder = view.Asc
	}
	switch q.Get("order") {
	case string(view.Asc):
		st.SortOrder = view.Asc
	case string(view.Desc):
		st.SortOrder = view.Desc
	}
	if m := view.ViewMode(q.Get("view")); view.ValidMode(m) {
		st.SetMode(m)
	}
}
