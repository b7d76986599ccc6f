package httpapi

import (
	"net/http"
	"net/url"
	"time"

	"pricewatch-engine/internal/domain"
	"pricewatch-engine/internal/view"
)

type ConsultationsHandler struct {
	Items   []domain.Consultation
	Session *Session
}

type consultationsResponse struct {
	Consultations []domain.Consultation `json:"consultations"`
	Total         int                   `json:"total"`
	Visible       int                   `json:"visible"`
	Counts        map[view.Tab]int      `json:"counts"`
	State         view.State            `json:"state"`
}

// List serves the derived consultations view. Tab counts are computed
// over the search-filtered set so the badges always match what a tab
// click would show.
func (h ConsultationsHandler) List(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	st := h.Session.ConsultationsState()
	applyConsultationOverrides(&st, r.URL.Query())

	visible := view.DeriveConsultations(h.Items, st, now)

	writeJSON(w, consultationsResponse{
		Consultations: visible,
		Total:         len(h.Items),
		Visible:       len(visible),
		Counts:        view.TabCounts(h.Items, st.Query, now),
		State:         st,
	})
}

func applyConsultationOverrides(st *view.State, q url.Values) {
	if q.Has("q") {
		st.SetQuery(q.Get("q"))
	}
	if t := view.Tab(q.Get("tab")); view.ValidTab(t) {
		st.SetTab(t)
	}
	applySortOverrides(st, q)
}
