package httpapi

import (
	"net/http"
	"time"

	"pricewatch-engine/internal/refresh"
)

type RefreshHandler struct {
	Refresher *refresh.Refresher
}

// Run forces a catalog refresh now instead of waiting for the hourly
// revalidation. Concurrent calls collapse onto one fetch.
func (h RefreshHandler) Run(w http.ResponseWriter, r *http.Request) {
	models, fetchedAt, err := h.Refresher.Refresh(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "refresh_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{
		"ok":         true,
		"models":     len(models),
		"fetched_at": fetchedAt.Format(time.RFC3339),
	})
}
