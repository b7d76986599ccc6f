package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"pricewatch-engine/internal/events"
)

type HealthHandler struct {
	Hub *events.Hub
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":          true,
		"time":        time.Now().Format(time.RFC3339),
		"subscribers": h.Hub.Count(),
	})
}
