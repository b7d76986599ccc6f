// Package events is the engine-to-shell notification channel: a small
// in-process hub fanned out over SSE. The shell reacts by re-reading
// the view or flashing a warning; it never gets payloads it could not
// re-fetch.
package events

import (
	"encoding/json"
	"time"
)

// Event types the shell knows about.
const (
	TypePing             = "ping"
	TypeCatalogRefreshed = "catalog_refreshed"
	TypeSelectionChanged = "selection_changed"
	// TypeSelectionLimit is the user-visible warning for a rejected 4th
	// comparison pick; no state changed on the engine side.
	TypeSelectionLimit = "selection_limit"
	TypeViewChanged    = "view_changed"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
