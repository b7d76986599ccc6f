package httpapi

import (
	"sync/atomic"

	"pricewatch-engine/internal/config"
	"pricewatch-engine/internal/domain"
	"pricewatch-engine/internal/events"
	"pricewatch-engine/internal/refresh"
)

type Deps struct {
	Hub *events.Hub

	// Atomic store of config.Config; handlers must load per request, a
	// PUT /config can swap it at any time.
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Refresher *refresh.Refresher

	// Consultations is the fixed sample data set, loaded once.
	Consultations []domain.Consultation

	Session *Session
}
