package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown
// (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Catalogs
	mh := ModelsHandler{Refresher: d.Refresher, Session: d.Session}
	mux.HandleFunc("/models", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: mh.List,
	}))

	ch := ConsultationsHandler{Items: d.Consultations, Session: d.Session}
	mux.HandleFunc("/consultations", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.List,
	}))

	// Comparison selection
	cmp := CompareHandler{Session: d.Session, Hub: d.Hub, Refresher: d.Refresher}
	mux.HandleFunc("/compare", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    cmp.Get,
		http.MethodDelete: cmp.Clear,
	}))
	mux.HandleFunc("/compare/toggle", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: cmp.Toggle,
	}))
	mux.HandleFunc("/compare/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: cmp.RemoveByPath, // expects /compare/{id}
	}))

	// Session state
	sh := SessionHandler{Session: d.Session, Hub: d.Hub, Refresher: d.Refresher}
	mux.HandleFunc("/session", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Get,
	}))
	mux.HandleFunc("/session/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Search,
	}))
	mux.HandleFunc("/session/tab", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Tab,
	}))
	mux.HandleFunc("/session/sort", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Sort,
	}))
	mux.HandleFunc("/session/view", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.View,
	}))
	mux.HandleFunc("/session/providers", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.ToggleProvider,
		http.MethodDelete: sh.ClearProviders,
	}))
	mux.HandleFunc("/session/reset", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.DoReset,
	}))

	// Catalog refresh
	rh := RefreshHandler{Refresher: d.Refresher}
	mux.HandleFunc("/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Run,
	}))

	// Exports
	eh := ExportHandler{Refresher: d.Refresher, Items: d.Consultations, Session: d.Session}
	mux.HandleFunc("/export/models.xlsx", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ModelsXLSX,
	}))
	mux.HandleFunc("/export/consultations.xlsx", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ConsultationsXLSX,
	}))

	// Config
	cfg := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfg.Get,
		http.MethodPut: cfg.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfg.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfg.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sec := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/pricing", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sec.SetPricingKey,
	}))

	// SSE events
	ev := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ev.ServeSSE,
	}))

	// Health
	hh := HealthHandler{Hub: d.Hub}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
