package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"pricewatch-engine/internal/config"
	"pricewatch-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setAPIKeyReq struct {
	Key string `json:"key"`
}

func (h SecretsHandler) SetPricingKey(w http.ResponseWriter, r *http.Request) {
	var req setAPIKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if cfg.Catalog.KeyringAccount == "" {
		http.Error(w, "catalog.keyring_account is not configured", http.StatusBadRequest)
		return
	}
	if err := secrets.SetAPIKey(cfg.Catalog.KeyringAccount, req.Key); err != nil {
		http.Error(w, "failed to store api key: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
