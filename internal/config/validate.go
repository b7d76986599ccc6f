package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything the UI
// should show about it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(out.Catalog.BaseURL), "/")
	out.Catalog.KeyringAccount = strings.TrimSpace(out.Catalog.KeyringAccount)
	out.Export.Dir = strings.TrimSpace(out.Export.Dir)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Catalog.BaseURL == "" {
		res.addErr("catalog.base_url is required")
	} else if u, err := url.Parse(out.Catalog.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("catalog.base_url must be an absolute URL")
	}

	if out.Catalog.RefreshMinutes <= 0 {
		res.addErr("catalog.refresh_minutes must be > 0")
	} else if out.Catalog.RefreshMinutes < 5 {
		res.addWarn("catalog.refresh_minutes is very low (%d); the pricing API caches for about an hour.", out.Catalog.RefreshMinutes)
	}

	if out.Catalog.TimeoutSeconds <= 0 {
		res.addErr("catalog.timeout_seconds must be > 0")
	}
	if out.Catalog.RateRPS <= 0 {
		res.addErr("catalog.rate_rps must be > 0")
	}
	if out.Catalog.RateBurst <= 0 {
		res.addErr("catalog.rate_burst must be > 0")
	}

	return out, res
}
