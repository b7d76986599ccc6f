package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureUserConfigWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	// No bundled default file: built-in defaults get written.
	path, err := EnsureUserConfig(dir, filepath.Join(dir, "missing", "config.yml"))
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Defaults()
	if cfg.App.Port != want.App.Port || cfg.Catalog.BaseURL != want.Catalog.BaseURL {
		t.Fatalf("got %+v", cfg)
	}

	// Second call must not clobber the existing file.
	if err := os.WriteFile(path, []byte("app:\n  port: 9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureUserConfig(dir, ""); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Port != 9999 {
		t.Fatalf("user edit clobbered: port=%d", cfg.App.Port)
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults pass", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.App.Port = 0 }, wantErr: "app.port"},
		{name: "missing base url", mutate: func(c *Config) { c.Catalog.BaseURL = "" }, wantErr: "base_url"},
		{name: "relative base url", mutate: func(c *Config) { c.Catalog.BaseURL = "/api/v1" }, wantErr: "base_url"},
		{name: "zero refresh", mutate: func(c *Config) { c.Catalog.RefreshMinutes = 0 }, wantErr: "refresh_minutes"},
		{name: "zero timeout", mutate: func(c *Config) { c.Catalog.TimeoutSeconds = 0 }, wantErr: "timeout_seconds"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			_, res := NormalizeAndValidate(cfg)

			if tc.wantErr == "" {
				if !res.OK() {
					t.Fatalf("errors: %v", res.Errors)
				}
				return
			}
			if res.OK() {
				t.Fatal("want error, got none")
			}
			found := false
			for _, e := range res.Errors {
				if strings.Contains(e, tc.wantErr) {
					found = true
				}
			}
			if !found {
				t.Fatalf("no error mentioning %q in %v", tc.wantErr, res.Errors)
			}
		})
	}
}

func TestNormalizeTrimsBaseURL(t *testing.T) {
	cfg := Defaults()
	cfg.Catalog.BaseURL = " https://openrouter.ai/api/v1/ "
	out, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Fatalf("errors: %v", res.Errors)
	}
	if out.Catalog.BaseURL != "https://openrouter.ai/api/v1" {
		t.Fatalf("got %q", out.Catalog.BaseURL)
	}
}

func TestLowRefreshWarns(t *testing.T) {
	cfg := Defaults()
	cfg.Catalog.RefreshMinutes = 1
	_, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Fatalf("errors: %v", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("want a warning for a 1-minute refresh")
	}
}
