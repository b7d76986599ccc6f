package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults is the config a fresh install runs with.
func Defaults() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.App.DataDir = "."
	cfg.Catalog.BaseURL = "https://openrouter.ai/api/v1"
	cfg.Catalog.RefreshMinutes = 60
	cfg.Catalog.TimeoutSeconds = 30
	cfg.Catalog.RateRPS = 1.0
	cfg.Catalog.RateBurst = 2
	cfg.Export.Dir = "exports"
	return cfg
}

// EnsureUserConfig makes sure dataDir holds a config.yml the user can
// edit: copies the bundled default when present, otherwise writes the
// built-in defaults.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		b, merr := yaml.Marshal(Defaults())
		if merr != nil {
			return "", merr
		}
		if werr := os.WriteFile(userPath, b, 0o644); werr != nil {
			return "", werr
		}
		return userPath, nil
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}
