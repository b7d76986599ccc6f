package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Catalog struct {
		// BaseURL points at an OpenRouter-style pricing API; the engine
		// appends /models.
		BaseURL        string  `yaml:"base_url" json:"base_url"`
		RefreshMinutes int     `yaml:"refresh_minutes" json:"refresh_minutes"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		RateRPS        float64 `yaml:"rate_rps" json:"rate_rps"`
		RateBurst      int     `yaml:"rate_burst" json:"rate_burst"`
		// KeyringAccount names the OS-keychain entry holding the optional
		// API key. Empty means the endpoint is called unauthenticated.
		KeyringAccount string `yaml:"keyring_account" json:"keyring_account"`
	} `yaml:"catalog" json:"catalog"`

	Export struct {
		Dir string `yaml:"dir" json:"dir"`
	} `yaml:"export" json:"export"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
