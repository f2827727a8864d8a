// Package config loads service configuration from the environment using
// koanf with struct defaults layered under SKYLARK_* variables.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SKYLARK_"

// Config holds everything the service needs at startup.
type Config struct {
	ListenAddr string `koanf:"listen_addr"`
	DBPath     string `koanf:"db_path"`
	LogLevel   string `koanf:"log_level"`

	OpenWeather struct {
		APIKey  string `koanf:"api_key"`
		BaseURL string `koanf:"base_url"`
	} `koanf:"openweather"`

	Spotify struct {
		ClientID     string `koanf:"client_id"`
		ClientSecret string `koanf:"client_secret"`
		RefreshToken string `koanf:"refresh_token"`
		BaseURL      string `koanf:"base_url"`
		TokenURL     string `koanf:"token_url"`
	} `koanf:"spotify"`

	Worker struct {
		Count     int `koanf:"count"`
		QueueSize int `koanf:"queue_size"`
	} `koanf:"worker"`
}

// Load reads configuration from SKYLARK_* environment variables:
// SKYLARK_LISTEN_ADDR -> listen_addr, SKYLARK_SPOTIFY_CLIENT_ID ->
// spotify.client_id, and so on. Missing required keys fail fast.
func Load() (*Config, error) {
	k := koanf.New(".")

	provider := env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		for _, section := range []string{"openweather", "spotify", "worker"} {
			if strings.HasPrefix(key, section+"_") {
				return section + "." + strings.TrimPrefix(key, section+"_")
			}
		}
		return key
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := &Config{}
	cfg.ListenAddr = ":8080"
	cfg.DBPath = "skylark.db"
	cfg.LogLevel = "info"
	cfg.Worker.Count = 2
	cfg.Worker.QueueSize = 100

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.OpenWeather.APIKey == "" {
		missing = append(missing, "SKYLARK_OPENWEATHER_API_KEY")
	}
	if c.Spotify.ClientID == "" {
		missing = append(missing, "SKYLARK_SPOTIFY_CLIENT_ID")
	}
	if c.Spotify.ClientSecret == "" {
		missing = append(missing, "SKYLARK_SPOTIFY_CLIENT_SECRET")
	}
	if c.Spotify.RefreshToken == "" {
		missing = append(missing, "SKYLARK_SPOTIFY_REFRESH_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}
