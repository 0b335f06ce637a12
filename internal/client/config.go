package client

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/thereidfleish/myace-sub000/internal/api"
)

// Config is the CLI's local state. The session token lives in its own 0600
// file next to this one, managed by the session package.
type Config struct {
	ServerURL string `json:"server_url"`
	Username  string `json:"username,omitempty"` // last logged-in user, for prompts only
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{ServerURL: api.DefaultBaseURL}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = api.DefaultBaseURL
	}
	return &cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "ace", "config.json"), nil
}
