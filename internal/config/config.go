// Package config loads ~/.todoterm/config.yaml. Precedence (low to high):
// file, TODOTERM_API_URL env, root flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	fileName = "config.yaml"

	// EnvAPIURL overrides the file's api_url when set.
	EnvAPIURL = "TODOTERM_API_URL"

	defaultAPIURL = "http://localhost:8080"
)

type Config struct {
	APIURL    string `yaml:"api_url"`
	Theme     string `yaml:"theme"`
	CachePath string `yaml:"cache_path"`
}

func path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".todoterm", fileName), nil
}

// Load reads the config file and applies the env override. A missing file is
// not an error; every field falls back to its default.
func Load() (Config, error) {
	p, err := path()
	if err != nil {
		return Config{}, err
	}
	return loadFrom(p)
}

func loadFrom(p string) (Config, error) {
	cfg := Config{APIURL: defaultAPIURL, Theme: "classic"}

	b, err := os.ReadFile(p)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// no file, defaults stand
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if cfg.APIURL == "" {
			cfg.APIURL = defaultAPIURL
		}
		if cfg.Theme == "" {
			cfg.Theme = "classic"
		}
	}

	if env := strings.TrimSpace(os.Getenv(EnvAPIURL)); env != "" {
		cfg.APIURL = env
	}
	return cfg, nil
}
