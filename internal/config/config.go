package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	CatalogPath string `koanf:"catalog_path"` // external catalog JSON (empty = embedded)
	DataPath    string `koanf:"data_path"`    // state database path (empty = XDG data dir)

	// Deezer resolution settings
	Deezer DeezerConfig `koanf:"deezer"`

	// Default game filters
	Game GameConfig `koanf:"game"`
}

// DeezerConfig holds track resolution configuration.
type DeezerConfig struct {
	Proxies []string `koanf:"proxies"` // API endpoints tried before the official one
}

// GameConfig holds the default filter bounds offered on first launch.
type GameConfig struct {
	YearMin int `koanf:"year_min"` // lower filter bound (default: 1950)
	YearMax int `koanf:"year_max"` // upper filter bound (default: current year)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.CatalogPath != "" {
		cfg.CatalogPath = expandPath(cfg.CatalogPath)
	}
	if cfg.DataPath != "" {
		cfg.DataPath = expandPath(cfg.DataPath)
	}

	// Normalize proxy URLs (remove trailing slash)
	for i, p := range cfg.Deezer.Proxies {
		cfg.Deezer.Proxies[i] = strings.TrimSuffix(p, "/")
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/mixera/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "mixera", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetGameConfig returns the game configuration with defaults applied.
func (c *Config) GetGameConfig(currentYear int) GameConfig {
	cfg := c.Game

	if cfg.YearMin <= 0 {
		cfg.YearMin = 1950
	}
	if cfg.YearMax <= 0 || cfg.YearMax < cfg.YearMin {
		cfg.YearMax = currentYear
	}

	return cfg
}
