package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/gridstash/pkg/inventory"
)

// Config holds all server configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	JWT       JWTConfig       `yaml:"jwt"`
	Redis     RedisConfig     `yaml:"redis"`
	Logging   LoggingConfig   `yaml:"logging"`
	Inventory InventoryConfig `yaml:"inventory"`
	Catalog   CatalogConfig   `yaml:"catalog"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	MaxPlayers int    `yaml:"max_players"`
}

// JWTConfig holds JWT authentication settings
type JWTConfig struct {
	Issuer              string `yaml:"issuer"`
	PublicKeyURL        string `yaml:"public_key_url"`
	PublicKeyRefreshHrs int    `yaml:"public_key_refresh_hours"`
}

// RedisConfig holds Redis connection settings. An empty address keeps saves
// in memory.
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
	SavePrefix      string `yaml:"save_prefix"`
	CompactSaves    bool   `yaml:"compact_saves"`
}

// LoggingConfig selects the log level and output format ("text" or "json").
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// InventoryConfig describes the per-player grid, equipment slots and their
// on-screen geometry.
type InventoryConfig struct {
	GridWidth  int                       `yaml:"grid_width"`
	GridHeight int                       `yaml:"grid_height"`
	Metric     inventory.Metric          `yaml:"metric"`
	Equipment  []string                  `yaml:"equipment"`
	Slots      map[string]inventory.Rect `yaml:"slots"`
}

// CatalogConfig points at the YAML item catalog. An empty path uses the
// built-in sample catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration and fills defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxPlayers == 0 {
		cfg.Server.MaxPlayers = 100
	}
	if cfg.JWT.PublicKeyRefreshHrs == 0 {
		cfg.JWT.PublicKeyRefreshHrs = 24
	}
	if cfg.Redis.SavePrefix == "" {
		cfg.Redis.SavePrefix = "gridstash:save:"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Inventory.GridWidth == 0 {
		cfg.Inventory.GridWidth = 10
	}
	if cfg.Inventory.GridHeight == 0 {
		cfg.Inventory.GridHeight = 4
	}
	if cfg.Inventory.Metric.CellSize == 0 {
		cfg.Inventory.Metric.CellSize = 1
	}

	if _, err := cfg.Inventory.Categories(); err != nil {
		return nil, err
	}
	if _, err := cfg.Inventory.Layout(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Categories resolves the configured equipment slot names. No names means
// every category.
func (c InventoryConfig) Categories() ([]inventory.Category, error) {
	out := make([]inventory.Category, 0, len(c.Equipment))
	for _, name := range c.Equipment {
		cat, err := inventory.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("invalid equipment slot: %w", err)
		}
		if cat == inventory.CategoryNone {
			return nil, fmt.Errorf("invalid equipment slot %q", name)
		}
		out = append(out, cat)
	}
	return out, nil
}

// Layout resolves the configured slot rectangles.
func (c InventoryConfig) Layout() (inventory.SlotLayout, error) {
	layout := make(inventory.SlotLayout, len(c.Slots))
	for name, r := range c.Slots {
		cat, err := inventory.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("invalid slot layout: %w", err)
		}
		layout[cat] = r
	}
	return layout, nil
}
