// Package config loads service configuration from a YAML file, a .env file
// and ASTARGRID_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdrpinto/astargrid"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ASTARGRID"

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Grid   GridConfig   `mapstructure:"grid"`
	Search SearchConfig `mapstructure:"search"`
	Server ServerConfig `mapstructure:"server"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Render RenderConfig `mapstructure:"render"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type GridConfig struct {
	BlockedMarker string `mapstructure:"blocked_marker"`
}

type SearchConfig struct {
	// Heuristic is "manhattan" or "chebyshev".
	Heuristic string `mapstructure:"heuristic"`
	// Workers bounds concurrent searches in batch mode; 0 means one per CPU.
	Workers int `mapstructure:"workers"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Dir is the badger directory; empty keeps the cache in memory.
	Dir string        `mapstructure:"dir"`
	TTL time.Duration `mapstructure:"ttl"`
}

type RenderConfig struct {
	CellSize int `mapstructure:"cell_size"`
}

var heuristics = map[string]astargrid.Heuristic{
	"manhattan": astargrid.Manhattan,
	"chebyshev": astargrid.Chebyshev,
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("grid.blocked_marker", string(astargrid.DefaultBlockedMarker))
	v.SetDefault("search.heuristic", "manhattan")
	v.SetDefault("search.workers", 0)
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.ttl", time.Duration(0))
	v.SetDefault("render.cell_size", 24)
}

// Load reads configuration. path may be empty, in which case only
// defaults, .env and the environment apply. A missing .env is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is set by Cloud Functions and Cloud Run.
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind server.port: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be one of: console, json, got %q", c.Log.Format)
	}
	if utf8.RuneCountInString(c.Grid.BlockedMarker) != 1 {
		return fmt.Errorf("grid.blocked_marker must be a single character, got %q", c.Grid.BlockedMarker)
	}
	if _, ok := heuristics[c.Search.Heuristic]; !ok {
		return fmt.Errorf("search.heuristic must be one of: manhattan, chebyshev, got %q", c.Search.Heuristic)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("search.workers cannot be negative, got %d", c.Search.Workers)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl cannot be negative, got %s", c.Cache.TTL)
	}
	if c.Render.CellSize <= 0 {
		return fmt.Errorf("render.cell_size must be positive, got %d", c.Render.CellSize)
	}
	return nil
}

// BlockedMarker returns grid.blocked_marker as a rune.
func (c *Config) BlockedMarker() rune {
	marker, _ := utf8.DecodeRuneInString(c.Grid.BlockedMarker)
	return marker
}

// SearchOptions translates the search and grid sections into options for
// the astargrid package.
func (c *Config) SearchOptions(logger *zap.Logger) []astargrid.Option {
	workers := c.Search.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return []astargrid.Option{
		astargrid.WithHeuristic(heuristics[c.Search.Heuristic]),
		astargrid.WithWorkers(workers),
		astargrid.WithLogger(logger),
		astargrid.WithGridOptions(astargrid.WithBlockedMarker(c.BlockedMarker())),
	}
}
