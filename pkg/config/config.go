// Package config loads GoFlow configuration from a TOML file.
//
// Configuration covers the defaults the CLI and HTTP service start from:
// the layout strategy, cache backend selection, and service addresses.
// Flags override file values, which override built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/errors"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/layout"
)

// DefaultFileName is looked up in the working directory and the user config
// directory when no --config flag is given.
const DefaultFileName = "goflow.toml"

// Config is the on-disk configuration.
type Config struct {
	// Strategy holds the default layout strategy.
	Strategy layout.Strategy `toml:"strategy"`

	// Cache selects and configures the cache backend.
	Cache CacheConfig `toml:"cache"`

	// Store configures the optional layout archive.
	Store StoreConfig `toml:"store"`

	// Serve configures the HTTP service.
	Serve ServeConfig `toml:"serve"`
}

// Cache backend names accepted in the [cache] section.
const (
	CacheBackendFile   = "file"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// CacheConfig selects a cache backend.
type CacheConfig struct {
	// Backend is one of "file", "memory", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the cache directory for the file backend. Empty means the
	// user cache directory.
	Dir string `toml:"dir"`

	// Size bounds the memory backend's entry count.
	Size int `toml:"size"`

	// Redis connection settings.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// StoreConfig configures the layout archive.
type StoreConfig struct {
	// MongoURI enables the MongoDB store when non-empty.
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServeConfig configures the HTTP service.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Strategy: layout.DefaultStrategy(),
		Cache:    CacheConfig{Backend: CacheBackendFile, Size: 512},
		Store:    StoreConfig{Database: "goflow", Collection: "layouts"},
		Serve:    ServeConfig{Addr: ":8080"},
	}
}

// Load reads a config file and merges it over the defaults. An empty path
// searches the default locations; a missing file there is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = findDefault()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing %s", path)
	}

	cfg.Strategy = cfg.Strategy.Normalized()
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// findDefault returns the first default config path that exists.
func findDefault() string {
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "goflow", DefaultFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func validate(cfg Config) error {
	switch cfg.Cache.Backend {
	case "", CacheBackendFile, CacheBackendMemory, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend %q (file, memory, redis, none)", cfg.Cache.Backend)
	}
	if cfg.Cache.Backend == CacheBackendRedis && cfg.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "redis backend requires redis_addr")
	}
	return nil
}
