// Package config loads server configuration from an optional YAML or JSON
// file, with environment-variable overrides on top of built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"
)

// Config holds the save-service settings.
type Config struct {
	ListenAddr string `yaml:"listen_addr" json:"listenAddr"`
	Backend    string `yaml:"backend" json:"backend"` // bolt, redis, or memory
	BoltPath   string `yaml:"bolt_path" json:"boltPath"`
	RedisURL   string `yaml:"redis_url" json:"redisUrl"`
}

// Default returns the built-in settings: a bolt store next to the binary,
// listening on :8080.
func Default() Config {
	return Config{
		ListenAddr: ":8080",
		Backend:    "bolt",
		BoltPath:   "saves.db",
		RedisURL:   "redis://localhost:6379",
	}
}

// Load reads the config file at path (empty path skips the file), then
// applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		switch ext := filepath.Ext(path); ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("bad YAML config: %w", err)
			}
		case ".json":
			if err := json.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("bad JSON config: %w", err)
			}
		default:
			return Config{}, fmt.Errorf("unsupported config format: %s", ext)
		}
	}

	cfg.ListenAddr = getEnv("CBBGM_ADDR", cfg.ListenAddr)
	cfg.Backend = getEnv("CBBGM_BACKEND", cfg.Backend)
	cfg.BoltPath = getEnv("CBBGM_BOLT_PATH", cfg.BoltPath)
	cfg.RedisURL = getEnv("CBBGM_REDIS_URL", cfg.RedisURL)

	switch cfg.Backend {
	case "bolt", "redis", "memory":
	default:
		return Config{}, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
