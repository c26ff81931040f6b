package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Storage struct {
		Driver string `yaml:"driver"` // file (default), redis, or memory
		Path   string `yaml:"path"`
		Redis  struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			TTL      string `yaml:"ttl"`
		} `yaml:"redis"`
	} `yaml:"storage"`
	Quiz struct {
		CacheTTL string `yaml:"cache_ttl"`
	} `yaml:"quiz"`
}

// Load reads YAML config from path and applies environment overrides. A
// missing file is not an error; everything has a default or an env source.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg.withEnv(), nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg.withEnv(), nil
}

func (c Config) withEnv() Config {
	if v := os.Getenv("QUIZDECK_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("QUIZDECK_SESSION_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("QUIZDECK_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("QUIZDECK_REDIS_ADDR"); v != "" {
		c.Storage.Redis.Addr = v
	}
	return c
}

// Duration parses a duration string or returns the fallback if empty or
// malformed.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
