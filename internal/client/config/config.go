package config

import (
	"os"
	"time"
)

// Storage drivers accepted by StorageDriver.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds runtime settings for the gymbacteria CLI.
//
// Fields:
//   - APIBaseURL: scheme://host:port of the training API.
//   - RequestTimeout: per-request deadline applied by the HTTP client.
//   - StorageDriver: credential store backend (sqlite, redis, memory).
//   - DatabasePath: SQLite file used by the sqlite driver; "~" is expanded.
//   - RedisAddr / RedisPrefix: connection and key namespace for the redis driver.
//   - LandingPath: page opened after a successful login.
//   - LogLevel: debug, info, warn or error.
//   - MetricsAddr: if set, serve Prometheus metrics on this address.
//   - OnlineCheckInterval: how often the client probes API reachability.
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	StorageDriver       string
	DatabasePath        string
	RedisAddr           string
	RedisPrefix         string
	LandingPath         string
	LogLevel            string
	MetricsAddr         string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5328"
	c.RequestTimeout = 10 * time.Second
	c.StorageDriver = StorageSQLite
	c.DatabasePath = "~/.gymbacteria/client.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "gymbacteria"
	c.LandingPath = "/training-plans"
	c.LogLevel = "info"
	c.MetricsAddr = ""
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config from defaults, then overlays values from a
// config file (if -c/-config is given) and command-line flags. Later sources
// take precedence over earlier ones. The result is not validated; call
// Validate before use.
func LoadConfig() (*Config, error) {
	return loadFromArgs(os.Args[1:])
}

func loadFromArgs(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
