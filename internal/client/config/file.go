package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gymbacteria/internal/flagx"
	"github.com/dmitrijs2005/gymbacteria/internal/timex"
	"github.com/pelletier/go-toml/v2"
)

// FileConfig is the DTO decoded from a JSON or TOML config file. It uses
// timex.Duration so intervals can be written as "5s". Zero values mean
// "not set" and leave the current Config value in place.
type FileConfig struct {
	APIBaseURL          string         `json:"api_base_url" toml:"api_base_url"`
	RequestTimeout      timex.Duration `json:"request_timeout" toml:"request_timeout"`
	StorageDriver       string         `json:"storage_driver" toml:"storage_driver"`
	DatabasePath        string         `json:"database_path" toml:"database_path"`
	RedisAddr           string         `json:"redis_addr" toml:"redis_addr"`
	RedisPrefix         string         `json:"redis_prefix" toml:"redis_prefix"`
	LandingPath         string         `json:"landing_path" toml:"landing_path"`
	LogLevel            string         `json:"log_level" toml:"log_level"`
	MetricsAddr         string         `json:"metrics_addr" toml:"metrics_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" toml:"online_check_interval"`
}

// parseFile overlays cfg with the file named by -c/-config in args. Files
// ending in .toml are decoded as TOML, everything else as JSON. No flag
// means no change.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.StorageDriver, fc.StorageDriver)
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.RedisPrefix, fc.RedisPrefix)
	setString(&cfg.LandingPath, fc.LandingPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
