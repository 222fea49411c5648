package config

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldError describes one invalid configuration field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks c and returns one FieldError per invalid field, in field
// order. An empty result means the config is usable.
func (c *Config) Validate() []FieldError {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	if u, err := url.Parse(c.APIBaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		add("api_base_url", "must be an absolute http(s) URL")
	}
	if c.RequestTimeout <= 0 {
		add("request_timeout", "must be positive")
	}

	switch c.StorageDriver {
	case StorageSQLite:
		if strings.TrimSpace(c.DatabasePath) == "" {
			add("database_path", "required for the sqlite driver")
		}
	case StorageRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			add("redis_addr", "required for the redis driver")
		}
	case StorageMemory:
	default:
		add("storage_driver", "must be one of sqlite, redis, memory")
	}

	if !strings.HasPrefix(c.LandingPath, "/") {
		add("landing_path", "must start with /")
	}
	if lvl := strings.ToLower(c.LogLevel); lvl != "debug" && lvl != "info" && lvl != "warn" && lvl != "error" {
		add("log_level", "must be one of debug, info, warn, error")
	}
	if c.OnlineCheckInterval <= 0 {
		add("online_check_interval", "must be positive")
	}
	return errs
}
