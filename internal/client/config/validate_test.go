package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fields(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   []string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}, want: []string{}},
		{name: "relative url", mutate: func(c *Config) { c.APIBaseURL = "localhost:5328" }, want: []string{"api_base_url"}},
		{name: "ftp url", mutate: func(c *Config) { c.APIBaseURL = "ftp://host" }, want: []string{"api_base_url"}},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, want: []string{"request_timeout"}},
		{name: "unknown driver", mutate: func(c *Config) { c.StorageDriver = "etcd" }, want: []string{"storage_driver"}},
		{name: "sqlite without path", mutate: func(c *Config) { c.DatabasePath = " " }, want: []string{"database_path"}},
		{name: "redis without addr", mutate: func(c *Config) { c.StorageDriver = StorageRedis; c.RedisAddr = "" }, want: []string{"redis_addr"}},
		{name: "memory ignores paths", mutate: func(c *Config) { c.StorageDriver = StorageMemory; c.DatabasePath = "" }, want: []string{}},
		{
			name: "several fields at once",
			mutate: func(c *Config) {
				c.LandingPath = "plans"
				c.LogLevel = "loud"
				c.OnlineCheckInterval = -1
			},
			want: []string{"landing_path", "log_level", "online_check_interval"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			assert.Equal(t, tt.want, fields(c.Validate()))
		})
	}
}

func TestFieldError_Error(t *testing.T) {
	e := FieldError{Field: "log_level", Message: "must be one of debug, info, warn, error"}
	assert.Equal(t, "log_level: must be one of debug, info, warn, error", e.Error())
}
