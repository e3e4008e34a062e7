// internal/common/config/loader_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validBase() *Config {
	cfg := &Config{}
	cfg.Redis.Address = "localhost:6379"
	cfg.Weather.BaseURL = "http://weather.local"
	cfg.Wardrobe.BaseURL = "http://wardrobe.local"
	cfg.Generation.BaseURL = "http://generation.local"
	cfg.WearTracking.BaseURL = "http://wear.local"
	cfg.Dashboard.BaseURL = "http://dashboard.local"
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validBase()
	applyDefaults(cfg)

	assert.Equal(t, "outfit-orchestrator", cfg.App.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 20000, cfg.Generation.Timeout)
	assert.Equal(t, 172800000, cfg.Cache.EntryTTL)
	assert.Equal(t, 5000, cfg.Events.RebroadcastDelay)
	assert.Equal(t, 1800000, cfg.Weather.StaleAfter)
	assert.Equal(t, "06:00", cfg.Scheduler.RefreshTime)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := validBase()
	cfg.Generation.Timeout = 30000
	cfg.Server.Port = "9999"
	applyDefaults(cfg)

	assert.Equal(t, 30000, cfg.Generation.Timeout)
	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing redis", func(c *Config) { c.Redis.Address = "" }, "redis.address"},
		{"missing weather", func(c *Config) { c.Weather.BaseURL = "" }, "weather.base_url"},
		{"missing generation", func(c *Config) { c.Generation.BaseURL = "" }, "generation.base_url"},
		{"missing wear tracking", func(c *Config) { c.WearTracking.BaseURL = "" }, "wear_tracking.base_url"},
		{"missing dashboard", func(c *Config) { c.Dashboard.BaseURL = "" }, "dashboard.base_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBase()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestOverrideEmptyConfig(t *testing.T) {
	t.Setenv("GENERATION_API_KEY", "env-secret")
	t.Setenv("REDIS_PASSWORD", "env-pass")

	cfg := validBase()
	overrideEmptyConfig(cfg)
	assert.Equal(t, "env-secret", cfg.Generation.APIKey)
	assert.Equal(t, "env-pass", cfg.Redis.Password)

	cfg = validBase()
	cfg.Generation.APIKey = "yaml-secret"
	overrideEmptyConfig(cfg)
	assert.Equal(t, "yaml-secret", cfg.Generation.APIKey, "yaml value wins over env")
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, GetDuration(5000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
