// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the yaml base config, merges the environment-specific file, and
// applies environment variable overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// System environment is enough when no .env file is present.
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like GENERATION_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideEmptyConfig fills secrets from the environment when yaml left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Weather.APIKey == "" {
		if val := os.Getenv("WEATHER_API_KEY"); val != "" {
			cfg.Weather.APIKey = val
		}
	}
	if cfg.Generation.APIKey == "" {
		if val := os.Getenv("GENERATION_API_KEY"); val != "" {
			cfg.Generation.APIKey = val
		}
	}
	if cfg.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Redis.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "outfit-orchestrator"
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15000
	}

	if cfg.Weather.Timeout == 0 {
		cfg.Weather.Timeout = 5000
	}
	if cfg.Weather.StaleAfter == 0 {
		cfg.Weather.StaleAfter = 1800000 // 30 minutes
	}
	if cfg.Weather.DefaultLocation == "" {
		cfg.Weather.DefaultLocation = "New York"
	}

	if cfg.Wardrobe.Timeout == 0 {
		cfg.Wardrobe.Timeout = 5000
	}

	if cfg.Generation.Timeout == 0 {
		cfg.Generation.Timeout = 20000
	}

	if cfg.WearTracking.Timeout == 0 {
		cfg.WearTracking.Timeout = 5000
	}

	if cfg.Dashboard.SourceTimeout == 0 {
		cfg.Dashboard.SourceTimeout = 5000
	}
	if cfg.Dashboard.HistoryMemoTTL == 0 {
		cfg.Dashboard.HistoryMemoTTL = 60000
	}

	if cfg.Cache.EntryTTL == 0 {
		cfg.Cache.EntryTTL = 172800000 // 48 hours
	}

	if cfg.Events.RebroadcastDelay == 0 {
		cfg.Events.RebroadcastDelay = 5000
	}
	if cfg.Events.SubscriberBuffer == 0 {
		cfg.Events.SubscriberBuffer = 8
	}

	if cfg.Scheduler.RefreshTime == "" {
		cfg.Scheduler.RefreshTime = "06:00"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis.address is required")
	}
	if cfg.Weather.BaseURL == "" {
		return fmt.Errorf("weather.base_url is required")
	}
	if cfg.Wardrobe.BaseURL == "" {
		return fmt.Errorf("wardrobe.base_url is required")
	}
	if cfg.Generation.BaseURL == "" {
		return fmt.Errorf("generation.base_url is required")
	}
	if cfg.WearTracking.BaseURL == "" {
		return fmt.Errorf("wear_tracking.base_url is required")
	}
	if cfg.Dashboard.BaseURL == "" {
		return fmt.Errorf("dashboard.base_url is required")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
