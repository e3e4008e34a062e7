// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Weather      WeatherConfig      `mapstructure:"weather"`
	Wardrobe     WardrobeConfig     `mapstructure:"wardrobe"`
	Generation   GenerationConfig   `mapstructure:"generation"`
	WearTracking WearTrackingConfig `mapstructure:"wear_tracking"`
	Dashboard    DashboardConfig    `mapstructure:"dashboard"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Events       EventsConfig       `mapstructure:"events"`
	Scheduler    SchedulerConfig    `mapstructure:"scheduler"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int    `mapstructure:"write_timeout"` // milliseconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Collaborator endpoints ---

type WeatherConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	APIKey          string `mapstructure:"api_key"`
	Timeout         int    `mapstructure:"timeout"`          // milliseconds
	StaleAfter      int    `mapstructure:"stale_after"`      // milliseconds
	DefaultLocation string `mapstructure:"default_location"`
}

type WardrobeConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type GenerationConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // milliseconds; exceeding it routes to the fallback outfit
}

type WearTrackingConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type DashboardConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	SourceTimeout  int    `mapstructure:"source_timeout"`   // milliseconds, per source
	HistoryMemoTTL int    `mapstructure:"history_memo_ttl"` // milliseconds
}

// --- Orchestration knobs ---

type CacheConfig struct {
	EntryTTL int `mapstructure:"entry_ttl"` // milliseconds; entries outlive the calendar day
}

type EventsConfig struct {
	RebroadcastDelay int `mapstructure:"rebroadcast_delay"` // milliseconds
	SubscriberBuffer int `mapstructure:"subscriber_buffer"`
}

type SchedulerConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	RefreshTime string   `mapstructure:"refresh_time"` // "HH:MM", local to UTC
	WarmUsers   []string `mapstructure:"warm_users"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
