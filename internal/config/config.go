// Package config loads sportex settings from defaults, an optional config
// file, .env and SPORTEX_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the sportex configuration.
type Config struct {
	API   APIConfig   `mapstructure:"api"`
	Token TokenConfig `mapstructure:"token"`
	Log   LogConfig   `mapstructure:"log"`
	Web   WebConfig   `mapstructure:"web"`
}

// APIConfig points at the backend.
type APIConfig struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// TokenConfig says where the session token is kept. Value, when set, is used
// instead of the stored token and is never written back.
type TokenConfig struct {
	Dir   string `mapstructure:"dir"`
	Key   string `mapstructure:"key"`
	Value string `mapstructure:"value"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Env   string `mapstructure:"env"`
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// WebConfig is the browser front end, used for shareable links.
type WebConfig struct {
	URL string `mapstructure:"url"`
}

// RequestTimeout returns the API timeout as a duration.
func (c APIConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// EventURL returns the web page for an event.
func (c WebConfig) EventURL(id string) string {
	return c.URL + "/event/" + id
}

// DefaultDir returns ~/.sportex, or ./.sportex when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sportex"
	}
	return filepath.Join(home, ".sportex")
}

// Load reads configuration. A missing config file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	v := viper.New()
	dir := DefaultDir()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("SPORTEX")
	v.AutomaticEnv()
	bindEnv(v)

	v.SetDefault("api.url", "http://localhost:8000")
	v.SetDefault("api.timeout", 30)
	v.SetDefault("token.dir", dir)
	v.SetDefault("token.key", "token")
	v.SetDefault("token.value", "")
	v.SetDefault("log.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "sportex.log"))
	v.SetDefault("web.url", "http://localhost:5173")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.API.URL == "" {
		return nil, fmt.Errorf("api.url must not be empty")
	}
	return &cfg, nil
}

// bindEnv maps nested keys to flat variable names. SPORTEX_BACKEND_URL is
// accepted as an alias of SPORTEX_API_URL.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("api.url", "SPORTEX_API_URL", "SPORTEX_BACKEND_URL")
	_ = v.BindEnv("api.timeout", "SPORTEX_API_TIMEOUT")
	_ = v.BindEnv("token.dir", "SPORTEX_TOKEN_DIR")
	_ = v.BindEnv("token.key", "SPORTEX_TOKEN_KEY")
	_ = v.BindEnv("token.value", "SPORTEX_TOKEN")
	_ = v.BindEnv("log.env", "SPORTEX_LOG_ENV")
	_ = v.BindEnv("log.level", "SPORTEX_LOG_LEVEL")
	_ = v.BindEnv("log.file", "SPORTEX_LOG_FILE")
	_ = v.BindEnv("web.url", "SPORTEX_WEB_URL")
}
