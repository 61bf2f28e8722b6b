package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fetcher backends selectable with FETCHER.
const (
	FetcherHTTP = "http"
	FetcherRod  = "rod"
)

// Config holds all configuration for the application.
// Values are read by viper from a config file or environment variables.
type Config struct {
	// TelegramBotToken enables the bot when set.
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	BadgerDBPath     string `mapstructure:"BADGERDB_PATH"`
	HTTPAddr         string `mapstructure:"HTTP_ADDR"`

	Fetcher      string        `mapstructure:"FETCHER"`
	FetchTimeout time.Duration `mapstructure:"FETCH_TIMEOUT"`
	UserAgent    string        `mapstructure:"USER_AGENT"`

	DedupInFlight bool    `mapstructure:"DEDUP_IN_FLIGHT"`
	RateLimitRPS  float64 `mapstructure:"RATE_LIMIT_RPS"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]interface{}{
	"TELEGRAM_BOT_TOKEN": "",
	"BADGERDB_PATH":      "./badger_data",
	"HTTP_ADDR":          ":8080",
	"FETCHER":            FetcherHTTP,
	"FETCH_TIMEOUT":      "15s",
	"USER_AGENT":         "",
	"DEDUP_IN_FLIGHT":    true,
	"RATE_LIMIT_RPS":     0,
	"LOG_LEVEL":          "info",
}

// LoadConfig reads config.yaml from path, overlaid with environment variables.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Env vars are only unmarshalled for keys viper already knows.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check.
func (c Config) Validate() error {
	if c.BadgerDBPath == "" {
		return errors.New("BADGERDB_PATH must not be empty")
	}
	switch c.Fetcher {
	case FetcherHTTP, FetcherRod:
	default:
		return fmt.Errorf("FETCHER must be %q or %q, got %q", FetcherHTTP, FetcherRod, c.Fetcher)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", c.RateLimitRPS)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}

// BotEnabled reports whether a Telegram token is configured.
func (c Config) BotEnabled() bool {
	return c.TelegramBotToken != ""
}
