package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", cfg.TelegramBotToken)
	assert.False(t, cfg.BotEnabled())
	assert.Equal(t, "./badger_data", cfg.BadgerDBPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, FetcherHTTP, cfg.Fetcher)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.DedupInFlight)
	assert.Zero(t, cfg.RateLimitRPS)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, level)
}

func TestLoadConfig_File(t *testing.T) {
	dir := writeConfig(t, `
TELEGRAM_BOT_TOKEN: "123:abc"
BADGERDB_PATH: /var/lib/toolscout
FETCHER: rod
FETCH_TIMEOUT: 30s
DEDUP_IN_FLIGHT: false
RATE_LIMIT_RPS: 2.5
LOG_LEVEL: debug
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.True(t, cfg.BotEnabled())
	assert.Equal(t, "/var/lib/toolscout", cfg.BadgerDBPath)
	assert.Equal(t, FetcherRod, cfg.Fetcher)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.False(t, cfg.DedupInFlight)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, "HTTP_ADDR: \":9000\"\nFETCH_TIMEOUT: 30s\n")
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("USER_AGENT", "toolscout/1.0")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "toolscout/1.0", cfg.UserAgent)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown fetcher", map[string]string{"FETCHER": "curl"}},
		{"zero timeout", map[string]string{"FETCH_TIMEOUT": "0s"}},
		{"negative rate", map[string]string{"RATE_LIMIT_RPS": "-1"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(t.TempDir())
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := writeConfig(t, "FETCHER: [unclosed")
	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "error reading config file")
}
