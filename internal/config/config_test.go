package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"PORT", "SERVER_HOST", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
	"SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_READ_TIMEOUT", "5")
	t.Setenv("SERVER_WRITE_TIMEOUT", "2500ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://farm.example, http://localhost:3000 ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1:8081", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 2500*time.Millisecond, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"https://farm.example", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non-numeric port", "PORT", "http"},
		{"bad duration", "SERVER_IDLE_TIMEOUT", "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{
				Port:            5000,
				ReadTimeout:     time.Second,
				WriteTimeout:    time.Second,
				IdleTimeout:     time.Second,
				ShutdownTimeout: time.Second,
			},
			Logging: LoggingConfig{Level: "info"},
			CORS:    CORSConfig{AllowedOrigins: []string{"*"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero write timeout", func(c *Config) { c.Server.WriteTimeout = 0 }, true},
		{"unknown log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"no origins", func(c *Config) { c.CORS.AllowedOrigins = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
