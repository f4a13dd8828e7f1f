package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"agri-platform/pkg/logging"
)

// Config holds the runtime settings of the API server
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	CORS    CORSConfig
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig controls the structured logger
type LoggingConfig struct {
	Level string
}

// CORSConfig lists the origins allowed to call the API from a browser
type CORSConfig struct {
	AllowedOrigins []string
}

// Addr returns the listen address in host:port form
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads configuration from the environment, falling back to defaults
func LoadConfig() (*Config, error) {
	port, err := getenvInt("PORT", 5000)
	if err != nil {
		return nil, err
	}

	readTimeout, err := getenvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getenvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	idleTimeout, err := getenvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getenvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host:            getenv("SERVER_HOST", ""),
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			IdleTimeout:     idleTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Logging: LoggingConfig{
			Level: getenv("LOG_LEVEL", "info"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		},
	}, nil
}

// Validate checks that the configuration can be used to start the server
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range 1-65535", c.Server.Port)
	}

	timeouts := map[string]time.Duration{
		"read":     c.Server.ReadTimeout,
		"write":    c.Server.WriteTimeout,
		"idle":     c.Server.IdleTimeout,
		"shutdown": c.Server.ShutdownTimeout,
	}
	for name, d := range timeouts {
		if d <= 0 {
			return fmt.Errorf("server %s timeout must be positive, got %s", name, d)
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging configuration: %w", err)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin is required")
	}

	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

// getenvDuration accepts Go duration strings ("15s") or plain seconds ("15")
func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
