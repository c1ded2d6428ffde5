// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"libraryinventory/internal/storage"
)

// Environment variables read by Load.
const (
	EnvCatalogPath  = "LIBRARY_CATALOG_PATH"
	EnvLogLevel     = "LIBRARY_LOG_LEVEL"
	EnvLogFile      = "LIBRARY_LOG_FILE"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// Config holds the settings of one library session.
type Config struct {
	CatalogPath  string
	LogLevel     string
	LogFile      string // empty means stderr
	OTLPEndpoint string // empty disables trace export
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		CatalogPath:  getEnv(EnvCatalogPath, storage.DefaultPath),
		LogLevel:     getEnv(EnvLogLevel, "info"),
		LogFile:      getEnv(EnvLogFile, ""),
		OTLPEndpoint: getEnv(EnvOTLPEndpoint, ""),
	}
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Validate checks that the configuration can be used.
func (c Config) Validate() error {
	if strings.TrimSpace(c.CatalogPath) == "" {
		return fmt.Errorf("catalog path must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
