package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Store StoreConfig
	Watch WatchConfig
	Scan  ScanConfig
}

// StoreConfig holds persistence-related configuration
type StoreConfig struct {
	DBPath string
}

// WatchConfig holds drop-directory watcher configuration
type WatchConfig struct {
	Roots       []string
	Debounce    time.Duration
	InitialScan bool
}

// ScanConfig holds extraction-related configuration
type ScanConfig struct {
	Currency string
	LogLevel string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Store: StoreConfig{
			DBPath: getEnv("RECIBOS_DB_PATH", "./recibos.db"),
		},
		Watch: WatchConfig{
			Roots:       getEnvAsList("RECIBOS_WATCH_DIRS", nil),
			Debounce:    getEnvAsDuration("RECIBOS_WATCH_DEBOUNCE", 500*time.Millisecond),
			InitialScan: getEnvAsBool("RECIBOS_WATCH_INITIAL_SCAN", true),
		},
		Scan: ScanConfig{
			Currency: getEnv("RECIBOS_CURRENCY", "VES"),
			LogLevel: getEnv("RECIBOS_LOG_LEVEL", "info"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if len(c.Scan.Currency) != 3 {
		return NewAppError("CONFIG_ERROR", "RECIBOS_CURRENCY must be a 3-letter code", ErrInvalidInput)
	}
	if c.Store.DBPath == "" {
		return NewAppError("CONFIG_ERROR", "RECIBOS_DB_PATH is required", ErrInvalidInput)
	}
	return nil
}
