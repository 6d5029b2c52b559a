package cli

import (
	"os"
	"time"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
	// Timeout bounds each API request; event streams are not limited
	Timeout time.Duration
}

// DefaultConfig reads FLASHPUZZLE_* environment overrides
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("FLASHPUZZLE_SERVER", "http://localhost:8080"),
		Output:    getEnvOrDefault("FLASHPUZZLE_OUTPUT", "text"),
		Timeout:   durationEnvOrDefault("FLASHPUZZLE_TIMEOUT", 30*time.Second),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// durationEnvOrDefault ignores values time.ParseDuration rejects
func durationEnvOrDefault(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultVal
}
