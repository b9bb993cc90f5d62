// Package config holds runtime configuration for the bridge, assembled
// from environment variables with optional overrides from a config file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/nightshade/ue5-bridge/internal/mcp"
)

type Config struct {
	ClientID       string // unique per process, used for log correlation
	Endpoint       string // MCP endpoint URL
	RequestID      string // JSON-RPC id stamped on every request
	TimeoutSeconds int    // round-trip bound for a single tool call
	ScanArguments  bool   // scan outbound arguments for leaked secrets
	MockPort       int    // listen port for the local mock server
}

func NewConfig() *Config {
	return &Config{
		ClientID:       uuid.NewString(),
		Endpoint:       getEnv("NIGHTSHADE_ENDPOINT", mcp.DefaultEndpoint),
		RequestID:      getEnv("NIGHTSHADE_REQUEST_ID", mcp.DefaultRequestID),
		TimeoutSeconds: getEnvAsInt("NIGHTSHADE_TIMEOUT", 30),
		ScanArguments:  getEnv("NIGHTSHADE_SCAN", "true") == "true",
		MockPort:       getEnvAsInt("NIGHTSHADE_MOCK_PORT", 8787),
	}
}

// Load builds a Config from the environment, then overlays any values set
// in the file at path (TOML or YAML, by extension). An empty path skips
// the file entirely.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if v.IsSet("endpoint") {
		cfg.Endpoint = v.GetString("endpoint")
	}
	if v.IsSet("request_id") {
		cfg.RequestID = v.GetString("request_id")
	}
	if v.IsSet("timeout_seconds") {
		cfg.TimeoutSeconds = v.GetInt("timeout_seconds")
	}
	if v.IsSet("scan_arguments") {
		cfg.ScanArguments = v.GetBool("scan_arguments")
	}
	if v.IsSet("mock_port") {
		cfg.MockPort = v.GetInt("mock_port")
	}

	return cfg, nil
}

// Timeout returns TimeoutSeconds as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Helper function to read environment variables with defaults
func getEnvAsInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
