// Package config provides configuration management functionality.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process configuration read from the environment
type Config struct {
	LogLevel         string
	Port             int
	DevMode          bool
	ParametersFile   string // Path to the parameters document
	ApiKey           string // Overrides api.key from the parameters document when set
	DisplayBridgeURL string // Empty disables the LED matrix bridge
}

// Load reads configuration from environment variables
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Port:             getEnvAsInt("GO_PORT", 8001),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		ParametersFile:   getEnv("TICKER_PARAMETERS_FILE", "parameters.json"),
		ApiKey:           getEnv("TICKER_API_KEY", ""),
		DisplayBridgeURL: getEnv("DISPLAY_BRIDGE_URL", ""),
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
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

// BridgeConfig holds configuration for the matrix bridge process
type BridgeConfig struct {
	LogLevel   string
	Port       int
	RouterAddr string // arduino-router, usually on the MCU host
}

// LoadBridge reads the matrix bridge configuration from environment variables
func LoadBridge() *BridgeConfig {
	_ = godotenv.Load()

	return &BridgeConfig{
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Port:       getEnvAsInt("MATRIX_BRIDGE_PORT", 8002),
		RouterAddr: getEnv("ROUTER_ADDR", "localhost:5555"),
	}
}
