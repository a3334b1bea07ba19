// Package config provides configuration management for the application
package config

import (
	"os"
	"strconv"
	"time"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	// AdminToken guards the operator room-deletion endpoint; empty
	// disables it entirely
	AdminToken string
}

// RoomConfig holds room-code generation settings
type RoomConfig struct {
	// CodeLength is the number of uppercase letters in a room code
	CodeLength int
	// CodeAttempts bounds collision retries before giving up
	CodeAttempts int
}

// RedisConfig holds Redis/Valkey configuration
type RedisConfig struct {
	Enabled bool
	// URI is prioritized if provided, otherwise individual connection parameters are used
	URI       string
	Host      string
	Port      string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
	// TTL for rooms (0 means no expiration)
	RoomTTL time.Duration
}

// GetServerConfig loads server configuration from environment variables
func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:       getEnv("PORT", "8080"),
		AdminToken: getEnv("ADMIN_TOKEN", ""),
	}
}

// GetRoomConfig loads room-code settings from environment variables
func GetRoomConfig() RoomConfig {
	length, _ := strconv.Atoi(getEnv("ROOM_CODE_LENGTH", "4"))
	if length < 1 {
		length = 4
	}

	attempts, _ := strconv.Atoi(getEnv("ROOM_CODE_ATTEMPTS", "100"))
	if attempts < 1 {
		attempts = 100
	}

	return RoomConfig{
		CodeLength:   length,
		CodeAttempts: attempts,
	}
}

// GetRedisConfig loads Redis/Valkey configuration from environment variables
func GetRedisConfig() RedisConfig {
	// Parse TTL from environment variable (in hours)
	ttlHours, _ := strconv.Atoi(getEnv("REDIS_ROOM_TTL_HOURS", "24"))
	ttl := time.Duration(ttlHours) * time.Hour

	// Parse DB index
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return RedisConfig{
		Enabled:   getEnvBool("REDIS_ENABLED", false),
		URI:       getEnv("REDIS_URI_VROOMS", ""),
		Host:      getEnv("REDIS_HOST_VROOMS", getEnv("REDIS_ADDRESS", "localhost")),
		Port:      getEnv("REDIS_PORT_VROOMS", "6379"),
		Username:  getEnv("REDIS_USERNAME_VROOMS", ""),
		Password:  getEnv("REDIS_PASSWORD_VROOMS", getEnv("REDIS_PASSWORD", "")),
		DB:        db,
		KeyPrefix: getEnv("REDIS_KEY_PREFIX", "vrooms:"),
		RoomTTL:   ttl,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool retrieves a boolean environment variable
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
