package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client and the dev server
type Config struct {
	AppMode string
	Client  ClientConfig
	Server  ServerConfig
	Logging LoggingConfig
}

// ClientConfig holds settings for the portal client
type ClientConfig struct {
	// APIBaseURL is the base path of the remote portal API,
	// including the /api prefix.
	APIBaseURL string
	// TokenFile is the durable slot holding the bearer token.
	TokenFile string
}

// ServerConfig holds settings for the bundled dev server
type ServerConfig struct {
	Port string
	JWT  JWTConfig
	// OverdueSpec is the cron spec for the overdue-task sweep.
	OverdueSpec string
}

// JWTConfig holds JWT settings for the dev server
type JWTConfig struct {
	Secret        string
	ExpiryMinutes int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Development bool
}

// Load reads configuration from a .env file and environment variables
func Load() (*Config, error) {
	// Ignore a missing .env; environment variables still apply.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	expiryMins, _ := strconv.Atoi(getEnv("JWT_EXPIRY_MINUTES", "60"))
	logDev, _ := strconv.ParseBool(getEnv("LOG_DEV", strconv.FormatBool(appMode == "dev")))

	config := &Config{
		AppMode: appMode,
		Client: ClientConfig{
			APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080/api"),
			TokenFile:  getEnv("TOKEN_FILE", defaultTokenFile()),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			JWT: JWTConfig{
				Secret:        getEnv("JWT_SECRET", "dev_secret"),
				ExpiryMinutes: expiryMins,
			},
			OverdueSpec: getEnv("OVERDUE_CRON", "*/5 * * * *"),
		},
		Logging: LoggingConfig{Development: logDev},
	}

	return config, nil
}

// defaultTokenFile places the token under the user's home directory
func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ftms-portal-token"
	}
	return filepath.Join(home, ".ftms-portal", "token")
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}
