package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string // "text" or "json"
	Environment string // "dev" or "prod"
	Version     string
	APIKey      string // optional; when set, /api routes require it
	LogDir      string // empty = stdout only

	// TrustedProxies may set X-Forwarded-For
	TrustedProxies []string

	GameConfigPath string // empty = embedded defaults only
	CatalogPath    string // empty = embedded catalog

	SessionCacheSize int
	SessionTTL       time.Duration
	AutoTickInterval time.Duration // 0 disables the server-side tick worker

	EventMaxRetries int
	EventRetryDelay time.Duration
	DeadLetterPath  string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:      strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment:    strings.ToLower(getEnv(EnvEnvironment, DefaultEnvironment)),
		Version:        getEnv(EnvVersion, DefaultVersion),
		APIKey:         getEnv(EnvAPIKey, ""),
		GameConfigPath: getEnv(EnvGameConfigPath, ""),
		CatalogPath:    getEnv(EnvCatalogPath, ""),
		DeadLetterPath: getEnv(EnvDeadLetterPath, DefaultDeadLetterPath),
		LogDir:         getEnv(EnvLogDir, ""),
		TrustedProxies: splitList(getEnv(EnvTrustedProxies, "")),
	}

	var err error
	if cfg.Port, err = getEnvInt(EnvPort, DefaultPort); err != nil {
		return nil, err
	}
	if cfg.SessionCacheSize, err = getEnvInt(EnvSessionCacheSize, DefaultSessionCacheSize); err != nil {
		return nil, err
	}
	if cfg.EventMaxRetries, err = getEnvInt(EnvEventMaxRetries, DefaultEventMaxRetries); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getEnvDuration(EnvSessionTTL, DefaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.AutoTickInterval, err = getEnvDuration(EnvAutoTickInterval, 0); err != nil {
		return nil, err
	}
	if cfg.EventRetryDelay, err = getEnvDuration(EnvEventRetryDelay, DefaultEventRetryDelay); err != nil {
		return nil, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid %s value: %d", EnvPort, cfg.Port)
	}
	if cfg.SessionCacheSize <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", EnvSessionCacheSize, cfg.SessionCacheSize)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "prod" || c.Environment == "production"
}

// splitList parses a comma separated list, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, v)
	}
	return v, nil
}
