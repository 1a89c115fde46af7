package config

import "time"

// Environment variable names
const (
	EnvPort             = "PORT"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvEnvironment      = "ENVIRONMENT"
	EnvVersion          = "VERSION"
	EnvAPIKey           = "API_KEY"
	EnvGameConfigPath   = "GAME_CONFIG_PATH"
	EnvCatalogPath      = "CATALOG_PATH"
	EnvSessionCacheSize = "SESSION_CACHE_SIZE"
	EnvSessionTTL       = "SESSION_TTL"
	EnvAutoTickInterval = "AUTO_TICK_INTERVAL"
	EnvEventMaxRetries  = "EVENT_MAX_RETRIES"
	EnvEventRetryDelay  = "EVENT_RETRY_DELAY"
	EnvDeadLetterPath   = "EVENT_DEAD_LETTER_PATH"
	EnvSchemaVersion    = "ENV_SCHEMA_VERSION"
	EnvTrustedProxies   = "TRUSTED_PROXIES"
	EnvLogDir           = "LOG_DIR"
)

// Defaults
const (
	DefaultPort             = 8080
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultEnvironment      = "dev"
	DefaultVersion          = "dev"
	DefaultSessionCacheSize = 1024
	DefaultSessionTTL       = 30 * time.Minute
	DefaultEventMaxRetries  = 3
	DefaultEventRetryDelay  = 100 * time.Millisecond
	DefaultDeadLetterPath   = "logs/event_deadletter.jsonl"

	// MinAutoTickInterval is the shortest tick period that does not warn
	MinAutoTickInterval = 10 * time.Millisecond
)
