package config

import (
	"fmt"
	"os"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// ValidateEnv checks the .env schema version when one is declared.
// Every other variable has a default.
func ValidateEnv() error {
	schemaVersion := os.Getenv(EnvSchemaVersion)
	if schemaVersion != "" && schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("%s mismatch: expected %s, got %s - your .env file may be outdated",
			EnvSchemaVersion, ExpectedEnvSchemaVersion, schemaVersion)
	}
	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues
func ValidateEnvWithWarnings(cfg *Config) ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if cfg.APIKey == "" && cfg.IsProduction() {
		warnings = append(warnings, "API_KEY is not set - session endpoints are unauthenticated")
	}
	if cfg.APIKey == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if cfg.AutoTickInterval > 0 && cfg.AutoTickInterval < MinAutoTickInterval {
		warnings = append(warnings, fmt.Sprintf("AUTO_TICK_INTERVAL %s is very short; clients that send their own ticks will double-advance timers", cfg.AutoTickInterval))
	}

	return warnings, nil
}
