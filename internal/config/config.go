// Package config loads capsync configuration from the environment and an
// optional .env file, with viper handling precedence and defaults.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/campusmedia/capsync/pkg/errors"
)

// Config holds everything the CLI needs to reach the three systems of
// record.
type Config struct {
	// EDODSN is the Postgres DSN for the academic-records database.
	EDODSN string

	// SISDSN is the Postgres DSN for the student-information-system read
	// replica. Optional: instructor attributes fall back to EDO data when
	// unset.
	SISDSN string

	// CRMURL is the base URL of the capture CRM's REST API.
	CRMURL string

	// CRMToken is the bearer token for the CRM API.
	CRMToken string

	// CacheTTL bounds how long CRM snapshots are reused within a process.
	// Zero disables caching.
	CacheTTL time.Duration

	// LogLevel and LogFormat configure the logger (see pkg/logging).
	LogLevel  string
	LogFormat string
}

// Load reads configuration. A .env file in the working directory is loaded
// first if present; explicit environment variables win over it.
func Load() (*Config, error) {
	// Ignore a missing .env; it is a development convenience.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CAPSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("cache_ttl", "5m")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "auto")

	cfg := &Config{
		EDODSN:    v.GetString("edo_dsn"),
		SISDSN:    v.GetString("sis_dsn"),
		CRMURL:    v.GetString("crm_url"),
		CRMToken:  v.GetString("crm_token"),
		CacheTTL:  v.GetDuration("cache_ttl"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the required settings are present.
func (c *Config) Validate() error {
	if c.EDODSN == "" {
		return errors.NewConfigError("edo", "CAPSYNC_EDO_DSN is required", nil)
	}
	if c.CRMURL == "" {
		return errors.NewConfigError("crm", "CAPSYNC_CRM_URL is required", nil)
	}
	if c.CRMToken == "" {
		return errors.NewConfigError("crm", "CAPSYNC_CRM_TOKEN is required", nil)
	}
	return nil
}
