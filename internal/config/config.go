package config

import (
	"os"

	"notegram/internal/constants"
	apperrors "notegram/internal/errors"
	"notegram/internal/models"
	"notegram/internal/security"
	"notegram/internal/tracing"

	"gopkg.in/yaml.v3"
)

var (
	ErrMissingDataDir = models.ConfigError{Message: "missing data directory"}
)

// LoadConfig reads the YAML configuration file, applies environment
// overrides and fills defaults. Bot credentials are never read from the
// file; they come from the environment at startup.
func LoadConfig(path string) (*models.Config, error) {
	// Validate config file path to prevent directory traversal
	if err := security.ValidateFilePath(path); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidConfig, "invalid config path")
	}

	file, err := os.ReadFile(path) // #nosec G304 - Path validated by security.ValidateFilePath above
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeMissingConfig, "failed to read config file")
	}

	var config models.Config
	if err := yaml.Unmarshal(file, &config); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidConfig, "failed to parse config file")
	}

	applyEnvironmentOverrides(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(c *models.Config) error {
	if c.DataDir == "" {
		return ErrMissingDataDir
	}

	if c.AckText == "" {
		c.AckText = "Saved."
	}
	if c.Telegram.PollTimeoutSec <= 0 {
		c.Telegram.PollTimeoutSec = constants.DefaultPollTimeoutSec
	}
	if c.Media.FetchTimeoutSec <= 0 {
		c.Media.FetchTimeoutSec = constants.DefaultFetchTimeoutSec
	}
	if c.Retry.InitialBackoffMs <= 0 {
		c.Retry.InitialBackoffMs = constants.DefaultRetryBackoffMs
	}
	if c.Retry.MaxBackoffMs <= 0 {
		c.Retry.MaxBackoffMs = constants.DefaultMaxBackoffMs
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = constants.DefaultMaxAttempts
	}
	if c.Server.Port <= 0 {
		c.Server.Port = constants.DefaultServerPort
	}
	if c.Server.ReadTimeoutSec <= 0 {
		c.Server.ReadTimeoutSec = constants.DefaultServerReadTimeoutSec
	}
	if c.Server.WriteTimeoutSec <= 0 {
		c.Server.WriteTimeoutSec = constants.DefaultServerWriteTimeoutSec
	}
	if c.Server.IdleTimeoutSec <= 0 {
		c.Server.IdleTimeoutSec = constants.DefaultServerIdleTimeoutSec
	}
	tracingDefaults := tracing.DefaultTracingConfig()
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = tracingDefaults.ServiceName
	}
	if c.Tracing.OTLPEndpoint == "" {
		c.Tracing.OTLPEndpoint = tracingDefaults.OTLPEndpoint
	}
	if c.Tracing.SampleRate <= 0 {
		c.Tracing.SampleRate = tracingDefaults.SampleRate
	}
	return nil
}

func applyEnvironmentOverrides(c *models.Config) {
	if dir := os.Getenv("NOTEGRAM_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if level := os.Getenv("NOTEGRAM_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}
