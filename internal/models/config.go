package models

// Config holds the application configuration
type Config struct {
	DataDir  string         `yaml:"data_dir"`
	LogLevel string         `yaml:"log_level"`
	AckText  string         `yaml:"ack_text"`
	Telegram TelegramConfig `yaml:"telegram"`
	Media    MediaConfig    `yaml:"media"`
	Retry    RetryConfig    `yaml:"retry"`
	Server   ServerConfig   `yaml:"server"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// TelegramConfig holds bot transport related configurations
type TelegramConfig struct {
	PollTimeoutSec int `yaml:"poll_timeout_sec"`
}

// MediaConfig holds attachment fetching related configurations
type MediaConfig struct {
	FetchTimeoutSec int `yaml:"fetch_timeout_sec"`
}

// RetryConfig holds transport reconnect backoff configurations.
// Attachment fetches are single-attempt and never use these.
type RetryConfig struct {
	InitialBackoffMs int `yaml:"initial_backoff_ms"`
	MaxBackoffMs     int `yaml:"max_backoff_ms"`
	MaxAttempts      int `yaml:"max_attempts"`
}

// ServerConfig holds the health/metrics HTTP server configurations
type ServerConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	IdleTimeoutSec  int `yaml:"idle_timeout_sec"`
}

// TracingConfig holds OpenTelemetry configurations
type TracingConfig struct {
	Enabled        bool    `yaml:"enabled"`
	ServiceName    string  `yaml:"service_name"`
	ServiceVersion string  `yaml:"service_version"`
	Environment    string  `yaml:"environment"`
	OTLPEndpoint   string  `yaml:"otlp_endpoint"`
	SampleRate     float64 `yaml:"sample_rate"`
	UseStdout      bool    `yaml:"use_stdout"`
}

type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string {
	return e.Message
}
