package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort       = 3000
	DefaultMaxUploadBytes = 16 << 20 // 16 MiB
	DefaultStreamInterval = 5 * time.Second
)

// Config holds the configuration parsed from the `server:` section of
// config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all service settings.
type ServerConfig struct {
	// HTTPPort is the port the HTTP API listens on (default 3000).
	HTTPPort int `yaml:"http_port"`

	// Auth configures API-key gating of the upload endpoint.
	Auth AuthConfig `yaml:"auth"`

	// Upload controls CSV upload limits.
	Upload UploadConfig `yaml:"upload"`

	// Stream controls the WebSocket broadcast loop.
	Stream StreamConfig `yaml:"stream"`

	// Watch configures the optional CSV file auto-ingest source.
	Watch WatchConfig `yaml:"watch"`

	// Webhooks are notified after each successful ingest.
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// AuthConfig controls authentication of upload requests.
type AuthConfig struct {
	// Mode is one of: apikey | none. Empty means none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the expected
	// API key. Used when Mode == "apikey".
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header the key is read from.
	// Defaults to "x-api-key" if empty.
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// UploadConfig controls CSV upload handling.
type UploadConfig struct {
	// MaxBytes caps the upload request body size. Default: 16 MiB.
	MaxBytes int64 `yaml:"max_bytes"`
}

// StreamConfig controls the WebSocket generation stream.
type StreamConfig struct {
	// Interval is how often the current generation is broadcast to connected
	// clients. Default: 5s.
	Interval Duration `yaml:"interval"`
}

// WatchConfig configures file-based ingestion.
type WatchConfig struct {
	// Path is a CSV file to ingest on startup and re-ingest whenever it
	// changes. Empty disables the watcher.
	Path string `yaml:"path"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: slack | teams | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable that holds the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// Duration is a time.Duration that unmarshals from YAML strings like "5s"
// or from plain integers (interpreted as seconds).
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var secs int64
	if err := value.Decode(&secs); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Load reads and parses the config file at path. Missing fields are filled
// with defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config populated with default values. Used directly when
// no config file exists, so the binary runs with zero setup.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
			Upload: UploadConfig{
				MaxBytes: DefaultMaxUploadBytes,
			},
			Stream: StreamConfig{
				Interval: Duration(DefaultStreamInterval),
			},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", cfg.Server.Auth.Mode)
	}
	if cfg.Server.Upload.MaxBytes <= 0 {
		return fmt.Errorf("server.upload.max_bytes must be positive")
	}
	if cfg.Server.Stream.Interval <= 0 {
		return fmt.Errorf("server.stream.interval must be positive")
	}
	for i, wh := range cfg.Server.Webhooks {
		switch wh.Type {
		case "slack", "teams", "http":
		default:
			return fmt.Errorf("server.webhooks[%d].type %q unknown: want slack|teams|http", i, wh.Type)
		}
	}
	return nil
}
