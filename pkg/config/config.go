// Package config loads service configuration from defaults, an optional
// YAML file and NGWP_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/mchmarny/ngwp/pkg/server"
	"github.com/mchmarny/ngwp/pkg/validation"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "NGWP_"

// ConfigPathEnvVar overrides the config file path when no path is passed to Load.
const ConfigPathEnvVar = EnvPrefix + "CONFIG"

// DefaultConfigPaths are searched in order when no config path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/ngwp/config.yaml",
}

// Config is the service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
	Data     DataConfig     `koanf:"data"`
	Widget   WidgetConfig   `koanf:"widget"`
	Security SecurityConfig `koanf:"security"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	BaseURL         string        `koanf:"base_url" validate:"required,url"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	MaxHeaderBytes  int           `koanf:"max_header_bytes" validate:"gt=0"`
	TLSCertFile     string        `koanf:"tls_cert_file" validate:"required_with=TLSKeyFile"`
	TLSKeyFile      string        `koanf:"tls_key_file" validate:"required_with=TLSCertFile"`
}

// TLSEnabled reports whether both TLS files are set.
func (c ServerConfig) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn warning error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// DataConfig points at the site snapshot.
type DataConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// WidgetConfig holds the widget output templates keyed by widget class name.
type WidgetConfig struct {
	Templates map[string]string `koanf:"templates"`
}

// SecurityConfig configures CORS and rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            server.DefaultPort,
			BaseURL:         fmt.Sprintf("http://localhost:%d/wp-json", server.DefaultPort),
			ReadTimeout:     server.DefaultReadTimeout,
			WriteTimeout:    server.DefaultWriteTimeout,
			IdleTimeout:     server.DefaultIdleTimeout,
			ShutdownTimeout: server.DefaultShutdownTimeout,
			MaxHeaderBytes:  server.DefaultMaxHeaderBytes,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Data: DataConfig{
			Path: "site.yaml",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
	}
}

// Load layers defaults, the YAML file at path (or the first file found via
// NGWP_CONFIG and DefaultConfigPaths when path is empty) and NGWP_* variables,
// then validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validation.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}

	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values of slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := make([]string, 0)
		for p := range strings.SplitSeq(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}

		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"port":                "server.port",
	"base_url":            "server.base_url",
	"read_timeout":        "server.read_timeout",
	"write_timeout":       "server.write_timeout",
	"idle_timeout":        "server.idle_timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"max_header_bytes":    "server.max_header_bytes",
	"tls_cert_file":       "server.tls_cert_file",
	"tls_key_file":        "server.tls_key_file",
	"log_level":           "log.level",
	"log_format":          "log.format",
	"data_path":           "data.path",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"rate_limit_disabled": "security.rate_limit_disabled",
}

// envTransformFunc maps NGWP_LOG_LEVEL to log.level and so on.
// Unknown variables map to "" and are skipped.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return envMappings[key]
}
