// Package config loads server settings from defaults, an optional YAML file
// and environment variables, in that order of precedence.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

type Config struct {
	Port             int           `yaml:"port" validate:"min=1,max=65535"`
	AllowedOrigins   []string      `yaml:"allowed_origins" validate:"min=1,dive,required"`
	AllowCredentials bool          `yaml:"allow_credentials"`
	LogLevel         string        `yaml:"log_level" validate:"oneof=trace debug info warn error off"`
	LogFormat        string        `yaml:"log_format" validate:"oneof=auto json text"`
	MaxBodyBytes     int64         `yaml:"max_body_bytes" validate:"min=1"`
	ReadTimeout      time.Duration `yaml:"read_timeout" validate:"min=0"`
	WriteTimeout     time.Duration `yaml:"write_timeout" validate:"min=0"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout" validate:"min=0"`
}

func Default() *Config {
	return &Config{
		Port:             8000,
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		LogLevel:         "info",
		LogFormat:        "auto",
		MaxBodyBytes:     10 << 20,
		ReadTimeout:      15 * time.Second,
		WriteTimeout:     15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load builds the configuration. A YAML file is read when CONFIG_FILE is set;
// environment variables override it.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path := getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.decodeYAML(data); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) decodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())
	return dec.Decode(c)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}

	if v := getenv("CORS_ALLOWED_ORIGIN"); v != "" {
		c.AllowedOrigins = splitList(v)
	}

	if v := getenv("CORS_ALLOW_CREDENTIALS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CORS_ALLOW_CREDENTIALS %q: %w", v, err)
		}
		c.AllowCredentials = b
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}

	if v := getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(v)
	}

	if v := getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_BODY_BYTES %q: %w", v, err)
		}
		c.MaxBodyBytes = n
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"READ_TIMEOUT", &c.ReadTimeout},
		{"WRITE_TIMEOUT", &c.WriteTimeout},
		{"SHUTDOWN_TIMEOUT", &c.ShutdownTimeout},
	}
	for _, d := range durations {
		v := getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.key, v, err)
		}
		*d.dst = parsed
	}

	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
