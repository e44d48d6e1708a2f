package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := load(env(nil))

		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, ":8000", cfg.Addr())
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	})

	t.Run("environment overrides", func(t *testing.T) {
		cfg, err := load(env(map[string]string{
			"PORT":                   "9090",
			"CORS_ALLOWED_ORIGIN":    "https://editor.example.com, http://localhost:5173",
			"CORS_ALLOW_CREDENTIALS": "false",
			"LOG_LEVEL":              "DEBUG",
			"LOG_FORMAT":             "json",
			"MAX_BODY_BYTES":         "1024",
			"READ_TIMEOUT":           "2s",
			"WRITE_TIMEOUT":          "3s",
			"SHUTDOWN_TIMEOUT":       "1m",
		}))

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, []string{"https://editor.example.com", "http://localhost:5173"}, cfg.AllowedOrigins)
		assert.False(t, cfg.AllowCredentials)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, int64(1024), cfg.MaxBodyBytes)
		assert.Equal(t, 2*time.Second, cfg.ReadTimeout)
		assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
		assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
	})

	t.Run("yaml file with environment on top", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
port: 8081
allowed_origins:
  - "*"
log_level: warn
read_timeout: 5s
`), 0o600))

		cfg, err := load(env(map[string]string{
			"CONFIG_FILE": path,
			"PORT":        "8082",
		}))

		require.NoError(t, err)
		assert.Equal(t, 8082, cfg.Port)
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
		assert.Equal(t, "auto", cfg.LogFormat)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := load(env(map[string]string{"CONFIG_FILE": filepath.Join(t.TempDir(), "nope.yaml")}))

		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("unknown yaml field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("prot: 8081\n"), 0o600))

		_, err := load(env(map[string]string{"CONFIG_FILE": path}))

		assert.ErrorContains(t, err, "failed to decode config file")
	})

	invalid := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"non numeric port", map[string]string{"PORT": "http"}, "invalid PORT"},
		{"port out of range", map[string]string{"PORT": "70000"}, "invalid config"},
		{"unknown log level", map[string]string{"LOG_LEVEL": "loud"}, "invalid config"},
		{"unknown log format", map[string]string{"LOG_FORMAT": "xml"}, "invalid config"},
		{"bad credentials flag", map[string]string{"CORS_ALLOW_CREDENTIALS": "maybe"}, "invalid CORS_ALLOW_CREDENTIALS"},
		{"bad body limit", map[string]string{"MAX_BODY_BYTES": "0"}, "invalid config"},
		{"bad timeout", map[string]string{"READ_TIMEOUT": "soon"}, "invalid READ_TIMEOUT"},
		{"empty origin list", map[string]string{"CORS_ALLOWED_ORIGIN": " , "}, "invalid config"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(env(tt.vars))

			assert.ErrorContains(t, err, tt.want)
		})
	}
}
