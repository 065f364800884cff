package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
env: staging
server:
  port: 8080
  trusted_proxies: ["10.0.0.0/8"]
database:
  uri: mongodb://db:27017
  dbname: bookings
jwt:
  secret: yaml-secret
rate_limit:
  window: 5m
  max: 50
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFromYAML(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.Server.TrustedProxies)
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 50, cfg.RateLimit.Max)
	assert.Equal(t, "memory", cfg.RateLimit.Store)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.Expire)
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "bookings")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultEnv, cfg.Env)
	assert.Equal(t, DefaultRateLimitWindow, cfg.RateLimit.Window)
	assert.Equal(t, DefaultRateLimitMax, cfg.RateLimit.Max)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRE", "7d")
	t.Setenv("RATE_LIMIT_WINDOW", "600000")
	t.Setenv("TRUSTED_PROXIES", "127.0.0.1, 192.168.0.0/16")

	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expire)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, []string{"127.0.0.1", "192.168.0.0/16"}, cfg.Server.TrustedProxies)
}

func TestAppEnvTakesPrecedenceOverNodeEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("NODE_ENV", "production")

	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Env)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "non-numeric port", env: map[string]string{"PORT": "abc"}},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "unknown store", env: map[string]string{"RATE_LIMIT_STORE": "etcd"}},
		{name: "redis store without redis", env: map[string]string{"RATE_LIMIT_STORE": "redis"}},
		{name: "bad window", env: map[string]string{"RATE_LIMIT_WINDOW": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(writeConfig(t, sampleYAML))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "database:\n  uri: mongodb://x\n  dbname: y\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Secret")
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"10m", 10 * time.Minute},
		{"30d", 30 * 24 * time.Hour},
		{"1500", 1500 * time.Millisecond},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDuration("xd")
	assert.Error(t, err)
}
