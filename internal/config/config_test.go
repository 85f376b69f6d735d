package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForDefaults(t *testing.T) {
	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.RunAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DBFileName)
	assert.Empty(t, cfg.DatabaseDSN)
	assert.Equal(t, 10*time.Second, cfg.DBConnectionTimeout)
	assert.Equal(t, "bookmarks_auth", cfg.AuthCookieName)
	assert.NotEmpty(t, cfg.AuthTokenSigningSecretKey)
	assert.Equal(t, 24*time.Hour, cfg.AuthTokenTTL)
	assert.Empty(t, cfg.TrustedSubnet)
}

func TestNewForEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "localhost:9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FILE_STORAGE_PATH", "/tmp/bookmarks.json")
	t.Setenv("DATABASE_DSN", "postgres://localhost/bookmarks")
	t.Setenv("AUTH_COOKIE_NAME", "session")
	t.Setenv("AUTH_TOKEN_TTL", "1h")
	t.Setenv("TRUSTED_SUBNET", "10.0.0.0/8")

	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, "localhost:9090", cfg.RunAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/bookmarks.json", cfg.DBFileName)
	assert.Equal(t, "postgres://localhost/bookmarks", cfg.DatabaseDSN)
	assert.Equal(t, "session", cfg.AuthCookieName)
	assert.Equal(t, time.Hour, cfg.AuthTokenTTL)
	assert.Equal(t, "10.0.0.0/8", cfg.TrustedSubnet)
}

func TestNewForInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		envName  string
		envValue string
	}{
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"malformed run address", "SERVER_ADDRESS", "no-port-here"},
		{"malformed trusted subnet", "TRUSTED_SUBNET", "not-a-cidr"},
		{"non-base64url signing key", "AUTH_TOKEN_SIGNING_SECRET_KEY", "!!!"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(test.envName, test.envValue)

			_, err := New(WithDisableFlagsParsing(true))
			assert.Error(t, err)
		})
	}
}
