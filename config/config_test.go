package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = strings.Repeat("ab", 32)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENCRYPTION_KEY", testKey)
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "./data/sigma.db", cfg.Database.Path)
	assert.Equal(t, 72*time.Hour, cfg.JWT.TokenTTL)
	assert.False(t, cfg.JWT.CookieSecure)
	assert.Equal(t, int64(2<<20), cfg.Upload.MaxSize)
	assert.False(t, cfg.Email.Enabled())
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("JWT_TOKEN_TTL_HOURS", "1")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("RESEND_API_KEY", "re_123")
	t.Setenv("RESEND_FROM", "noreply@academy.example")
	t.Setenv("APP_URL", "https://academy.example/")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 172.16.0.0/12")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, time.Hour, cfg.JWT.TokenTTL)
	assert.True(t, cfg.JWT.CookieSecure)
	assert.True(t, cfg.Email.Enabled())
	assert.Equal(t, "https://academy.example", cfg.Email.AppURL)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.Server.TrustedProxies)
}

func TestFromEnvRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENCRYPTION_KEY", testKey)

	_, err := fromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestFromEnvRequiresEncryptionKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("ENCRYPTION_KEY", "short")

	_, err := fromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENCRYPTION_KEY")
}

func TestFromEnvInvalidNumbers(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "JWT_TOKEN_TTL_HOURS", "UPLOAD_MAX_SIZE", "COOKIE_SECURE"} {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "nope")

			_, err := fromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestFromEnvRejectsNonPositiveTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TOKEN_TTL_HOURS", "0")

	_, err := fromEnv()
	assert.Error(t, err)
}

func TestLoadDatabaseWithoutSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_PATH", "/tmp/sigma-seed.db")

	assert.Equal(t, "/tmp/sigma-seed.db", LoadDatabase().Path)
}
