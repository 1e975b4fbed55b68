package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

// clearEnv unsets keys for the duration of the test and restores their prior
// state afterwards, including anything a loaded .env file wrote.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		k := k
		prev, had := os.LookupEnv(k)
		require.NoError(t, os.Unsetenv(k))
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(k, prev)
				return
			}
			_ = os.Unsetenv(k)
		})
	}
}

var envFileKeys = []string{"JWT_SECRET", "PORT", "REDIS_ADDR"}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, "PORT", "REDIS_ADDR", "TOKEN_TTL", "CORS_ORIGINS", "TRUSTED_PROXIES")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(context.Background(), missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 10*time.Second, cfg.Mongo.Timeout)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_RequiresSecret(t *testing.T) {
	clearEnv(t, "JWT_SECRET")

	_, err := Load(context.Background(), missingEnvFile(t))
	require.Error(t, err)
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nPORT=7000\nREDIS_ADDR=localhost:6379\n"), 0o600))

	clearEnv(t, envFileKeys...)
	require.NoError(t, os.Setenv("JWT_SECRET", "from-env"))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "7000", cfg.Port)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "0s")

	_, err := Load(context.Background(), missingEnvFile(t))
	require.Error(t, err)
}

func TestLoad_ParsesOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,https://erp.example.com")

	cfg, err := Load(context.Background(), missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://erp.example.com"}, cfg.CORS.AllowOrigins)
}

func TestLoad_EnvFileValuesDoNotOutliveTheTest(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nPORT=7000\nREDIS_ADDR=localhost:6379\n"), 0o600))

	before := map[string]string{}
	for _, k := range envFileKeys {
		before[k] = os.Getenv(k)
	}

	t.Run("load", func(t *testing.T) {
		clearEnv(t, envFileKeys...)
		_, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "7000", os.Getenv("PORT"))
	})

	for _, k := range envFileKeys {
		assert.Equal(t, before[k], os.Getenv(k), "%s leaked out of the subtest", k)
	}
}

func TestLoad_ParsesTrustedProxies(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.0/24")

	cfg, err := Load(context.Background(), missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.0/24"}, cfg.TrustedProxies)
}
