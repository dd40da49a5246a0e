package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=9090\n" +
		"DB_DSN=postgres://localhost/shipping\n" +
		"SHIPPING_METHOD_ID=py_city_rates\n" +
		"CACHE_CITIES_TTL=30s\n" +
		"RATE_LIMIT_RPS=2.5\n" +
		"DB_MAX_CONNS=not-a-number\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	for _, key := range []string{"PORT", "DB_DSN", "SHIPPING_METHOD_ID", "CACHE_CITIES_TTL", "RATE_LIMIT_RPS", "DB_MAX_CONNS"} {
		key := key
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, old) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://localhost/shipping", cfg.DBUrl)
	assert.Equal(t, "py_city_rates", cfg.ShippingMethodID)
	assert.Equal(t, 30*time.Second, cfg.CacheCitiesTTL)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, "PY", cfg.ShippingCountry)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := &Config{ShippingMethodID: "paraguay_shipping"}
	assert.Error(t, cfg.Validate())

	cfg.DBUrl = "postgres://localhost/shipping"
	assert.NoError(t, cfg.Validate())

	cfg.ShippingMethodID = ""
	assert.Error(t, cfg.Validate())
}

func TestSnapshotsEnabled(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.SnapshotsEnabled())

	cfg.R2AccountID = "acct"
	cfg.R2AccessKeyID = "key"
	cfg.R2AccessKeySecret = "secret"
	cfg.R2BucketName = "settings"
	assert.True(t, cfg.SnapshotsEnabled())
}

func TestEnvHelpersFallback(t *testing.T) {
	t.Setenv("TEST_DURATION", "soon")
	t.Setenv("TEST_INT", "12")
	t.Setenv("TEST_FLOAT", "x")

	assert.Equal(t, time.Minute, getDurationEnv("TEST_DURATION", time.Minute))
	assert.Equal(t, 12, getIntEnv("TEST_INT", 1))
	assert.Equal(t, 1.5, getFloat64Env("TEST_FLOAT", 1.5))
	assert.Equal(t, "fallback", getEnv("TEST_MISSING_KEY", "fallback"))
}
