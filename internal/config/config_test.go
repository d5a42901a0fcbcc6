package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.GoEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, BackendMemory, cfg.DBBackend)
	assert.False(t, cfg.MockLatency)
	assert.Equal(t, 2*time.Second, cfg.ScanDetectDelay)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)

	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("GO_ENV", "production")
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("DB_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/winecellar")
	t.Setenv("MOCK_LATENCY", "true")
	t.Setenv("SCAN_DETECT_DELAY", "500ms")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.Equal(t, BackendPostgres, cfg.DBBackend)
	assert.True(t, cfg.MockLatency)
	assert.Equal(t, 500*time.Millisecond, cfg.ScanDetectDelay)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProduction())

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_BadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	t.Run("BadInt", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "not-a-port")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("BadBool", func(t *testing.T) {
		t.Setenv("MOCK_LATENCY", "perhaps")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("BadDuration", func(t *testing.T) {
		t.Setenv("SCAN_DETECT_DELAY", "fast")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			GoEnv:          "development",
			HTTPPort:       8080,
			DBBackend:      BackendMemory,
			JWTSecret:      testSecret,
			LogLevel:       "debug",
			LogFormat:      "text",
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		}
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		cfg := valid()
		cfg.DBBackend = "sqlite"
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "DB_BACKEND"))
	})

	t.Run("PostgresNeedsURL", func(t *testing.T) {
		cfg := valid()
		cfg.DBBackend = BackendPostgres
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	})

	t.Run("ShortSecret", func(t *testing.T) {
		cfg := valid()
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		cfg := valid()
		cfg.LogLevel = "verbose"
		assert.Error(t, cfg.Validate())
	})
}
