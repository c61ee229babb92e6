package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	vars := map[string]string{
		"FEDERATION_PRIMARY__ENV":                      "local",
		"FEDERATION_SERVER__PORT":                      "8080",
		"FEDERATION_SERVER__READ_TIMEOUT":              "30",
		"FEDERATION_SERVER__WRITE_TIMEOUT":             "30",
		"FEDERATION_SERVER__IDLE_TIMEOUT":              "60",
		"FEDERATION_SERVER__CORS_ALLOWED_ORIGINS":      "http://localhost:3000",
		"FEDERATION_DATABASE__HOST":                    "localhost",
		"FEDERATION_DATABASE__PORT":                    "5432",
		"FEDERATION_DATABASE__USER":                    "postgres",
		"FEDERATION_DATABASE__PASSWORD":                "postgres",
		"FEDERATION_DATABASE__NAME":                    "federation",
		"FEDERATION_DATABASE__SSL_MODE":                "disable",
		"FEDERATION_DATABASE__MAX_OPEN_CONNS":          "10",
		"FEDERATION_DATABASE__MAX_IDLE_CONNS":          "5",
		"FEDERATION_DATABASE__CONN_MAX_LIFETIME":       "300",
		"FEDERATION_DATABASE__CONN_MAX_IDLE_TIME":      "60",
		"FEDERATION_DATABASE__STATEMENT_TIMEOUT":       "5000",
		"FEDERATION_REDIS__ADDRESS":                    "localhost:6379",
		"FEDERATION_AUTH__SECRET_KEY":                  "0123456789abcdef0123456789abcdef",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.host", envKey("FEDERATION_DATABASE__HOST"))
	assert.Equal(t, "database.statement_timeout", envKey("FEDERATION_DATABASE__STATEMENT_TIMEOUT"))
	assert.Equal(t, "observability.new_relic.license_key", envKey("FEDERATION_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Second, cfg.Database.StatementTimeoutDuration())
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.GetLogLevel())
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FEDERATION_DATABASE__HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfigShortSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FEDERATION_AUTH__SECRET_KEY", "short")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestGetLogLevelDefaults(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.True(t, cfg.IsProduction())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.False(t, cfg.IsProduction())
}
