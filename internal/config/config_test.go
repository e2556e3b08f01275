package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.read_timeout", envKey("LOCALLIBRARY_SERVER__READ_TIMEOUT"))
	assert.Equal(t, "primary.env", envKey("LOCALLIBRARY_PRIMARY__ENV"))
	assert.Equal(t, "observability.new_relic.license_key", envKey("LOCALLIBRARY_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LOCALLIBRARY_DATABASE__DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, cfg.Primary.Env, cfg.Observability.Environment)
	assert.False(t, cfg.Observability.NewRelicEnabled())
	assert.False(t, cfg.RemindersEnabled())
	assert.Equal(t, "Local Library <library@example.com>", cfg.Email.From)
}

func TestLoadConfigEmailFrom(t *testing.T) {
	tests := []struct {
		from    string
		wantErr bool
	}{
		{from: "desk@example.com"},
		{from: "Front Desk <desk@example.com>"},
		{from: "Front Desk", wantErr: true},
		{from: "desk@", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.from, func(t *testing.T) {
			t.Setenv("LOCALLIBRARY_DATABASE__DRIVER", "memory")
			t.Setenv("LOCALLIBRARY_EMAIL__FROM", tt.from)

			cfg, err := LoadConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.from, cfg.Email.From)
		})
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("LOCALLIBRARY_PRIMARY__ENV", "production")
	t.Setenv("LOCALLIBRARY_SERVER__PORT", "8080")
	t.Setenv("LOCALLIBRARY_DATABASE__DRIVER", "mongo")
	t.Setenv("LOCALLIBRARY_DATABASE__MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("LOCALLIBRARY_REDIS__ADDRESS", "localhost:6379")
	t.Setenv("LOCALLIBRARY_EMAIL__RESEND_API_KEY", "re_test")
	t.Setenv("LOCALLIBRARY_EMAIL__LIBRARIAN", "desk@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.MongoURI)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.RemindersEnabled())
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("LOCALLIBRARY_DATABASE__DRIVER", "sqlite")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigMongoRequiresURI(t *testing.T) {
	t.Setenv("LOCALLIBRARY_DATABASE__DRIVER", "mongo")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestObservabilityValidate(t *testing.T) {
	c := DefaultObservabilityConfig()
	require.NoError(t, c.Validate())

	c.Logging.Level = "verbose"
	assert.Error(t, c.Validate())

	c = DefaultObservabilityConfig()
	c.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, c.Validate())
}

func TestGetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "warn"
	assert.Equal(t, "warn", c.GetLogLevel())
}

func TestRedacted(t *testing.T) {
	cfg := Defaults()
	cfg.Database.Password = "hunter2"
	cfg.Email.ResendAPIKey = "re_123"
	cfg.Observability = DefaultObservabilityConfig()
	cfg.Observability.NewRelic.LicenseKey = "nr-key"

	out := cfg.Redacted()

	assert.Equal(t, "******", out.Database.Password)
	assert.Equal(t, "******", out.Email.ResendAPIKey)
	assert.Equal(t, "******", out.Observability.NewRelic.LicenseKey)
	assert.Empty(t, out.Database.MongoURI)

	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.Equal(t, "nr-key", cfg.Observability.NewRelic.LicenseKey)
}
