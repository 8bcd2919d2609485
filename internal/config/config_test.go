package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                      "development",
		Port:                     "8375",
		BodyLimitMB:              10,
		DBDriver:                 DriverPostgres,
		DBPassword:               "password",
		DBSSLMode:                "disable",
		DBMaxOpenConns:           25,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 5,
		EventsBackend:            EventsNone,
		TracingSampleRatio:       1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"zero body limit", func(c *Config) { c.BodyLimitMB = 0 }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, true},
		{"sqlite without path", func(c *Config) { c.DBDriver = DriverSQLite; c.DBSQLitePath = "" }, true},
		{"sqlite with path", func(c *Config) { c.DBDriver = DriverSQLite; c.DBSQLitePath = "x.db" }, false},
		{"zero open conns", func(c *Config) { c.DBMaxOpenConns = 0 }, true},
		{"unknown events backend", func(c *Config) { c.EventsBackend = "kafka" }, true},
		{"redis without url", func(c *Config) { c.EventsBackend = EventsRedis; c.RedisURL = "" }, true},
		{"amqp without exchange", func(c *Config) {
			c.EventsBackend = EventsAMQP
			c.AMQPURL = "amqp://localhost"
			c.AMQPExchange = ""
		}, true},
		{"sample ratio above one", func(c *Config) { c.TracingSampleRatio = 1.5 }, true},
		{"unknown exporter", func(c *Config) { c.TracingEnabled = true; c.TracingExporter = "zipkin" }, true},
		{"production default password", func(c *Config) { c.Env = "production"; c.DBSSLMode = "require" }, true},
		{"production disabled ssl", func(c *Config) { c.Env = "prod"; c.DBPassword = "s3cure-enough" }, true},
		{"production ok", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "s3cure-enough"
			c.DBSSLMode = "verify-full"
		}, false},
		{"production sqlite skips postgres checks", func(c *Config) {
			c.Env = "production"
			c.DBDriver = DriverSQLite
			c.DBSQLitePath = "feed.db"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "  SQLite ")
	t.Setenv("DB_SQLITE_PATH", "file::memory:")
	t.Setenv("EVENTS_BACKEND", "REDIS")
	t.Setenv("PORT", "9999")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, EventsRedis, cfg.EventsBackend)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, "socialfeed.events", cfg.AMQPExchange)
}

func TestLoadConfig_MissingProfileFile(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "staging-does-not-exist")

	_, err := LoadConfig()
	assert.Error(t, err)
}
