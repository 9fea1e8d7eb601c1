// internal/common/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Leads)
	assert.Equal(t, "memory", cfg.Storage.Offers)
	assert.Equal(t, 300, cfg.OTP.TTLSeconds)
	assert.Equal(t, 5, cfg.OTP.MaxVerifyAttempts)
	assert.Equal(t, 6, cfg.OTP.MaxResendsPerHour)
	assert.Equal(t, "log", cfg.SMS.Provider)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9090
	cfg.OTP.TTLSeconds = 120
	applyDefaults(cfg)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 120, cfg.OTP.TTLSeconds)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults pass", func(t *testing.T) {
		require.NoError(t, validateConfig(valid()))
	})

	t.Run("unknown lead backend", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Leads = "dynamo"
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("unknown offer backend", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Offers = "mongo"
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("redis backend needs address", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Leads = "redis"
		assert.Error(t, validateConfig(cfg))

		cfg.Database.Redis.Address = "localhost:6379"
		assert.NoError(t, validateConfig(cfg))
	})

	t.Run("postgres backend needs host", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Offers = "postgres"
		assert.Error(t, validateConfig(cfg))

		cfg.Database.Postgres.Host = "localhost"
		assert.NoError(t, validateConfig(cfg))
	})

	t.Run("sns provider needs region", func(t *testing.T) {
		cfg := valid()
		cfg.SMS.Provider = "sns"
		assert.Error(t, validateConfig(cfg))

		cfg.SMS.AWSRegion = "ap-south-1"
		assert.NoError(t, validateConfig(cfg))
	})

	t.Run("bypass code rejected in production", func(t *testing.T) {
		cfg := valid()
		cfg.OTP.DevBypassCode = "424242"
		cfg.App.Environment = "development"
		require.NoError(t, validateConfig(cfg))

		cfg.App.Environment = "production"
		assert.Error(t, validateConfig(cfg))
	})
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.internal",
		Port:     5432,
		Database: "leadgen",
		User:     "app",
		Password: "secret",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5432 user=app password=secret dbname=leadgen sslmode=require",
		cfg.GetDSN(),
	)
}
