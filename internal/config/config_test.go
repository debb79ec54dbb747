package config_test

import (
	"testing"
	"time"

	"toystore/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg := config.FromViper(v)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 72*time.Hour, cfg.CartTTL)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.True(t, cfg.SeedData)
}

func TestFromViper_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("SEED_DATA", "false")

	v := viper.New()
	config.SetDefaults(v)
	v.AutomaticEnv()

	cfg := config.FromViper(v)

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.SeedData)
}
