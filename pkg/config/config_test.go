package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SEQUENCE_BACKEND", "")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "info", cfg.App.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_WRITE_TIMEOUT", "45")
	t.Setenv("HTTP_IDLE_TIMEOUT", "2m")
	t.Setenv("SEQUENCE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 45*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 2*time.Minute, cfg.HTTP.IdleTimeout)
	assert.Equal(t, SequenceRedis, cfg.Sequence.Backend)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SEQUENCE_BACKEND", "memcached")
	_, err := Load()
	assert.ErrorContains(t, err, "SEQUENCE_BACKEND")

	t.Setenv("SEQUENCE_BACKEND", "postgres")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "sweetbite", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/sweetbite?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://u:p@h/db"
	assert.Equal(t, "postgres://u:p@h/db", c.ConnectionString())
}
