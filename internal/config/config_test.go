package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSQLiteDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "trivia-api", cfg.Name)
	assert.Equal(t, 10, cfg.Pagination.QuestionsPerPage)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "PATCH", "POST", "DELETE", "OPTIONS"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"Content-Type", "Authentication", "true"}, cfg.CORS.AllowedHeaders)
	assert.False(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadPostgresRequiresCredentials(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("PG_HOST", "localhost")

	_, err := Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PG_USER")
	assert.Contains(t, err.Error(), "PG_DATABASE")
	assert.NotContains(t, err.Error(), "PG_HOST")
}

func TestLoadPostgres(t *testing.T) {
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_USER", "trivia")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_DATABASE", "trivia")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://trivia:secret@db:5432/trivia?sslmode=disable", cfg.Postgres.DSN())
	assert.True(t, cfg.Redis.Enabled())
}

func TestValidateRejectsUnknownDriverAndPageSize(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("QUESTIONS_PER_PAGE", "0")

	_, err := Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "QUESTIONS_PER_PAGE")
}
