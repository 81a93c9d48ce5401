package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsEnvironmentWithFallbacks(t *testing.T) {
	t.Setenv("DB_CONNECTION_STRING", "postgres://impes@localhost/impes")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("WORKFLOW_CACHE_TTL", "90s")
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, 90*time.Second, cfg.Workflow.RegistryCacheTTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "local", cfg.App.EventBus)
	assert.False(t, cfg.IsProduction())
	require.NoError(t, cfg.Validate())
}

func TestValidate_ReportsEveryMissingSetting(t *testing.T) {
	cfg := &Config{App: AppConfig{EventBus: "kafka"}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_CONNECTION_STRING")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "EVENT_BUS")
}
