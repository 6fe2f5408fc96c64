package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("PGSQL_URL", "postgres://localhost/manna")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/manna", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, DefaultCategorizationConfig(), cfg.Categorization)
	assert.Equal(t, DefaultReconciliationConfig(), cfg.Reconciliation)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("BULK_BATCH_SIZE", "25")
	t.Setenv("AUTO_APPLY_CONFIDENCE", "0.9")
	t.Setenv("RECONCILE_DATE_WINDOW_DAYS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.manna.io, https://admin.manna.io")
	t.Setenv("JWT_EXPIRY_DURATION", "not-a-duration")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Categorization.BulkBatchSize)
	assert.InDelta(t, 0.9, cfg.Categorization.AutoApplyConfidence, 1e-9)
	assert.Equal(t, 3, cfg.Reconciliation.DateWindowDays)
	assert.Equal(t, []string{"https://app.manna.io", "https://admin.manna.io"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
}

func TestLoadConfig_InvalidBatchSizeFallsBack(t *testing.T) {
	viper.Reset()
	t.Setenv("BULK_BATCH_SIZE", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Categorization.BulkBatchSize)
}
