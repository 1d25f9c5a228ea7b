package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "")
	t.Setenv("APP_URI", "")
	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("OTP_TTL_MINUTES", "")
	t.Setenv("DEFAULT_MIN_THRESHOLD", "")
	t.Setenv("BACKFILL_CRON", "")
	t.Setenv("SEED_DATA", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "AttendanceDB", cfg.MongoDB)
	assert.Equal(t, "8888", cfg.AppURI)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 0.67, cfg.DefaultMinThreshold)
	assert.Equal(t, "5 0 * * *", cfg.BackfillCron)
	assert.False(t, cfg.SeedData)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("OTP_TTL_MINUTES", "10")
	t.Setenv("DEFAULT_MIN_THRESHOLD", "0.75")
	t.Setenv("SEED_DATA", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 0.75, cfg.DefaultMinThreshold)
}

func TestFromEnvErrors(t *testing.T) {
	t.Run("missing mongo uri", func(t *testing.T) {
		t.Setenv("MONGO_URI", "")
		_, err := FromEnv()
		assert.ErrorIs(t, err, ErrMissingMongoURI)
	})

	t.Run("threshold out of range", func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("DEFAULT_MIN_THRESHOLD", "1.5")
		_, err := FromEnv()
		var invalid *InvalidValueError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "DEFAULT_MIN_THRESHOLD", invalid.Key)
	})

	t.Run("seed flag not a bool", func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("DEFAULT_MIN_THRESHOLD", "")
		t.Setenv("SEED_DATA", "sometimes")
		_, err := FromEnv()
		var invalid *InvalidValueError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "SEED_DATA", invalid.Key)
	})
}
