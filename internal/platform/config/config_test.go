package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, StoragePostgres, c.Storage)
	assert.Equal(t, "localhost", c.DBHost)
	assert.Equal(t, "5432", c.DBPort)
	assert.Equal(t, 10, c.DBRetries)
	assert.Equal(t, 5*time.Minute, c.SlotCacheTTL)
	assert.Equal(t, 15*time.Minute, c.MinBookingDuration)
	assert.Equal(t, "usd", c.Currency)
	assert.False(t, c.RequireApproval)
	assert.False(t, c.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE", "memory")
	t.Setenv("REQUIRE_APPROVAL", "true")
	t.Setenv("MIN_BOOKING_DURATION", "30m")

	c, err := Load()
	require.NoError(t, err)

	assert.True(t, c.IsProduction())
	assert.Equal(t, StorageMemory, c.Storage)
	assert.True(t, c.RequireApproval)
	assert.Equal(t, 30*time.Minute, c.MinBookingDuration)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORAGE", "mongo")
	_, err = Load()
	assert.ErrorContains(t, err, "STORAGE")
}
