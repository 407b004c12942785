package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv(EnvBotToken, "123456:test-token")
	t.Setenv(EnvChannelID, "-1001234567890")
	t.Setenv(EnvTMDBAPIKey, "tmdb-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, name := range []string{EnvLogLevel, EnvPosterCacheTTL, EnvPosterCacheSizeMB, EnvRequestTimeout, EnvMaxRetries, EnvAllowedUserIDs} {
		t.Setenv(name, "")
	}

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123456:test-token", s.BotToken)
	assert.Equal(t, int64(-1001234567890), s.ChannelID)
	assert.Equal(t, "tmdb-key", s.TMDBAPIKey)
	assert.Equal(t, DefaultLogLevel, s.LogLevel)
	assert.Equal(t, DefaultPosterCacheTTL, s.PosterCacheTTL)
	assert.Equal(t, DefaultPosterCacheSizeMB, s.PosterCacheSizeMB)
	assert.Equal(t, 30*time.Second, s.RequestTimeout)
	assert.Equal(t, DefaultMaxRetries, s.MaxRetries)
	assert.Empty(t, s.AllowedUserIDs)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvPosterCacheTTL, "600")
	t.Setenv(EnvPosterCacheSizeMB, "64")
	t.Setenv(EnvRequestTimeout, "10")
	t.Setenv(EnvMaxRetries, "5")
	t.Setenv(EnvAllowedUserIDs, "100, 200,300")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 600, s.PosterCacheTTL)
	assert.Equal(t, 64, s.PosterCacheSizeMB)
	assert.Equal(t, 10*time.Second, s.RequestTimeout)
	assert.Equal(t, 5, s.MaxRetries)
	assert.Len(t, s.AllowedUserIDs, 3)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv(EnvBotToken, "")
	t.Setenv(EnvChannelID, "")
	t.Setenv(EnvTMDBAPIKey, "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv(EnvBotToken, "token")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv(EnvTMDBAPIKey, "key")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv(EnvChannelID, "-100123")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadInvalidChannelID(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvChannelID, "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidUserID(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvAllowedUserIDs, "100,abc")

	_, err := Load()
	assert.Error(t, err)
}

func TestUserAllowed(t *testing.T) {
	s := &Settings{}
	assert.True(t, s.UserAllowed(42), "empty allow list admits everyone")

	s.AllowedUserIDs = map[int64]struct{}{100: {}}
	assert.True(t, s.UserAllowed(100))
	assert.False(t, s.UserAllowed(42))
}
