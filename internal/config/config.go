// Package config loads bot settings from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variable names
const (
	EnvBotToken          = "TELEGRAM_BOT_TOKEN"
	EnvChannelID         = "TELEGRAM_CHANNEL_ID"
	EnvTMDBAPIKey        = "TMDB_API_KEY"
	EnvLogLevel          = "LOG_LEVEL"
	EnvPosterCacheTTL    = "POSTER_CACHE_TTL"
	EnvPosterCacheSizeMB = "POSTER_CACHE_SIZE_MB"
	EnvRequestTimeout    = "REQUEST_TIMEOUT"
	EnvMaxRetries        = "MAX_RETRIES"
	EnvAllowedUserIDs    = "ALLOWED_USER_IDS"
)

// Defaults for the optional settings
const (
	DefaultLogLevel          = "info"
	DefaultPosterCacheTTL    = 3600 // seconds
	DefaultPosterCacheSizeMB = 128
	DefaultRequestTimeout    = 30 * time.Second
	DefaultMaxRetries        = 3
)

// Settings holds everything the bot needs at startup.
type Settings struct {
	BotToken   string
	ChannelID  int64
	TMDBAPIKey string

	LogLevel          string
	PosterCacheTTL    int
	PosterCacheSizeMB int
	RequestTimeout    time.Duration
	MaxRetries        int

	// AllowedUserIDs restricts admin commands; empty means everyone.
	AllowedUserIDs map[int64]struct{}
}

// Load reads settings from the environment. Call godotenv.Load beforehand if
// a .env file should be honored.
func Load() (*Settings, error) {
	s := &Settings{
		BotToken:          os.Getenv(EnvBotToken),
		TMDBAPIKey:        os.Getenv(EnvTMDBAPIKey),
		LogLevel:          DefaultLogLevel,
		PosterCacheTTL:    DefaultPosterCacheTTL,
		PosterCacheSizeMB: DefaultPosterCacheSizeMB,
		RequestTimeout:    DefaultRequestTimeout,
		MaxRetries:        DefaultMaxRetries,
	}

	if s.BotToken == "" {
		return nil, fmt.Errorf("%s is required", EnvBotToken)
	}
	if s.TMDBAPIKey == "" {
		return nil, fmt.Errorf("%s is required", EnvTMDBAPIKey)
	}

	channelID := os.Getenv(EnvChannelID)
	if channelID == "" {
		return nil, fmt.Errorf("%s is required", EnvChannelID)
	}
	id, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", EnvChannelID, channelID, err)
	}
	s.ChannelID = id

	if level := os.Getenv(EnvLogLevel); level != "" {
		s.LogLevel = strings.ToLower(level)
	}
	if ttl, err := intEnv(EnvPosterCacheTTL); err != nil {
		return nil, err
	} else if ttl > 0 {
		s.PosterCacheTTL = ttl
	}
	if size, err := intEnv(EnvPosterCacheSizeMB); err != nil {
		return nil, err
	} else if size > 0 {
		s.PosterCacheSizeMB = size
	}
	if timeout, err := intEnv(EnvRequestTimeout); err != nil {
		return nil, err
	} else if timeout > 0 {
		s.RequestTimeout = time.Duration(timeout) * time.Second
	}
	if retries, err := intEnv(EnvMaxRetries); err != nil {
		return nil, err
	} else if retries > 0 {
		s.MaxRetries = retries
	}

	allowed, err := parseUserIDs(os.Getenv(EnvAllowedUserIDs))
	if err != nil {
		return nil, err
	}
	s.AllowedUserIDs = allowed

	return s, nil
}

// UserAllowed reports whether userID may use admin commands. An empty allow
// list admits everyone.
func (s *Settings) UserAllowed(userID int64) bool {
	if len(s.AllowedUserIDs) == 0 {
		return true
	}
	_, ok := s.AllowedUserIDs[userID]
	return ok
}

func intEnv(name string) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return value, nil
}

// parseUserIDs parses a comma-separated list of Telegram user IDs.
func parseUserIDs(raw string) (map[int64]struct{}, error) {
	ids := make(map[int64]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID %q in %s: %w", part, EnvAllowedUserIDs, err)
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}
