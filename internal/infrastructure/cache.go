package infrastructure

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/coocood/freecache"
	"github.com/rs/zerolog/log"
)

// PosterCache keeps poster images in memory so repeated channel posts of the
// same movie do not refetch from TMDB's image CDN. Entries expire after the
// configured TTL and the least recently used ones are evicted under memory
// pressure.
type PosterCache struct {
	cache  *freecache.Cache
	ttl    int
	client *http.Client
}

// NewPosterCache initializes a poster cache of sizeMB megabytes whose entries
// live for ttlSeconds.
func NewPosterCache(sizeMB, ttlSeconds int, timeout time.Duration) *PosterCache {
	return &PosterCache{
		cache:  freecache.NewCache(sizeMB * 1024 * 1024),
		ttl:    ttlSeconds,
		client: &http.Client{Timeout: timeout},
	}
}

// GetPoster returns the poster image bytes for a URL, fetching and caching
// them on a miss.
func (pc *PosterCache) GetPoster(url string) ([]byte, error) {
	key := []byte(url)
	if data, err := pc.cache.Get(key); err == nil {
		return data, nil
	}

	data, err := pc.fetch(url)
	if err != nil {
		return nil, err
	}
	// Oversized entries are served without caching
	if err := pc.cache.Set(key, data, pc.ttl); err != nil {
		log.Debug().Err(err).Str("url", url).Int("size", len(data)).Msg("Could not cache poster")
	}
	return data, nil
}

func (pc *PosterCache) fetch(url string) ([]byte, error) {
	resp, err := pc.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("could not fetch poster")
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("url", url).Int("size", len(data)).Msg("Cached poster")
	return data, nil
}

// HitCount returns the number of cache hits since startup.
func (pc *PosterCache) HitCount() int64 {
	return pc.cache.HitCount()
}

// MissCount returns the number of cache misses since startup.
func (pc *PosterCache) MissCount() int64 {
	return pc.cache.MissCount()
}

// EntryCount returns the number of posters currently cached.
func (pc *PosterCache) EntryCount() int64 {
	return pc.cache.EntryCount()
}
