package infrastructure

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosterCache(t *testing.T) {
	var fetches int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fetches++
		w.Write([]byte("poster-bytes"))
	}))
	defer server.Close()

	cache := NewPosterCache(1, 60, 5*time.Second)

	t.Run("FetchAndCache", func(t *testing.T) {
		data, err := cache.GetPoster(server.URL + "/poster.jpg")
		require.NoError(t, err)
		assert.Equal(t, []byte("poster-bytes"), data)
		assert.Equal(t, 1, fetches)

		data, err = cache.GetPoster(server.URL + "/poster.jpg")
		require.NoError(t, err)
		assert.Equal(t, []byte("poster-bytes"), data)
		assert.Equal(t, 1, fetches, "second lookup should be served from cache")

		assert.Equal(t, int64(1), cache.HitCount())
		assert.Equal(t, int64(1), cache.EntryCount())
	})

	t.Run("FetchError", func(t *testing.T) {
		_, err := cache.GetPoster(server.URL + "/missing.jpg")
		assert.Error(t, err)
	})

	t.Run("UnreachableHost", func(t *testing.T) {
		_, err := cache.GetPoster("http://127.0.0.1:1/poster.jpg")
		assert.Error(t, err)
	})
}
