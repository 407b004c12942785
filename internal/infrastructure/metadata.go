package infrastructure

import (
	"errors"
	"strconv"
	"strings"
	"time"

	tmdb "github.com/cyruzin/golang-tmdb"
	"github.com/rs/zerolog/log"

	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/model"
)

type Metadata interface {
	SearchMovies(title string, year int, limit int) ([]model.MovieInfo, error)
	GetMovie(tmdbID int64) (model.MovieInfo, error)
	PosterURL(posterPath string) string
}

type MetadataWrapper struct {
	client     *tmdb.Client
	maxRetries int
}

// NewMetadataWrapper initializes a MetadataWrapper
func NewMetadataWrapper(tmdbAPIKey string, maxRetries int) (*MetadataWrapper, error) {
	client, err := tmdb.Init(tmdbAPIKey)
	if err != nil {
		return nil, err
	}
	return &MetadataWrapper{
		client:     client,
		maxRetries: maxRetries,
	}, nil
}

const tmdbImageURL = "https://image.tmdb.org/t/p/"

// ErrNoResults is returned when a search matches nothing on TMDB.
var ErrNoResults = errors.New("no movies found")

// movieGenres maps TMDB movie genre IDs to names, for search results which
// carry IDs only.
var movieGenres = map[int64]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// SearchMovies searches TMDB by title, optionally constrained to a release
// year, and returns up to limit movies. Each result is enriched with full
// details when the detail call succeeds.
func (mw MetadataWrapper) SearchMovies(title string, year int, limit int) ([]model.MovieInfo, error) {
	urlOptions := map[string]string{
		"language":      "en-US",
		"include_adult": "false",
	}
	if year != 0 {
		urlOptions["year"] = strconv.Itoa(year)
	}

	var searchRes *tmdb.SearchMovies
	err := mw.withRetry(func() error {
		var err error
		searchRes, err = mw.client.GetSearchMovies(title, urlOptions)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(searchRes.Results) == 0 {
		return nil, ErrNoResults
	}

	var movies []model.MovieInfo
	for _, res := range searchRes.Results {
		if len(movies) == limit {
			break
		}
		movie, err := mw.GetMovie(res.ID)
		if err != nil {
			log.Debug().Err(err).Int64("tmdbID", res.ID).Msg("Falling back to search result fields")
			movie = model.MovieInfo{
				ID:            res.ID,
				Title:         res.Title,
				Year:          yearFromDate(res.ReleaseDate),
				Rating:        res.VoteAverage,
				Overview:      res.Overview,
				PosterURL:     mw.PosterURL(res.PosterPath),
				OriginalTitle: res.OriginalTitle,
				ReleaseDate:   res.ReleaseDate,
				Popularity:    res.Popularity,
				VoteCount:     res.VoteCount,
				Genres:        genreNames(res.GenreIDs),
			}
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

// GetMovie fetches full details for a movie from TMDB.
func (mw MetadataWrapper) GetMovie(tmdbID int64) (model.MovieInfo, error) {
	var details *tmdb.MovieDetails
	err := mw.withRetry(func() error {
		var err error
		details, err = mw.client.GetMovieDetails(int(tmdbID), nil)
		return err
	})
	if err != nil {
		return model.MovieInfo{}, err
	}

	movie := model.MovieInfo{
		ID:            details.ID,
		Title:         details.Title,
		Year:          yearFromDate(details.ReleaseDate),
		Rating:        details.VoteAverage,
		Overview:      details.Overview,
		PosterURL:     mw.PosterURL(details.PosterPath),
		OriginalTitle: details.OriginalTitle,
		Runtime:       details.Runtime,
		Tagline:       details.Tagline,
		ReleaseDate:   details.ReleaseDate,
		Popularity:    details.Popularity,
		VoteCount:     details.VoteCount,
	}
	for _, genre := range details.Genres {
		movie.Genres = append(movie.Genres, genre.Name)
	}
	return movie, nil
}

// PosterURL builds the full image URL for a TMDB poster path. Returns ""
// when the movie has no poster.
func (mw MetadataWrapper) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return tmdbImageURL + tmdb.W500 + posterPath
}

func genreNames(ids []int64) []string {
	var names []string
	for _, id := range ids {
		if name, ok := movieGenres[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// withRetry runs fn up to maxRetries times, backing off attempt*attempt
// seconds between timeout-class failures. Other errors fail immediately.
func (mw MetadataWrapper) withRetry(fn func() error) error {
	var err error
	for attempt := 1; attempt <= mw.maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !isTimeoutError(err) {
			return err
		}
		if attempt < mw.maxRetries {
			wait := time.Duration(attempt*attempt) * time.Second
			log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("TMDB request timed out, retrying")
			time.Sleep(wait)
		}
	}
	return err
}

// isTimeoutError reports whether err looks like a transient network failure
// worth retrying.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, keyword := range []string{
		"timeout",
		"timed out",
		"deadline exceeded",
		"connection reset",
		"connection refused",
		"temporary failure",
		"too many requests",
	} {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}

// yearFromDate extracts the year from a TMDB release date ("2010-07-15").
func yearFromDate(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
