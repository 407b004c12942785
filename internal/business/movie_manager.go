package business

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog/log"

	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/model"
	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/parser"
)

type MovieSearcher interface {
	SearchMovies(title string, year int, limit int) ([]model.MovieInfo, error)
	GetMovie(tmdbID int64) (model.MovieInfo, error)
}

type PosterGetter interface {
	GetPoster(url string) ([]byte, error)
	HitCount() int64
	MissCount() int64
	EntryCount() int64
}

type MovieManager interface {
	Identify(filename string) (parser.ParsedFilename, []model.MovieInfo, error)
	Search(title string, year int) ([]model.MovieInfo, error)
	Movie(tmdbID int64) (model.MovieInfo, error)
	Poster(movie model.MovieInfo) ([]byte, error)
	Stats() Stats
}

// Stats is a snapshot of bot activity counters for the /stats command.
type Stats struct {
	FilesParsed  int64
	Searches     int64
	NoResults    int64
	CacheHits    int64
	CacheMisses  int64
	CacheEntries int64
	Uptime       time.Duration
}

// MaxSearchResults caps how many candidates a search returns for the
// selection keyboard.
const MaxSearchResults = 5

type MovieManagerWrapper struct {
	MovieSearcher
	PosterGetter
	parser *parser.Parser

	filesParsed atomic.Int64
	searches    atomic.Int64
	noResults   atomic.Int64
	startedAt   time.Time
}

func NewMovieManagerWrapper(ms MovieSearcher, pg PosterGetter, p *parser.Parser) *MovieManagerWrapper {
	return &MovieManagerWrapper{
		MovieSearcher: ms,
		PosterGetter:  pg,
		parser:        p,
		startedAt:     time.Now(),
	}
}

// Identify parses a release filename and searches TMDB for matching movies.
// The parsed title and year are returned alongside the candidates so the
// caller can show what was extracted.
func (mmw *MovieManagerWrapper) Identify(filename string) (parser.ParsedFilename, []model.MovieInfo, error) {
	parsed := mmw.parser.Parse(filename)
	mmw.filesParsed.Add(1)
	log.Info().
		Str("filename", filename).
		Str("title", parsed.Title).
		Int("year", parsed.Year).
		Msg("Parsed filename")

	movies, err := mmw.Search(parsed.Title, parsed.Year)
	return parsed, movies, err
}

// Search queries TMDB and orders the results so the best match comes first.
func (mmw *MovieManagerWrapper) Search(title string, year int) ([]model.MovieInfo, error) {
	mmw.searches.Add(1)
	movies, err := mmw.SearchMovies(title, year, MaxSearchResults)
	if err != nil {
		mmw.noResults.Add(1)
		return nil, fmt.Errorf("searching %q: %w", title, err)
	}
	return bestMatchFirst(title, movies), nil
}

// Movie fetches full details for a single movie.
func (mmw *MovieManagerWrapper) Movie(tmdbID int64) (model.MovieInfo, error) {
	return mmw.GetMovie(tmdbID)
}

// Poster returns the poster image bytes for a movie.
func (mmw *MovieManagerWrapper) Poster(movie model.MovieInfo) ([]byte, error) {
	if movie.PosterURL == "" {
		return nil, fmt.Errorf("movie %q has no poster", movie.Title)
	}
	return mmw.GetPoster(movie.PosterURL)
}

func (mmw *MovieManagerWrapper) Stats() Stats {
	return Stats{
		FilesParsed:  mmw.filesParsed.Load(),
		Searches:     mmw.searches.Load(),
		NoResults:    mmw.noResults.Load(),
		CacheHits:    mmw.HitCount(),
		CacheMisses:  mmw.MissCount(),
		CacheEntries: mmw.EntryCount(),
		Uptime:       time.Since(mmw.startedAt),
	}
}

// bestMatchFirst moves the most popular result whose title is close enough to
// the query to the front of the slice. The remaining order is untouched.
func bestMatchFirst(title string, movies []model.MovieInfo) []model.MovieInfo {
	best := -1
	mostPopular := float32(0)
	for i, movie := range movies {
		if movie.Popularity > mostPopular {
			// Levenshtein distance so that the name corresponds at least a little bit
			if levenshtein.ComputeDistance(title, movie.Title) < len(title)/3 || mostPopular == 0 {
				best = i
				mostPopular = movie.Popularity
			}
		}
	}
	if best > 0 {
		movies[0], movies[best] = movies[best], movies[0]
	}
	return movies
}
