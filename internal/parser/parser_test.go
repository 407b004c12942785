package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	p := New()

	tests := []struct {
		name     string
		filename string
		title    string
		year     int
	}{
		{
			name:     "scene release with web-dl",
			filename: "Movie.Name.2024.1080p.WEB-DL.mkv",
			title:    "Movie Name",
			year:     2024,
		},
		{
			name:     "underscore separators",
			filename: "Movie_2023_BluRay_x264.mp4",
			title:    "Movie",
			year:     2023,
		},
		{
			name:     "bracketed year with language",
			filename: "Movie (2022) Hindi 720p.avi",
			title:    "Movie",
			year:     2022,
		},
		{
			name:     "release group suffix",
			filename: "Inception.2010.1080p.BluRay.x264-YIFY.mkv",
			title:    "Inception",
			year:     2010,
		},
		{
			name:     "small words stay lowercase",
			filename: "The.Lord.of.the.Rings.2001.EXTENDED.1080p.mkv",
			title:    "The Lord of the Rings",
			year:     2001,
		},
		{
			name:     "letter-digit token preserved",
			filename: "L2.Empuraan.2025.1080p.mkv",
			title:    "L2 Empuraan",
			year:     2025,
		},
		{
			name:     "sequel number after words",
			filename: "Avengers.Part.2.2019.mkv",
			title:    "Avengers Part 2",
			year:     2019,
		},
		{
			name:     "leading resolution-like number dropped",
			filename: "720.Movie.mkv",
			title:    "Movie",
			year:     0,
		},
		{
			name:     "channel tag prefix",
			filename: "@MoviesAdda_Inception.2010.720p.mkv",
			title:    "Inception",
			year:     2010,
		},
		{
			name:     "handle token removed",
			filename: "Inception.2010.@TamilMV.mkv",
			title:    "Inception",
			year:     2010,
		},
		{
			name:     "split archive suffix",
			filename: "Movie.2020.mkv.rar.001",
			title:    "Movie",
			year:     2020,
		},
		{
			name:     "year outside plausible range ignored",
			filename: "Movie.2040.mkv",
			title:    "Movie",
			year:     0,
		},
		{
			name:     "junk-only filename falls back to placeholder",
			filename: "1080p.WEB-DL.x264.mkv",
			title:    PlaceholderTitle,
			year:     0,
		},
		{
			name:     "empty input falls back to placeholder",
			filename: "",
			title:    PlaceholderTitle,
			year:     0,
		},
		{
			name:     "numeric title rescued by fallback",
			filename: "300.mkv",
			title:    "300",
			year:     0,
		},
		{
			name:     "streaming platform tag removed",
			filename: "Some.Film.2021.NF.WEBRip.HEVC.10bit.AAC.ESubs.mkv",
			title:    "Some Film",
			year:     2021,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.filename)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.year, got.Year)
			assert.Equal(t, tt.filename, got.OriginalFilename)
		})
	}
}

func TestParseNeverReturnsEmptyTitle(t *testing.T) {
	p := New()

	inputs := []string{
		"",
		".",
		"...",
		"___",
		"()[]{}",
		"@handle",
		"1080p",
		"x264.mkv",
		"2020.mkv",
		"!!!",
	}

	for _, input := range inputs {
		got := p.Parse(input)
		assert.NotEmpty(t, got.Title, "input %q", input)
	}
}

func TestParseYearBounds(t *testing.T) {
	p := New()

	inputs := []string{
		"Movie.1899.mkv",
		"Movie.1900.mkv",
		"Movie.2039.mkv",
		"Movie.2040.mkv",
		"Movie.1234.mkv",
		"Movie.9999.mkv",
	}

	for _, input := range inputs {
		got := p.Parse(input)
		if got.Year != 0 {
			assert.GreaterOrEqual(t, got.Year, 1900, "input %q", input)
			assert.LessOrEqual(t, got.Year, 2039, "input %q", input)
		}
	}

	assert.Equal(t, 1900, p.Parse("Movie.1900.mkv").Year)
	assert.Equal(t, 2039, p.Parse("Movie.2039.mkv").Year)
	assert.Equal(t, 0, p.Parse("Movie.1899.mkv").Year)
	assert.Equal(t, 0, p.Parse("Movie.2040.mkv").Year)
}

func TestParseFirstYearWins(t *testing.T) {
	p := New()

	// A remake reference later in the name must not override the release year.
	got := p.Parse("Movie.2020.Remake.of.1975.Classic.mkv")
	assert.Equal(t, 2020, got.Year)
	assert.NotContains(t, got.Title, "1975")
}

func TestParseDeterministic(t *testing.T) {
	p := New()

	const input = "Some.Movie.2022.2160p.AMZN.WEB-DL.DDP5.1.HDR.HEVC-CMRG.mkv"
	first := p.Parse(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, p.Parse(input))
	}
}

func TestParseConcurrent(t *testing.T) {
	p := New()

	done := make(chan ParsedFilename)
	for i := 0; i < 16; i++ {
		go func() {
			done <- p.Parse("Movie.Name.2024.1080p.WEB-DL.mkv")
		}()
	}
	for i := 0; i < 16; i++ {
		got := <-done
		assert.Equal(t, "Movie Name", got.Title)
		assert.Equal(t, 2024, got.Year)
	}
}

func TestSimpleExtract(t *testing.T) {
	p := New()

	t.Run("keeps at most five tokens", func(t *testing.T) {
		got := p.simpleExtract("My.Movie.Name.Extra.Words.Here.Too.mkv")
		assert.Equal(t, "My Movie Name Extra Words", got)
	})

	t.Run("stops at four-digit token", func(t *testing.T) {
		got := p.simpleExtract("Some.Film.2019.1080p.mkv")
		assert.Equal(t, "Some Film", got)
	})

	t.Run("stops at bare resolution", func(t *testing.T) {
		got := p.simpleExtract("Some.Film.720p.extra.mkv")
		assert.Equal(t, "Some Film", got)
	})

	t.Run("drops single-character tokens", func(t *testing.T) {
		got := p.simpleExtract("A.B.Movie.mkv")
		assert.Equal(t, "Movie", got)
	})

	t.Run("placeholder when nothing survives", func(t *testing.T) {
		got := p.simpleExtract("720p.mkv")
		assert.Equal(t, PlaceholderTitle, got)
	})
}

func TestExtractYear(t *testing.T) {
	p := New()

	assert.Equal(t, 2024, p.extractYear("Movie.Name.2024.1080p"))
	assert.Equal(t, 1999, p.extractYear("The.Matrix.1999"))
	// underscores delimit the year just like dots and hyphens
	assert.Equal(t, 2023, p.extractYear("Movie_2023_BluRay_x264"))
	assert.Equal(t, 2021, p.extractYear("Movie-2021-1080p"))
	assert.Equal(t, 0, p.extractYear("No.Year.Here"))
	assert.Equal(t, 0, p.extractYear(""))
	// first left-to-right occurrence wins
	assert.Equal(t, 1984, p.extractYear("Movie.1984.2019"))
}
