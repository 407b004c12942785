package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionPattern(t *testing.T) {
	lib := newPatternLibrary()

	matching := []string{
		"movie.mkv",
		"movie.MP4",
		"movie.avi",
		"movie.m2ts",
		"movie.mkv.rar",
		"movie.mkv.rar.001",
		"movie.mp4.zip.0001",
	}
	for _, name := range matching {
		assert.True(t, lib.extension.MatchString(name), "should match %q", name)
	}

	nonMatching := []string{
		"movie.txt",
		"movie.mkv.txt",
		"mkv",
		"movie.rar",
	}
	for _, name := range nonMatching {
		assert.False(t, lib.extension.MatchString(name), "should not match %q", name)
	}
}

func TestChannelTagPattern(t *testing.T) {
	lib := newPatternLibrary()

	assert.True(t, lib.channelTag.MatchString("@MoviesAdda_Inception"))
	assert.True(t, lib.channelTag.MatchString("#FilmChannel-Title"))
	assert.True(t, lib.channelTag.MatchString("~SomeOfficial Title"))
	assert.False(t, lib.channelTag.MatchString("Inception.2010.mkv"))
	assert.False(t, lib.channelTag.MatchString("Movie @handle"))
}

func TestJunkPatternCoversAllCategories(t *testing.T) {
	lib := newPatternLibrary()

	// one representative per category, mixed casing
	tokens := []string{
		"WEB-DL", "web-dl", "BluRay", "1080p", "REMUX", // quality/source
		"x264", "HEVC", "10bit", // codec
		"AAC", "TrueHD", "320kbps", // audio
		"NF", "AMZN", "Netflix", // platform
		"YIFY", "RARBG", "galaxyrg", // release group
		"Hindi", "korean", // language
		"ESubs", "SDH", // subtitle marker
	}

	for _, token := range tokens {
		assert.True(t, lib.junk.MatchString(token), "junk pattern should match %q", token)
	}

	// ordinary words must survive
	for _, word := range []string{"Inception", "Avengers", "Empuraan", "Part"} {
		assert.False(t, lib.junk.MatchString(word), "junk pattern should not match %q", word)
	}
}
