// Package parser extracts a clean, searchable movie title and release year
// from messy release filenames (scene naming, channel tags, codec soup).
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	minYear = 1900
	maxYear = 2039

	// PlaceholderTitle is returned when nothing usable survives cleaning.
	PlaceholderTitle = "Unknown Movie"

	maxJunkPasses = 5
)

// ParsedFilename is the result of parsing a movie release filename.
type ParsedFilename struct {
	Title            string
	Year             int // 0 when no plausible year was found
	OriginalFilename string
}

// Parser turns release filenames into (title, year) pairs. The zero value is
// not usable; construct with New. A Parser is immutable after construction
// and safe for concurrent use.
type Parser struct {
	lib *patternLibrary
}

// New compiles the pattern library and returns a ready Parser.
func New() *Parser {
	return &Parser{lib: newPatternLibrary()}
}

// Parse extracts the movie title and year from filename. It never fails:
// degenerate inputs fall back to a truncation heuristic and, at worst, the
// placeholder title. Same input always yields the same output.
func (p *Parser) Parse(filename string) ParsedFilename {
	original := filename

	// Extension goes first so a trailing ".2160p.mkv" style suffix cannot
	// confuse year extraction.
	cleaned := p.lib.extension.ReplaceAllString(filename, "")

	// Grab the year before any destructive surgery; brackets and separators
	// are about to be rewritten.
	year := p.extractYear(cleaned)

	cleaned = p.lib.channelTag.ReplaceAllString(cleaned, "")
	cleaned = p.lib.brackets.ReplaceAllString(cleaned, " ")
	cleaned = p.lib.separators.ReplaceAllString(cleaned, " ")

	// Remove the chosen year plus any other year-shaped token (remake
	// references, upload dates).
	if year != 0 {
		yearRe := regexp.MustCompile(`\b` + strconv.Itoa(year) + `\b`)
		cleaned = yearRe.ReplaceAllString(cleaned, "")
	}
	cleaned = p.lib.year.ReplaceAllString(cleaned, "")

	// Junk removal runs to a fixed point: stripping one token can expose
	// another. The pass cap bounds work on adversarial input.
	prev := ""
	for passes := 0; cleaned != prev && passes < maxJunkPasses; passes++ {
		prev = cleaned
		cleaned = p.lib.junk.ReplaceAllString(cleaned, " ")
	}

	cleaned = p.lib.handle.ReplaceAllString(cleaned, " ")
	cleaned = p.lib.strayBracket.ReplaceAllString(cleaned, " ")
	cleaned = p.filterStrayNumbers(cleaned)

	cleaned = p.lib.whitespace.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if utf8.RuneCountInString(cleaned) < 2 {
		cleaned = p.simpleExtract(original)
	}

	return ParsedFilename{
		Title:            p.titleCase(cleaned),
		Year:             year,
		OriginalFilename: original,
	}
}

// extractYear returns the first 4-digit token in [1900, 2039], or 0. It scans
// a separator-normalized copy: `\b` treats '_' as a word character, so an
// underscore-delimited year would otherwise never match.
func (p *Parser) extractYear(s string) int {
	s = p.lib.separators.ReplaceAllString(s, " ")
	for _, match := range p.lib.year.FindAllString(s, -1) {
		candidate, err := strconv.Atoi(match)
		if err == nil && candidate >= minYear && candidate <= maxYear {
			return candidate
		}
	}
	return 0
}

// filterStrayNumbers drops leftover numeric tokens. A short number is kept
// only when at least one word survived before it, which preserves sequel
// markers ("Movie 2") while dropping leading resolution-like digits. Tokens
// shaped letter+digit ("L2", "T2") always survive.
func (p *Parser) filterStrayNumbers(s string) string {
	var kept []string
	for _, word := range strings.Fields(s) {
		switch {
		case p.lib.pureNumber.MatchString(word):
			if len(word) <= 2 && len(kept) > 0 {
				kept = append(kept, word)
			}
		case p.lib.letterDigit.MatchString(word):
			kept = append(kept, word)
		case !p.lib.numericJunk.MatchString(word):
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// simpleExtract is the fallback when the full pipeline leaves nothing: strip
// extension and channel tag only, then take up to the first five tokens,
// stopping at anything year- or resolution-shaped.
func (p *Parser) simpleExtract(filename string) string {
	cleaned := p.lib.extension.ReplaceAllString(filename, "")
	cleaned = p.lib.channelTag.ReplaceAllString(cleaned, "")
	cleaned = p.lib.separators.ReplaceAllString(cleaned, " ")

	fields := strings.Fields(cleaned)
	if len(fields) > 5 {
		fields = fields[:5]
	}

	var words []string
	for _, word := range fields {
		if p.lib.fourDigits.MatchString(word) || p.lib.resolution.MatchString(word) {
			break
		}
		if utf8.RuneCountInString(word) > 1 {
			words = append(words, word)
		}
	}

	if len(words) == 0 {
		return PlaceholderTitle
	}
	return strings.Join(words, " ")
}
