package parser

import (
	"regexp"
	"strings"
)

// Junk token catalogue, grouped by category. Each category is data, not
// logic: the lists are joined into a single case-insensitive alternation at
// construction time. Compound tokens (WEB-DL, Blu-Ray) come before their
// fragments so a single pass can consume them whole.
var (
	qualityPatterns = []string{
		`\bWEB[-\s]?DL\b`,
		`\bWEB[-\s]?Rip\b`,
		`\bBlu[-\s]?Ray\b`,
		`\bHD[-\s]?Rip\b`,
		`\bDVD[-\s]?Rip\b`,
		`\bBD[-\s]?Rip\b`,
		`\bBR[-\s]?Rip\b`,

		`\b(?:WEBRip|BluRay|BDRip|BRRip|DVDRip|HDRip)\b`,
		`\b(?:CAM|TS|TC|SCR|HDTV|PDTV|DSR|DTHRip)\b`,
		`\b(?:REMUX|PROPER|REPACK|INTERNAL|LIMITED)\b`,
		`\b(?:UNCUT|UNRATED|EXTENDED|THEATRICAL|REMASTERED)\b`,
		`\b(?:HYBRID|TRUE)\b`,

		// fragments left behind by the compound forms
		`\b(?:WEB|DL|Rip|BD|BR|DVD|CD)\b`,

		`\b(?:144|240|360|480|576|720|1080|1440|2160)[pPiI]?\b`,
		`\b(?:4K|8K|2K|UHD|FHD|HD|SD|HQ|LQ)\b`,

		`\b(?:HDR10|HDR|SDR|DoVi|Dolby[-\s]?Vision|DV|HLG)\b`,
		`\b(?:3D|IMAX)\b`,
	}

	codecPatterns = []string{
		`\b[xXhH]\.?26[45]\b`,
		`\b(?:HEVC|AVC|AV1|XviD|XVID|DivX|DIVX)\b`,
		`\b(?:10bit|10-bit|8bit|8-bit)\b`,
	}

	audioPatterns = []string{
		`\b(?:AAC|AC3|E-?AC3|DTS|FLAC|MP3|Opus)\b`,
		`\b(?:TrueHD|Atmos|ATMOS|DTS-?HD|DTS-?X)\b`,
		`\bDD\+?[0-9\.]*\b`,
		`\b[257]\.1\.?[0-9]?\b`,
		`\b\d+\.\d+\b`,
		`\b[0-9]+[kK]bps?\b`,
		`\b(?:Dual[-\s]?Audio|Multi[-\s]?Audio)\b`,
		`\b(?:Stereo|Mono)\b`,
	}

	platforms = []string{
		"Netflix", "NF", "Amazon", "AMZN", "Prime", "Hotstar", "Disney",
		"DSNP", "Hulu", "HBO", "Max", "HMAX", "Apple", "ATVP",
		"Peacock", "PCOK", "Paramount", "PMTP", "Zee5", "SonyLIV",
		"Voot", "MX", "Aha", "AHA", "SunNXT", "Hoichoi", "ALTBalaji",
		"ErosNow", "JioCinema", "iTunes", "YouTube", "YT",
	}

	releaseGroups = []string{
		"YIFY", "YTS", "RARBG", "PSA", "SPARKS", "FGT", "FLEET",
		"ESubs", "mkvCinemas", "TamilRockers", "TamilBlasters",
		"MoviesVerse", "HDHub4u", "KatmovieHD", "Vegamovies",
		"INFOTAINMENT", "GalaxyRG", "EVO", "TOMMY", "CMRG",
	}

	languages = []string{
		"Hindi", "Tamil", "Telugu", "Malayalam", "Kannada", "Bengali",
		"Marathi", "Punjabi", "Gujarati", "English", "Spanish", "French",
		"German", "Italian", "Russian", "Japanese", "Korean", "Chinese",
		"Proper",
	}

	subtitlePatterns = []string{
		`\b(?:ESubs?|Subs?|Subtitles?|HI|SDH|CC)\b`,
	}
)

// patternLibrary holds every compiled pattern the pipeline needs. Built once
// per Parser and never mutated afterwards, so concurrent Parse calls share it
// freely.
type patternLibrary struct {
	year       *regexp.Regexp
	extension  *regexp.Regexp
	channelTag *regexp.Regexp
	junk       *regexp.Regexp

	brackets     *regexp.Regexp
	separators   *regexp.Regexp
	handle       *regexp.Regexp
	strayBracket *regexp.Regexp
	whitespace   *regexp.Regexp

	pureNumber  *regexp.Regexp
	letterDigit *regexp.Regexp
	numericJunk *regexp.Regexp

	fourDigits *regexp.Regexp
	resolution *regexp.Regexp
}

func newPatternLibrary() *patternLibrary {
	return &patternLibrary{
		// 1900-2039
		year: regexp.MustCompile(`\b(19[0-9]{2}|20[0-3][0-9])\b`),

		// container, optionally followed by an archive extension and/or a
		// numeric split-part suffix (.mkv.rar.001)
		extension: regexp.MustCompile(
			`(?i)\.(mkv|mp4|avi|mov|wmv|flv|webm|m4v|mpg|mpeg|m2ts|ts|vob|3gp|f4v|ogv)` +
				`(?:\.(zip|rar|7z|gz|bz2|xz|tar))?` +
				`(?:\.\d{3,4})?$`),

		// marketing prefixes like "@MoviesAdda_" or "#FilmChannel-"
		channelTag: regexp.MustCompile(
			`(?i)^[@#!~][\w]*?(?:Official|Movies?|Films?|Entertainment|Media|Channel|TG|Bot|Mawa|Troller)[\w]*?[-_\s]+`),

		junk: buildJunkPattern(),

		brackets:     regexp.MustCompile(`[\[\(\{][^\]\)\}]*[\]\)\}]`),
		separators:   regexp.MustCompile(`[._\-]+`),
		handle:       regexp.MustCompile(`@\w+`),
		strayBracket: regexp.MustCompile(`[\[\]\(\)\{\}]`),
		whitespace:   regexp.MustCompile(`\s+`),

		pureNumber:  regexp.MustCompile(`^[0-9]+$`),
		letterDigit: regexp.MustCompile(`^[A-Za-z][0-9]$`),
		numericJunk: regexp.MustCompile(`^[0-9\.\-_]+$`),

		fourDigits: regexp.MustCompile(`^\d{4}$`),
		resolution: regexp.MustCompile(`(?i)^(720|1080|2160)p?$`),
	}
}

// buildJunkPattern assembles all token categories into one case-insensitive
// alternation. Plain-word categories get word-boundary anchors here; the
// regex categories carry their own.
func buildJunkPattern() *regexp.Regexp {
	var alts []string
	alts = append(alts, qualityPatterns...)
	alts = append(alts, codecPatterns...)
	alts = append(alts, audioPatterns...)
	for _, p := range platforms {
		alts = append(alts, `\b`+p+`\b`)
	}
	for _, g := range releaseGroups {
		alts = append(alts, `\b`+g+`\b`)
	}
	for _, l := range languages {
		alts = append(alts, `\b`+l+`\b`)
	}
	alts = append(alts, subtitlePatterns...)

	for i, a := range alts {
		alts[i] = "(?:" + a + ")"
	}
	return regexp.MustCompile(`(?i)` + strings.Join(alts, "|"))
}
