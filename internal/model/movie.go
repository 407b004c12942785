package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	captionDivider = "━━━━━━━━━━━━━━━━━━━━"
	captionFooter  = "<i>Powered by CineBrain Movie Bot 🤖</i>"

	maxSynopsisLen = 500
)

// MovieInfo is a movie record assembled from TMDB search and detail
// responses.
type MovieInfo struct {
	ID            int64
	Title         string
	Year          int // 0 when the release date is unknown
	Rating        float32
	Overview      string
	PosterURL     string
	OriginalTitle string
	Runtime       int // minutes, 0 when unknown
	Genres        []string
	Tagline       string
	ReleaseDate   string
	Popularity    float32
	VoteCount     int64
}

// FormattedCaption renders the HTML caption posted to the channel alongside
// the poster.
func (m MovieInfo) FormattedCaption() string {
	yearStr := ""
	if m.Year != 0 {
		yearStr = fmt.Sprintf(" (%d)", m.Year)
	}

	rating := fmt.Sprintf("%s %.1f/10", m.ratingStars(), m.Rating)
	if m.VoteCount > 0 {
		rating += fmt.Sprintf(" (%s votes)", groupDigits(m.VoteCount))
	}

	runtime := ""
	if m.Runtime > 0 {
		runtime = " | ⏱ " + FormatRuntime(m.Runtime)
	}

	genres := "Unknown"
	if len(m.Genres) > 0 {
		genres = strings.Join(lo.Slice(m.Genres, 0, 3), ", ")
	}

	synopsis := m.Overview
	if synopsis == "" {
		synopsis = "No synopsis available."
	}
	if len(synopsis) > maxSynopsisLen {
		synopsis = synopsis[:maxSynopsisLen-3] + "..."
	}

	return fmt.Sprintf(`<b>🎞️ MOVIE: %s%s</b>
<b>✨ Rating:</b> %s%s
<b>🎭 Genre:</b> %s
%s
💬 <b>Synopsis</b>
<blockquote><i>%s</i></blockquote>
%s
<i>🍿 Smart recommendations • Upcoming updates • Latest releases • Trending movies</i>

%s

%s`,
		m.Title, yearStr, rating, runtime, genres,
		captionDivider, synopsis, captionDivider,
		captionFooter, m.hashtags())
}

// ShortInfo is a one-line summary for selection lists.
func (m MovieInfo) ShortInfo() string {
	yearStr := ""
	if m.Year != 0 {
		yearStr = fmt.Sprintf(" (%d)", m.Year)
	}
	return fmt.Sprintf("%s%s - ⭐ %.1f", m.Title, yearStr, m.Rating)
}

// FormatRuntime renders minutes as "2h 19m" or "45m".
func FormatRuntime(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

func (m MovieInfo) ratingStars() string {
	switch {
	case m.Rating >= 8.0:
		return "⭐⭐⭐⭐⭐"
	case m.Rating >= 6.5:
		return "⭐⭐⭐⭐"
	case m.Rating >= 5.0:
		return "⭐⭐⭐"
	case m.Rating >= 3.5:
		return "⭐⭐"
	default:
		return "⭐"
	}
}

func (m MovieInfo) hashtags() string {
	var tags []string

	if titleTag := alnumOnly(m.Title); titleTag != "" {
		tags = append(tags, "#"+titleTag)
	}
	if m.Year != 0 {
		tags = append(tags, fmt.Sprintf("#%d", m.Year))
	}
	tags = append(tags, lo.Map(lo.Slice(m.Genres, 0, 2), func(genre string, _ int) string {
		return "#" + alnumOnly(genre)
	})...)

	if m.Rating >= 8.0 {
		tags = append(tags, "#MustWatch")
	} else if m.Rating >= 7.0 {
		tags = append(tags, "#Recommended")
	}

	tags = append(tags, "#Movies", "#CineBrain")
	return strings.Join(tags, " ")
}

// alnumOnly strips everything but letters and digits, for hashtag use.
func alnumOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// groupDigits renders n with thousands separators (1234567 -> "1,234,567").
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}
