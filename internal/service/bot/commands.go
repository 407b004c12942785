package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/business"
)

const helpText = `📖 <b>CineBrain Movie Bot Help</b>

<b>Commands:</b>
/start - Welcome message
/help - This help message
/status - Check bot status
/parse - Test filename parser
/cancel - Cancel current operation
/about - About this bot

<b>Features:</b>
• <b>Smart Parser:</b> Extracts movie title from any filename
• <b>Manual Edit:</b> Correct the title if needed
• <b>Multiple Results:</b> Choose from up to 5 matches
• <b>Rich Details:</b> Rating, runtime, genres, synopsis
• <b>Auto Posting:</b> Sends to configured channel

<b>How to use /parse:</b>
Send: <code>/parse Movie.Name.2024.1080p.mkv</code>

<b>Tips:</b>
• Include year in filename for better results
• Edit title if auto-detection fails
• Select the correct movie from options

<i>Visit CineBrain for more!</i>`

const aboutText = `🎬 <b>CineBrain Movie Bot</b>

Version: 1.0.0
API: TMDB v3

<b>Features:</b>
• Advanced filename parsing
• Real-time TMDB integration
• Interactive movie selection
• Professional templates
• Smart caching system
• Retry logic with exponential backoff

🌐 Visit CineBrain

<i>Made with ❤️ for movie enthusiasts</i>`

func (h *Handler) handleCommand(msg *tgbotapi.Message) {
	log.Debug().Str("command", msg.Command()).Int64("user", msg.From.ID).Msg("Received command")

	switch msg.Command() {
	case "start":
		h.reply(msg.Chat.ID, startText(msg.From.FirstName))
	case "help":
		h.reply(msg.Chat.ID, helpText)
	case "status":
		h.reply(msg.Chat.ID, h.statusText())
	case "parse":
		h.reply(msg.Chat.ID, h.parseText(msg.CommandArguments()))
	case "about":
		h.reply(msg.Chat.ID, aboutText)
	case "stats":
		if !h.settings.UserAllowed(msg.From.ID) {
			h.reply(msg.Chat.ID, "⛔ This command is for administrators only.")
			return
		}
		h.reply(msg.Chat.ID, statsText(h.manager.Stats()))
	case "cancel":
		h.endSession(msg.From.ID)
		h.reply(msg.Chat.ID, "❌ Operation cancelled.")
	default:
		h.reply(msg.Chat.ID, "Unknown command. Try /help.")
	}
}

func startText(firstName string) string {
	return fmt.Sprintf(`👋 Hello, %s!

🎬 <b>Welcome to CineBrain Movie Bot!</b>

I'm an advanced bot that enriches your movie files with:
• 🔍 Smart filename parsing
• ✏️ Title editing capability
• 📸 Movie posters from TMDB
• ⭐ Ratings and reviews
• 🎭 Genres and runtime
• 📤 Automatic channel posting

<b>How to use:</b>
1. Forward me a movie file
2. I'll detect the movie title
3. Choose from search results
4. Movie gets posted to channel

Supported formats: MKV, MP4, AVI, MOV, and more!

<i>Powered by CineBrain 🤖</i>`, firstName)
}

func (h *Handler) statusText() string {
	return fmt.Sprintf(`🤖 <b>CineBrain Bot Status</b>

<b>Bot Status:</b> ✅ Online
<b>TMDB API:</b> ✅ Connected
<b>Channel ID:</b> <code>%d</code>
<b>Cache TTL:</b> %ds
<b>Max Retries:</b> %d

🚀 <b>Ready to process movies!</b>

<i>Powered by CineBrain</i>`,
		h.settings.ChannelID, h.settings.PosterCacheTTL, h.settings.MaxRetries)
}

// parseText runs the filename parser on the command argument and shows the
// extraction, without searching TMDB.
func (h *Handler) parseText(args string) string {
	filename := strings.TrimSpace(args)
	if filename == "" {
		return `<b>Filename Parser Test</b>

Usage: <code>/parse filename.mkv</code>

Examples:
• <code>/parse Movie.Name.2024.1080p.WEB-DL.mkv</code>
• <code>/parse Movie_2023_BluRay_x264.mp4</code>
• <code>/parse Movie (2022) Hindi 720p.avi</code>`
	}

	parsed := h.parser.Parse(filename)
	yearStr := "Not detected"
	finalYear := ""
	if parsed.Year != 0 {
		yearStr = fmt.Sprintf("%d", parsed.Year)
		finalYear = fmt.Sprintf(" (%d)", parsed.Year)
	}

	return fmt.Sprintf(`🔍 <b>Filename Parser Result</b>

<b>Input:</b>
<code>%s</code>

<b>Parsed Result:</b>
🎬 <b>Title:</b> %s
📅 <b>Year:</b> %s

<b>Final:</b> <u>%s%s</u>

<i>This is what will be searched on TMDB</i>`,
		filename, parsed.Title, yearStr, parsed.Title, finalYear)
}

func statsText(stats business.Stats) string {
	return fmt.Sprintf(`📊 <b>Bot Statistics</b>

🎬 <b>Files Parsed:</b> %d
🔍 <b>Searches Performed:</b> %d
🚫 <b>Failed Searches:</b> %d
💾 <b>Cache Hits:</b> %d
📂 <b>Cached Posters:</b> %d
⏳ <b>Uptime:</b> %s

<i>Stats are reset on bot restart</i>`,
		stats.FilesParsed, stats.Searches, stats.NoResults,
		stats.CacheHits, stats.CacheEntries, formatUptime(stats.Uptime))
}

// formatUptime renders a duration as "2d 3h 4m" dropping zero leading units.
func formatUptime(d time.Duration) string {
	d = d.Round(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
