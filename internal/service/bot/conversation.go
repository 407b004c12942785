package bot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/model"
)

type sessionState int

const (
	stateSelect sessionState = iota
	stateEdit
)

// session tracks one user's in-flight movie file between the upload and the
// channel post.
type session struct {
	state sessionState

	chatID     int64
	fileChatID int64
	fileMsgID  int

	filename string
	title    string
	year     int
	movies   []model.MovieInfo

	promptMsgID   int
	promptIsPhoto bool
}

const (
	cbSearch      = "search"
	cbEdit        = "edit"
	cbCancel      = "cancel"
	cbNone        = "none"
	cbMoviePrefix = "movie_"
)

var supportedExtensions = map[string]struct{}{
	".mkv": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wmv": {}, ".flv": {},
	".webm": {}, ".m4v": {}, ".mpg": {}, ".mpeg": {}, ".ts": {}, ".vob": {},
	".m2ts": {}, ".3gp": {}, ".f4v": {}, ".ogv": {},
}

var archiveExtensions = []string{".zip", ".rar", ".7z", ".gz", ".bz2", ".tar", ".xz", ".iso"}

var (
	splitArchiveRegex = regexp.MustCompile(`\.(zip|rar|7z|gz|bz2|tar|xz)\.\d{3,4}$`)
	manualYearRegex   = regexp.MustCompile(`\b(19[0-9]{2}|20[0-3][0-9])\b`)
)

// isSupportedFile reports whether filename looks like a movie file the bot
// should process. Archives and split archive parts are rejected.
func isSupportedFile(filename string) bool {
	if filename == "" {
		return false
	}
	lower := strings.ToLower(filename)
	if splitArchiveRegex.MatchString(lower) {
		return false
	}
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	if dot := strings.LastIndex(lower, "."); dot != -1 {
		_, ok := supportedExtensions[lower[dot:]]
		return ok
	}
	return false
}

// isSplitArchivePart reports whether filename is one part of a multipart
// archive. Those are skipped silently since more parts usually follow.
func isSplitArchivePart(filename string) bool {
	return splitArchiveRegex.MatchString(strings.ToLower(filename))
}

func (h *Handler) handleDocument(msg *tgbotapi.Message) {
	userID := msg.From.ID
	if !h.settings.UserAllowed(userID) {
		log.Warn().Int64("user", userID).Msg("Unauthorized user")
		h.reply(msg.Chat.ID, "⛔ You are not authorized to use this bot.")
		return
	}

	filename := msg.Document.FileName
	log.Info().Str("filename", filename).Int64("user", userID).Msg("Received document")

	if !isSupportedFile(filename) {
		if !isSplitArchivePart(filename) {
			h.reply(msg.Chat.ID, "❌ This doesn't appear to be a movie file. Supported formats: MKV, MP4, AVI, MOV, etc.")
		}
		return
	}

	parsed := h.parser.Parse(filename)

	s := &session{
		state:      stateSelect,
		chatID:     msg.Chat.ID,
		fileChatID: msg.Chat.ID,
		fileMsgID:  msg.MessageID,
		filename:   filename,
		title:      parsed.Title,
		year:       parsed.Year,
	}
	h.setSession(userID, s)

	yearStr := ""
	if parsed.Year != 0 {
		yearStr = fmt.Sprintf(" (%d)", parsed.Year)
	}
	prompt := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf(
		"📽️ <b>Detected Movie:</b>\n<code>%s%s</code>\n\nChoose an action:",
		parsed.Title, yearStr))
	prompt.ParseMode = tgbotapi.ModeHTML
	prompt.ReplyMarkup = actionKeyboard()

	sent, err := h.api.Send(prompt)
	if err != nil {
		log.Error().Err(err).Msg("Could not send action prompt")
		h.endSession(userID)
		return
	}
	s.promptMsgID = sent.MessageID
}

func (h *Handler) handleCallback(query *tgbotapi.CallbackQuery) {
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Debug().Err(err).Msg("Could not answer callback query")
	}

	userID := query.From.ID
	s, ok := h.session(userID)
	if !ok {
		if edit, ok := expiredSessionEdit(query); ok {
			h.send(edit)
		}
		return
	}

	switch data := query.Data; {
	case data == cbCancel:
		h.editPrompt(s, "❌ Cancelled.", nil)
		h.endSession(userID)

	case data == cbEdit:
		s.state = stateEdit
		h.editPrompt(s, "✏️ Please type the correct movie title:\n(You can include year like: 'Inception 2010')", nil)

	case data == cbSearch:
		h.editPrompt(s, "🔍 Searching TMDB...", nil)
		h.searchAndShow(userID, s)

	case data == cbNone:
		s.state = stateEdit
		h.editPrompt(s, "✏️ Please type the correct movie title:", nil)

	case strings.HasPrefix(data, cbMoviePrefix):
		index, err := strconv.Atoi(strings.TrimPrefix(data, cbMoviePrefix))
		if err != nil || index < 0 || index >= len(s.movies) {
			h.editPrompt(s, "❌ Invalid selection.", nil)
			h.endSession(userID)
			return
		}
		h.processSelection(userID, s, s.movies[index])
	}
}

// handleText receives plain messages, which only matter while a session waits
// for a corrected title.
func (h *Handler) handleText(msg *tgbotapi.Message) {
	userID := msg.From.ID
	s, ok := h.session(userID)
	if !ok || s.state != stateEdit {
		return
	}

	title, year := parseManualTitle(msg.Text)
	if title == "" {
		h.reply(msg.Chat.ID, "✏️ Please type a movie title.")
		return
	}
	s.title = title
	s.year = year
	s.state = stateSelect

	prompt := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("🔍 Searching for: %s", title))
	sent, err := h.api.Send(prompt)
	if err != nil {
		log.Error().Err(err).Msg("Could not send search status")
		return
	}
	s.promptMsgID = sent.MessageID
	s.promptIsPhoto = false
	h.searchAndShow(userID, s)
}

// parseManualTitle splits a corrected title like "Inception 2010" into the
// title and an optional year.
func parseManualTitle(text string) (string, int) {
	text = strings.TrimSpace(text)
	match := manualYearRegex.FindString(text)
	if match == "" {
		return text, 0
	}
	year, _ := strconv.Atoi(match)
	yearRemoval := regexp.MustCompile(`\b` + match + `\b`)
	title := strings.TrimSpace(yearRemoval.ReplaceAllString(text, ""))
	return title, year
}

// expiredSessionEdit builds the reply for a callback whose session is gone.
// Callbacks on old prompts can arrive with no accessible message; those are
// dropped.
func expiredSessionEdit(query *tgbotapi.CallbackQuery) (tgbotapi.EditMessageTextConfig, bool) {
	if query.Message == nil {
		return tgbotapi.EditMessageTextConfig{}, false
	}
	return tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID,
		"❌ Session expired. Please send the file again."), true
}

func (h *Handler) searchAndShow(userID int64, s *session) {
	movies, err := h.manager.Search(s.title, s.year)
	if err != nil || len(movies) == 0 {
		log.Info().Err(err).Int64("user", userID).Str("title", s.title).Msg("Search returned no results")
		h.editPromptWithKeyboard(s,
			fmt.Sprintf("❌ No results found for: <b>%s</b>\n\nTry editing the title or cancel.", s.title),
			noResultsKeyboard())
		return
	}
	s.movies = movies

	caption := selectionCaption(movies)
	keyboard := selectionKeyboard(movies)

	// Lead with the best match's poster when we can get it
	poster, err := h.manager.Poster(movies[0])
	if err != nil {
		log.Debug().Err(err).Str("title", movies[0].Title).Msg("Could not fetch poster for selection")
		h.editPromptWithKeyboard(s, caption, keyboard)
		return
	}

	if _, err := h.api.Request(tgbotapi.NewDeleteMessage(s.chatID, s.promptMsgID)); err != nil {
		log.Debug().Err(err).Msg("Could not delete prompt message")
	}
	photo := tgbotapi.NewPhoto(s.chatID, tgbotapi.FileBytes{Name: "poster.jpg", Bytes: poster})
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	photo.ReplyMarkup = keyboard

	sent, err := h.api.Send(photo)
	if err != nil {
		log.Error().Err(err).Msg("Could not send selection poster")
		h.editPromptWithKeyboard(s, caption, keyboard)
		return
	}
	s.promptMsgID = sent.MessageID
	s.promptIsPhoto = true
}

func (h *Handler) processSelection(userID int64, s *session, movie model.MovieInfo) {
	h.editPrompt(s, fmt.Sprintf("📤 Posting <b>%s</b> to channel...", movie.Title), nil)

	if err := h.postToChannel(s, movie); err != nil {
		log.Error().Err(err).Str("title", movie.Title).Msg("Could not post to channel")
		h.editPrompt(s, "⚠️ There was an issue posting to the channel.", nil)
	} else {
		h.editPrompt(s, fmt.Sprintf("✅ Successfully posted <b>%s</b> to channel!", movie.Title), nil)
	}
	h.endSession(userID)
}

// editPrompt updates the prompt message in place, editing the caption when
// the prompt is a poster photo.
func (h *Handler) editPrompt(s *session, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	if s.promptIsPhoto {
		edit := tgbotapi.NewEditMessageCaption(s.chatID, s.promptMsgID, text)
		edit.ParseMode = tgbotapi.ModeHTML
		edit.ReplyMarkup = keyboard
		h.send(edit)
		return
	}
	edit := tgbotapi.NewEditMessageText(s.chatID, s.promptMsgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = keyboard
	h.send(edit)
}

func (h *Handler) editPromptWithKeyboard(s *session, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	h.editPrompt(s, text, &keyboard)
}

func actionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Search", cbSearch),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit Title", cbEdit),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", cbCancel),
		),
	)
}

func noResultsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit Title", cbEdit),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", cbCancel),
		),
	)
}

func selectionKeyboard(movies []model.MovieInfo) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, movie := range movies {
		yearStr := ""
		if movie.Year != 0 {
			yearStr = fmt.Sprintf(" (%d)", movie.Year)
		}
		label := fmt.Sprintf("%d. %s%s ⭐%.1f", i+1, movie.Title, yearStr, movie.Rating)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbMoviePrefix, i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ None of these", cbNone),
		tgbotapi.NewInlineKeyboardButtonData("🚫 Cancel", cbCancel),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// selectionCaption lists the candidates with rating, runtime, genres and a
// short overview so the user can tell similar titles apart.
func selectionCaption(movies []model.MovieInfo) string {
	var b strings.Builder
	b.WriteString("🎬 <b>Select the correct movie:</b>\n\n")
	for i, movie := range movies {
		yearStr := ""
		if movie.Year != 0 {
			yearStr = fmt.Sprintf(" (%d)", movie.Year)
		}
		fmt.Fprintf(&b, "<b>%d.</b> %s%s\n", i+1, movie.Title, yearStr)
		fmt.Fprintf(&b, "   ⭐ %.1f/10", movie.Rating)
		if movie.Runtime > 0 {
			fmt.Fprintf(&b, " | ⏱ %s", model.FormatRuntime(movie.Runtime))
		}
		b.WriteString("\n")
		if len(movie.Genres) > 0 {
			genres := movie.Genres
			if len(genres) > 3 {
				genres = genres[:3]
			}
			fmt.Fprintf(&b, "   🎭 %s\n", strings.Join(genres, ", "))
		}
		if movie.Overview != "" {
			overview := movie.Overview
			if len(overview) > 100 {
				overview = overview[:100] + "..."
			}
			fmt.Fprintf(&b, "   <i>%s</i>\n", overview)
		}
		b.WriteString("\n")
	}
	return b.String()
}
