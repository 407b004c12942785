package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/model"
)

// verifyChannelAccess checks the bot can post to the configured channel
// before the first update is handled.
func (h *Handler) verifyChannelAccess() error {
	chat, err := h.api.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: h.settings.ChannelID},
	})
	if err != nil {
		return fmt.Errorf("cannot access channel %d: %w", h.settings.ChannelID, err)
	}

	member, err := h.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: h.settings.ChannelID,
			UserID: h.api.Self.ID,
		},
	})
	if err != nil {
		return fmt.Errorf("cannot check channel membership: %w", err)
	}
	if !member.IsAdministrator() && !member.IsCreator() {
		return fmt.Errorf("bot is not an admin in channel %q", chat.Title)
	}

	log.Info().Str("channel", chat.Title).Int64("id", h.settings.ChannelID).Msg("Verified channel access")
	return nil
}

// postToChannel sends the movie card to the channel and forwards the original
// file after it.
func (h *Handler) postToChannel(s *session, movie model.MovieInfo) error {
	caption := movie.FormattedCaption()

	poster, err := h.manager.Poster(movie)
	if err != nil {
		log.Debug().Err(err).Str("title", movie.Title).Msg("Posting without poster")
		msg := tgbotapi.NewMessage(h.settings.ChannelID, caption)
		msg.ParseMode = tgbotapi.ModeHTML
		if err := h.sendWithRetry(msg); err != nil {
			return err
		}
	} else {
		photo := tgbotapi.NewPhoto(h.settings.ChannelID, tgbotapi.FileBytes{Name: "poster.jpg", Bytes: poster})
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		if err := h.sendWithRetry(photo); err != nil {
			return err
		}
	}

	forward := tgbotapi.NewForward(h.settings.ChannelID, s.fileChatID, s.fileMsgID)
	if err := h.sendWithRetry(forward); err != nil {
		return fmt.Errorf("forwarding file: %w", err)
	}

	log.Info().Str("title", movie.Title).Msg("Posted movie to channel")
	return nil
}

// sendWithRetry sends a message, backing off attempt*attempt seconds between
// transient failures.
func (h *Handler) sendWithRetry(c tgbotapi.Chattable) error {
	var err error
	for attempt := 1; attempt <= h.settings.MaxRetries; attempt++ {
		if _, err = h.api.Send(c); err == nil {
			return nil
		}
		if !isRetryableError(err) {
			return err
		}
		if attempt < h.settings.MaxRetries {
			wait := time.Duration(attempt*attempt) * time.Second
			log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("Send failed, retrying")
			time.Sleep(wait)
		}
	}
	return err
}

// isRetryableError reports whether a Telegram API error is worth retrying.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, keyword := range []string{
		"timeout",
		"timed out",
		"deadline exceeded",
		"connection reset",
		"too many requests",
		"retry after",
		"bad gateway",
		"gateway timeout",
	} {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}
