// Package bot runs the Telegram bot: it receives movie files, drives the
// title confirmation conversation and posts enriched movie cards to the
// configured channel.
package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/business"
	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/config"
	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/parser"
)

const updateTimeout = 30 // seconds, long polling

type Handler struct {
	api      *tgbotapi.BotAPI
	settings *config.Settings
	manager  business.MovieManager
	parser   *parser.Parser

	mu       sync.Mutex
	sessions map[int64]*session
}

// NewHandler connects to the Telegram Bot API and returns a ready Handler.
func NewHandler(settings *config.Settings, manager business.MovieManager, p *parser.Parser) (*Handler, error) {
	api, err := tgbotapi.NewBotAPI(settings.BotToken)
	if err != nil {
		return nil, err
	}
	log.Info().Str("username", api.Self.UserName).Int64("id", api.Self.ID).Msg("Authorized on Telegram")

	return &Handler{
		api:      api,
		settings: settings,
		manager:  manager,
		parser:   p,
		sessions: make(map[int64]*session),
	}, nil
}

// Run polls for updates until ctx is cancelled.
func (h *Handler) Run(ctx context.Context) error {
	if err := h.verifyChannelAccess(); err != nil {
		return err
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeout
	updates := h.api.GetUpdatesChan(u)

	log.Info().Msg("Polling for updates")
	for {
		select {
		case <-ctx.Done():
			h.api.StopReceivingUpdates()
			log.Info().Msg("Stopped polling")
			return nil
		case update := <-updates:
			h.handleUpdate(update)
		}
	}
}

func (h *Handler) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(update.CallbackQuery)
	case update.Message == nil:
		return
	case update.Message.IsCommand():
		h.handleCommand(update.Message)
	case update.Message.Document != nil:
		h.handleDocument(update.Message)
	case update.Message.Text != "":
		h.handleText(update.Message)
	}
}

// send dispatches a message to Telegram, logging failures instead of
// propagating them so a single failed reply does not kill the update loop.
func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.api.Send(c); err != nil {
		log.Error().Err(err).Msg("Could not send message")
	}
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	h.send(msg)
}

func (h *Handler) session(userID int64) (*session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[userID]
	return s, ok
}

func (h *Handler) setSession(userID int64, s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[userID] = s
}

func (h *Handler) endSession(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, userID)
}
