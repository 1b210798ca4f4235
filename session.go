package kontenbot

import (
	"context"

	"github.com/rs/zerolog"
)

// Session is the per-chat messaging facade handlers talk through. It owns
// the edit-or-send fallback and logs transport failures with chat context.
type Session struct {
	ChatID int64
	client *Client
	log    zerolog.Logger
}

func (c *Client) session(chatID int64, logger zerolog.Logger) *Session {
	return &Session{
		ChatID: chatID,
		client: c,
		log:    logger.With().Int64("chat_id", chatID).Logger(),
	}
}

func (s *Session) SendText(ctx context.Context, text string) error {
	return s.SendTextWithConfig(ctx, text, MessageConfig{})
}

func (s *Session) SendTextWithConfig(ctx context.Context, text string, cfg MessageConfig) error {
	err := s.client.bot.SendMessage(ctx, s.ChatID, text, cfg)
	if err != nil {
		s.log.Error().Err(err).Msg("send message")
	}
	return err
}

// EditText rewrites an existing message. When the edit fails (the message is
// stale or already gone) it falls back to sending a fresh message; the
// fallback is best-effort and not retried.
func (s *Session) EditText(ctx context.Context, messageID int, text string, cfg MessageConfig) error {
	err := s.client.bot.EditMessageText(ctx, s.ChatID, messageID, text, cfg)
	if err == nil {
		return nil
	}
	s.log.Debug().Err(err).Int("message_id", messageID).Msg("edit failed, sending new message")

	if sendErr := s.client.bot.SendMessage(ctx, s.ChatID, text, cfg); sendErr != nil {
		s.log.Error().Err(sendErr).Msg("edit fallback send failed")
		return sendErr
	}
	return nil
}

func (s *Session) AnswerCallback(ctx context.Context, callbackQueryID string) {
	if err := s.client.bot.AnswerCallbackQuery(ctx, callbackQueryID, "", false); err != nil {
		s.log.Debug().Err(err).Msg("answer callback query")
	}
}

func (s *Session) AnswerCallbackAlert(ctx context.Context, callbackQueryID, text string) {
	if err := s.client.bot.AnswerCallbackQuery(ctx, callbackQueryID, text, true); err != nil {
		s.log.Debug().Err(err).Msg("answer callback query")
	}
}
