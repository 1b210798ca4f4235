package kontenbot

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// BotAPI is the slice of the Telegram transport this bot uses. botImpl
// implements it against go-telegram/bot; tests substitute a recorder.
type BotAPI interface {
	SendMessage(ctx context.Context, chatID int64, text string, cfg MessageConfig) error
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, cfg MessageConfig) error
	AnswerCallbackQuery(ctx context.Context, callbackQueryID string, text string, showAlert bool) error
	FileLink(ctx context.Context, fileID string) (string, error)
}

type botImpl struct {
	b      *bot.Bot
	cancel context.CancelFunc
}

func newBotImpl(token string, onUpdate func(*Update)) (*botImpl, error) {
	b, err := bot.New(token, bot.WithDefaultHandler(func(ctx context.Context, _ *bot.Bot, raw *models.Update) {
		u := updateFromModels(raw)
		if u != nil {
			onUpdate(u)
		}
	}))
	if err != nil {
		return nil, err
	}
	return &botImpl{b: b}, nil
}

func updateFromModels(raw *models.Update) *Update {
	if raw == nil {
		return nil
	}

	if raw.CallbackQuery != nil {
		query := callbackQueryFromModels(raw.CallbackQuery)
		if query != nil {
			return &Update{CallbackQuery: query}
		}
	}

	if raw.Message == nil {
		return nil
	}
	return &Update{Message: messageFromModels(raw.Message)}
}

func messageFromModels(m *models.Message) *Message {
	if m == nil {
		return nil
	}
	msg := &Message{
		MessageID: m.ID,
		Chat:      Chat{ID: m.Chat.ID, Type: string(m.Chat.Type)},
		Text:      m.Text,
	}
	if m.From != nil {
		msg.From = &MessageSender{ID: m.From.ID}
	}
	for _, p := range m.Photo {
		msg.Photo = append(msg.Photo, PhotoSize{
			FileID: p.FileID,
			Width:  p.Width,
			Height: p.Height,
		})
	}
	return msg
}

func callbackQueryFromModels(q *models.CallbackQuery) *CallbackQuery {
	if q == nil {
		return nil
	}

	query := &CallbackQuery{
		ID:   q.ID,
		Data: q.Data,
	}
	query.From = &MessageSender{ID: q.From.ID}

	if q.Message.Message != nil {
		query.Message = messageFromModels(q.Message.Message)
	} else if q.Message.InaccessibleMessage != nil {
		query.Message = &Message{
			MessageID: q.Message.InaccessibleMessage.MessageID,
			Chat: Chat{
				ID:   q.Message.InaccessibleMessage.Chat.ID,
				Type: string(q.Message.InaccessibleMessage.Chat.Type),
			},
		}
	}

	return query
}

func (bi *botImpl) Start(ctx context.Context) {
	bi.b.Start(ctx)
}

func (bi *botImpl) Stop() {
	if bi.cancel != nil {
		bi.cancel()
	}
}

func (bi *botImpl) setCancel(cancel context.CancelFunc) {
	bi.cancel = cancel
}

func convertParseMode(pm ParseMode) models.ParseMode {
	switch pm {
	case ParseModeHTML:
		return models.ParseModeHTML
	case ParseModeMarkdown:
		return models.ParseModeMarkdown
	default:
		return ""
	}
}

func convertReplyMarkup(markup ReplyMarkup) models.ReplyMarkup {
	switch m := markup.(type) {
	case nil:
		return nil
	case *InlineKeyboardMarkup:
		if m == nil {
			return nil
		}
		rows := make([][]models.InlineKeyboardButton, 0, len(m.InlineKeyboard))
		for _, row := range m.InlineKeyboard {
			btns := make([]models.InlineKeyboardButton, 0, len(row))
			for _, btn := range row {
				btns = append(btns, models.InlineKeyboardButton{
					Text:         btn.Text,
					URL:          btn.URL,
					CallbackData: btn.CallbackData,
				})
			}
			rows = append(rows, btns)
		}
		return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
	case InlineKeyboardMarkup:
		return convertReplyMarkup(&m)
	default:
		return nil
	}
}

func mapSendError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, bot.ErrorForbidden) {
		return ErrForbidden
	}
	msg := err.Error()
	if strings.Contains(msg, errChatNotFound) || strings.Contains(msg, errNotMember) {
		return ErrChatNotFound
	}
	return err
}

func (bi *botImpl) SendMessage(ctx context.Context, chatID int64, text string, cfg MessageConfig) error {
	_, err := bi.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   convertParseMode(cfg.ParseMode),
		ReplyMarkup: convertReplyMarkup(cfg.ReplyMarkup),
	})
	return mapSendError(err)
}

func (bi *botImpl) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, cfg MessageConfig) error {
	_, err := bi.b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   convertParseMode(cfg.ParseMode),
		ReplyMarkup: convertReplyMarkup(cfg.ReplyMarkup),
	})
	return mapSendError(err)
}

func (bi *botImpl) AnswerCallbackQuery(ctx context.Context, callbackQueryID string, text string, showAlert bool) error {
	_, err := bi.b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackQueryID,
		Text:            text,
		ShowAlert:       showAlert,
	})
	return mapSendError(err)
}

func (bi *botImpl) FileLink(ctx context.Context, fileID string) (string, error) {
	file, err := bi.b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return "", mapSendError(err)
	}
	return bi.b.FileDownloadLink(file), nil
}
