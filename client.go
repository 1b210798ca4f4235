package kontenbot

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// How long a confirmation stays on screen before the root menu reappears.
const (
	deleteMenuDelay = 1500 * time.Millisecond
	flowMenuDelay   = time.Second
)

// Client wires the transport, the document store, the per-chat state store
// and the dispatch queue together, and routes every update through the
// operator guard first.
type Client struct {
	bot        BotAPI
	store      DocumentStore
	states     *StateStore
	names      map[string]string
	operatorID int64
	queue      *DispatchQueue
	log        zerolog.Logger

	// Delays before the root menu re-renders after a terminal action.
	// Zero makes the re-render synchronous; tests rely on that.
	deleteDelay time.Duration
	flowDelay   time.Duration
}

func newClient(operatorID int64, api BotAPI, store DocumentStore, logger zerolog.Logger) *Client {
	c := &Client{
		bot:         api,
		store:       store,
		states:      NewStateStore(),
		names:       mergeDisplayNames(logger, paymentMethods, socialMedia),
		operatorID:  operatorID,
		queue:       NewDispatchQueue(1, 100),
		log:         logger,
		deleteDelay: deleteMenuDelay,
		flowDelay:   flowMenuDelay,
	}
	c.queue.SetProcessHandler(c.processUpdate)
	return c
}

func (c *Client) isOperator(actorID int64) bool {
	return actorID == c.operatorID
}

// displayName resolves a document id against the merged catalog lookup,
// upper-cased the way every operator-facing screen shows it.
func (c *Client) displayName(docID, fallback string) string {
	if name, ok := c.names[docID]; ok {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(fallback)
}

func (c *Client) processUpdate(update *Update) {
	if update == nil {
		return
	}

	ctx := context.Background()
	logger := c.log.With().Str("trace_id", uuid.NewString()).Logger()

	switch {
	case update.CallbackQuery != nil:
		c.processCallback(ctx, logger, update.CallbackQuery)
	case update.Message != nil:
		c.processMessage(ctx, logger, update.Message)
	}
}

func (c *Client) processCallback(ctx context.Context, logger zerolog.Logger, query *CallbackQuery) {
	if query.Message == nil || query.From == nil {
		return
	}

	s := c.session(query.Message.Chat.ID, logger)
	if !c.isOperator(query.From.ID) {
		s.AnswerCallbackAlert(ctx, query.ID, deniedCallbackText)
		return
	}

	s.AnswerCallback(ctx, query.ID)
	c.handleCallback(ctx, s, query)
}

func (c *Client) processMessage(ctx context.Context, logger zerolog.Logger, message *Message) {
	actorID := message.Chat.ID
	if message.From != nil {
		actorID = message.From.ID
	}

	s := c.session(message.Chat.ID, logger)
	if !c.isOperator(actorID) {
		s.SendText(ctx, deniedText)
		return
	}

	switch {
	case message.IsCommand():
		c.handleCommand(ctx, s, message)
	case len(message.Photo) > 0:
		c.handlePhoto(ctx, s, message)
	case message.Text != "":
		c.handleText(ctx, s, message)
	}
}

// /start and /batal discard any in-flight flow and show the root menu.
// Every other command is ignored.
func (c *Client) handleCommand(ctx context.Context, s *Session, message *Message) {
	switch message.Command() {
	case CmdStart, CmdCancel:
		c.states.Clear(s.ChatID)
		c.sendMainMenu(ctx, s, 0)
	}
}

// sendMainMenu renders the root menu, editing messageID in place when one is
// given and sending a fresh message otherwise.
func (c *Client) sendMainMenu(ctx context.Context, s *Session, messageID int) {
	cfg := MessageConfig{ReplyMarkup: mainMenuMarkup()}
	if messageID != 0 {
		s.EditText(ctx, messageID, mainMenuText, cfg)
		return
	}
	s.SendTextWithConfig(ctx, mainMenuText, cfg)
}

// scheduleMainMenu re-renders the root menu as a fresh message after delay,
// used after confirmations so the operator sees them before the menu returns.
func (c *Client) scheduleMainMenu(s *Session, delay time.Duration) {
	if delay <= 0 {
		c.sendMainMenu(context.Background(), s, 0)
		return
	}
	time.AfterFunc(delay, func() {
		c.sendMainMenu(context.Background(), s, 0)
	})
}
