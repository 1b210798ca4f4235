package kontenbot

import (
	"context"

	"github.com/rs/zerolog"
)

// Bot is the assembled application: transport, store, client, queue.
type Bot struct {
	client    *Client
	transport *botImpl
	store     *firestoreStore
}

func New(ctx context.Context, cfg *Config, logger zerolog.Logger) (*Bot, error) {
	store, err := newFirestoreStore(ctx, []byte(cfg.FirebaseServiceAccountJSON))
	if err != nil {
		return nil, err
	}

	client := newClient(cfg.AdminUserID, nil, store, logger)

	transport, err := newBotImpl(cfg.TelegramToken, client.queue.Enqueue)
	if err != nil {
		store.Close()
		return nil, err
	}
	client.bot = transport

	return &Bot{
		client:    client,
		transport: transport,
		store:     store,
	}, nil
}

// Start begins long polling; updates drain through the dispatch queue until
// ctx is canceled or Stop is called.
func (b *Bot) Start(ctx context.Context) {
	b.client.queue.Start()
	ctx, cancel := context.WithCancel(ctx)
	b.transport.setCancel(cancel)
	go b.transport.Start(ctx)
}

func (b *Bot) Stop() {
	b.transport.Stop()
	b.client.queue.Stop()
	b.store.Close()
}
