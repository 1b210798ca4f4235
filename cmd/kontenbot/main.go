package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tokosatria/kontenbot"
)

func main() {
	cfg, err := kontenbot.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "kontenbot: %v\n", err)
		os.Exit(1)
	}

	logger := kontenbot.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot, err := kontenbot.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("bootstrap failed")
	}

	bot.Start(ctx)
	logger.Info().Msg("kontenbot running")

	<-ctx.Done()
	bot.Stop()
	logger.Info().Msg("kontenbot stopped")
}
