package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadedpez/pokersquares/internal/app"
	"github.com/fadedpez/pokersquares/internal/config"
	idiscord "github.com/fadedpez/pokersquares/internal/discord"
	"github.com/fadedpez/pokersquares/internal/logging"
	"github.com/fadedpez/pokersquares/pkg/discord"
	"github.com/fadedpez/pokersquares/pkg/scheduler"
	"github.com/fadedpez/pokersquares/pkg/services/session"
	"github.com/fadedpez/pokersquares/pkg/services/statistics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Default.Error("Error loading configuration: %v", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.LogLevel)

	if err := cfg.ValidateDiscord(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := app.OpenHistory(ctx, cfg, logger)
	if err != nil {
		logger.Error("Error opening storage: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("Error closing repository: %v", err)
		}
	}()

	games := session.NewService(repo,
		session.WithLogger(logger),
		session.WithShareURL(cfg.ShareURL),
	)

	dg, err := idiscord.NewSession(cfg.Token)
	if err != nil {
		logger.Error("Error creating Discord session: %v", err)
		os.Exit(1)
	}

	bot := discord.NewBot(dg, cfg.AppID, cfg.GuildID, games, statistics.NewService(repo), logger)
	if err := bot.Start(); err != nil {
		logger.Error("Error starting bot: %v", err)
		os.Exit(1)
	}

	retention := scheduler.NewRetentionScheduler(repo, cfg.RetentionDays, logger)
	retention.Start(ctx)

	logger.Info("Bot is running. Press Ctrl+C to exit")
	<-ctx.Done()

	// Cleanup and exit
	logger.Info("Shutting down...")
	retention.Stop()
	if err := bot.Stop(); err != nil {
		logger.Error("Error stopping bot: %v", err)
	}
}
