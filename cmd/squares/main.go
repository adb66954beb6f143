package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"time"

	"github.com/fadedpez/pokersquares/internal/app"
	"github.com/fadedpez/pokersquares/internal/config"
	"github.com/fadedpez/pokersquares/internal/logging"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/services/session"
	"github.com/fadedpez/pokersquares/pkg/services/statistics"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

func main() {
	gameFlag := flag.String("game", string(entities.GamePokerSquares), "poker-squares or double-deal")
	playerFlag := flag.String("player", "", "player name (default: your login)")
	flag.Parse()

	game, err := entities.ParseGameType(*gameFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "usage: %s [-game poker-squares|double-deal] [-player NAME]\n", os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Client messages go through slog; storage keeps the leveled logger
	logger := slog.New(pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(ptermLevel(cfg.LogLevel))))
	storeLogger := logging.NewLogger(logging.WARN)

	ctx := context.Background()
	repo, err := app.OpenHistory(ctx, cfg, storeLogger)
	if err != nil {
		logger.Error("opening storage", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	playerID := *playerFlag
	if playerID == "" {
		playerID = loginName()
	}

	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Poker ", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Squares", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err != nil {
		logger.Error(err.Error())
	}
	pterm.Print(title)
	pterm.Info.Printfln("Playing %s as %s", game.Title(), playerID)

	c := &client{
		ctx:      ctx,
		playerID: playerID,
		games:    session.NewService(repo, session.WithLogger(storeLogger), session.WithShareURL(cfg.ShareURL)),
		stats:    statistics.NewService(repo),
		logger:   logger,
		prompt:   prompt,
		now:      time.Now,
	}

	switch game {
	case entities.GamePokerSquares:
		err = c.playPokerSquares()
	case entities.GameDoubleDeal:
		err = c.playDoubleDeal()
	}
	if err != nil {
		logger.Error("game stopped", "error", err)
		os.Exit(1)
	}

	c.printStats(game)
	pterm.Println("Thank you for playing...")
}

func prompt(text string) (string, error) {
	line, err := pterm.DefaultInteractiveTextInput.WithDefaultText(text).Show()
	pterm.Println()
	return line, err
}

func loginName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}

func ptermLevel(level logging.Level) pterm.LogLevel {
	switch level {
	case logging.DEBUG:
		return pterm.LogLevelDebug
	case logging.WARN:
		return pterm.LogLevelWarn
	case logging.ERROR:
		return pterm.LogLevelError
	default:
		return pterm.LogLevelInfo
	}
}
