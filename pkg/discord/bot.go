package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	idiscord "github.com/fadedpez/pokersquares/internal/discord"
	"github.com/fadedpez/pokersquares/internal/logging"
	"github.com/fadedpez/pokersquares/pkg/discord/commands"
	"github.com/fadedpez/pokersquares/pkg/services/session"
	"github.com/fadedpez/pokersquares/pkg/services/statistics"
)

const interactionTimeout = 10 * time.Second

// Bot represents the Discord bot instance
type Bot struct {
	session idiscord.SessionHandler
	appID   string
	guildID string

	games  *session.Service
	stats  *commands.StatsCommand
	logger *logging.Logger
	now    func() time.Time

	// Interaction tracking to prevent duplicates
	interactionMu         sync.Mutex
	processedInteractions map[string]time.Time
	lastCleanupTime       time.Time
}

// Option configures a Bot
type Option func(*Bot)

// WithClock replaces time.Now, which picks the leaderboard day
func WithClock(now func() time.Time) Option {
	return func(b *Bot) {
		b.now = now
	}
}

// NewBot creates a new instance of the bot
func NewBot(sess idiscord.SessionHandler, appID, guildID string, games *session.Service, stats *statistics.Service, logger *logging.Logger, opts ...Option) *Bot {
	if logger == nil {
		logger = logging.Default
	}
	b := &Bot{
		session:               sess,
		appID:                 appID,
		guildID:               guildID,
		games:                 games,
		logger:                logger,
		now:                   time.Now,
		processedInteractions: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.stats = commands.NewStatsCommand(stats, b.now)
	b.lastCleanupTime = b.now()
	return b
}

// Commands returns every slash command the bot answers
func (b *Bot) Commands() []*discordgo.ApplicationCommand {
	return append([]*discordgo.ApplicationCommand{
		{
			Name:        CommandPokerSquares,
			Description: "Play today's Poker Squares",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "play",
					Description: "Start or resume today's game",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "deal",
					Description: "Turn over the next card",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "autodeal",
					Description: "Toggle dealing the next card as soon as one is placed",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
		{
			Name:        CommandDoubleDeal,
			Description: "Play Double Deal",
		},
	}, b.stats.Commands()...)
}

// Start connects to Discord and registers the slash commands
func (b *Bot) Start() error {
	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleInteractionCreate)

	// Open websocket connection
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	return b.registerCommands()
}

// Stop closes the Discord connection
func (b *Bot) Stop() error {
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("error closing connection: %w", err)
	}
	return nil
}

// registerCommands creates our commands and removes any the bot no longer answers
func (b *Bot) registerCommands() error {
	wanted := make(map[string]bool)
	for _, cmd := range b.Commands() {
		wanted[cmd.Name] = true
	}

	existing, err := b.session.ApplicationCommands(b.appID, b.guildID)
	if err != nil {
		return fmt.Errorf("error listing commands: %w", err)
	}
	for _, cmd := range existing {
		if wanted[cmd.Name] {
			continue
		}
		if err := b.session.ApplicationCommandDelete(b.appID, b.guildID, cmd.ID); err != nil {
			b.logger.Warn("Error deleting stale command %s: %v", cmd.Name, err)
			continue
		}
		b.logger.Info("Deleted stale command: %s", cmd.Name)
	}

	for _, cmd := range b.Commands() {
		if _, err := b.session.ApplicationCommandCreate(b.appID, b.guildID, cmd); err != nil {
			return fmt.Errorf("error creating command %s: %w", cmd.Name, err)
		}
		b.logger.Info("Successfully registered command: %s", cmd.Name)
	}
	return nil
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("Bot is ready: %v#%v", r.User.Username, r.User.Discriminator)
}

func (b *Bot) handleInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	b.HandleInteraction(i)
}

// HandleInteraction routes a slash command or button press and answers it
func (b *Bot) HandleInteraction(i *discordgo.InteractionCreate) {
	if b.seen(i.ID) {
		b.logger.Debug("Skipping already processed interaction: %s", i.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	var err error
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		err = b.handleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		err = b.handleComponent(ctx, i)
	default:
		return
	}

	if err != nil {
		b.logger.LogError(err)
		if sendErr := idiscord.SendErrorResponse(b.session, i, err); sendErr != nil {
			b.logger.Error("Error sending error response: %v", sendErr)
		}
	}
}

// seen records the interaction and reports whether it was handled before
func (b *Bot) seen(id string) bool {
	b.interactionMu.Lock()
	defer b.interactionMu.Unlock()

	if _, processed := b.processedInteractions[id]; processed {
		return true
	}
	now := b.now()
	b.processedInteractions[id] = now

	// Interaction tokens expire after 15 minutes
	if now.Sub(b.lastCleanupTime) > 5*time.Minute {
		for seenID, at := range b.processedInteractions {
			if now.Sub(at) > 15*time.Minute {
				delete(b.processedInteractions, seenID)
			}
		}
		b.lastCleanupTime = now
	}
	return false
}

// userID returns the id of whoever triggered the interaction, in a guild or a DM
func userID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
