package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	idiscord "github.com/fadedpez/pokersquares/internal/discord"
	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/services/daily"
	"github.com/fadedpez/pokersquares/pkg/services/statistics"
)

// Command names handled by StatsCommand
const (
	CommandStats       = "stats"
	CommandLeaderboard = "leaderboard"
)

const leaderboardSize = 10

// StatsCommand handles the /stats and /leaderboard commands
type StatsCommand struct {
	statisticsService *statistics.Service
	now               func() time.Time
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(statisticsService *statistics.Service, now func() time.Time) *StatsCommand {
	return &StatsCommand{
		statisticsService: statisticsService,
		now:               now,
	}
}

func gameOption() *discordgo.ApplicationCommandOption {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(entities.GameTypes))
	for _, g := range entities.GameTypes {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  g.Title(),
			Value: string(g),
		})
	}
	return &discordgo.ApplicationCommandOption{
		Name:        "game",
		Description: "Which game",
		Type:        discordgo.ApplicationCommandOptionString,
		Required:    true,
		Choices:     choices,
	}
}

// Commands returns the command definitions
func (c *StatsCommand) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandStats,
			Description: "View your statistics",
			Options:     []*discordgo.ApplicationCommandOption{gameOption()},
		},
		{
			Name:        CommandLeaderboard,
			Description: "View today's best scores",
			Options:     []*discordgo.ApplicationCommandOption{gameOption()},
		},
	}
}

// Handle answers /stats and /leaderboard. The bool is false for other commands.
func (c *StatsCommand) Handle(ctx context.Context, playerID string, data discordgo.ApplicationCommandInteractionData) (*idiscord.Response, bool, error) {
	if data.Name != CommandStats && data.Name != CommandLeaderboard {
		return nil, false, nil
	}

	game, err := parseGame(data.Options)
	if err != nil {
		return nil, true, err
	}

	if data.Name == CommandStats {
		stats, err := c.statisticsService.PlayerSummary(ctx, playerID, game)
		if err != nil {
			return nil, true, types.WrapError(types.ErrDatabaseError, "failed to get statistics", err)
		}
		return idiscord.NewEphemeralResponse("", nil).WithEmbed(createStatsEmbed(stats)), true, nil
	}

	leaderboard, err := c.statisticsService.DailyLeaderboard(ctx, game, daily.Key(c.now()), leaderboardSize)
	if err != nil {
		return nil, true, types.WrapError(types.ErrDatabaseError, "failed to get leaderboard", err)
	}
	return idiscord.NewResponse("", nil).WithEmbed(createLeaderboardEmbed(leaderboard)), true, nil
}

func parseGame(options []*discordgo.ApplicationCommandInteractionDataOption) (entities.GameType, error) {
	for _, opt := range options {
		if opt.Name == "game" {
			game, err := entities.ParseGameType(opt.StringValue())
			if err != nil {
				return "", types.WrapError(types.ErrInvalidArgument, "unknown game", err)
			}
			return game, nil
		}
	}
	return "", types.NewGameError(types.ErrInvalidArgument, "pick a game")
}

// createStatsEmbed creates an embed for one player's statistics
func createStatsEmbed(stats *entities.PlayerStatistics) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 %s statistics", stats.GameType.Title()),
		Color: 0x5865F2,
	}

	if stats.GamesPlayed == 0 {
		embed.Description = "No finished games yet"
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Games", Value: fmt.Sprint(stats.GamesPlayed), Inline: true},
		{Name: "Best", Value: fmt.Sprintf("%d (%s)", stats.BestScore, stats.BestKey), Inline: true},
		{Name: "Average", Value: fmt.Sprintf("%.1f", stats.AverageScore()), Inline: true},
	}

	if len(stats.CategoryCounts) > 0 {
		names := make([]string, 0, len(stats.CategoryCounts))
		for name := range stats.CategoryCounts {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			ci, cj := stats.CategoryCounts[names[i]], stats.CategoryCounts[names[j]]
			if ci != cj {
				return ci > cj
			}
			return names[i] < names[j]
		})

		lines := make([]string, len(names))
		for i, name := range names {
			lines[i] = fmt.Sprintf("%s: %d", name, stats.CategoryCounts[name])
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Hands made",
			Value: strings.Join(lines, "\n"),
		})
	}

	if !stats.LastUpdated.IsZero() {
		embed.Timestamp = stats.LastUpdated.Format(time.RFC3339)
	}
	return embed
}

// createLeaderboardEmbed creates an embed for the leaderboard
func createLeaderboardEmbed(leaderboard *statistics.Leaderboard) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🏆 %s %s", leaderboard.Game.Title(), leaderboard.Key),
		Color: 0xFFD700,
	}

	if len(leaderboard.Players) == 0 {
		embed.Description = "Nobody has finished today's game yet"
		return embed
	}

	lines := make([]string, 0, len(leaderboard.Players))
	for _, player := range leaderboard.Players {
		var rankEmoji string
		switch player.Rank {
		case 1:
			rankEmoji = "👑"
		case 2:
			rankEmoji = "🥈"
		case 3:
			rankEmoji = "🥉"
		default:
			rankEmoji = fmt.Sprintf("%d.", player.Rank)
		}
		lines = append(lines, fmt.Sprintf("%s <@%s> %d", rankEmoji, player.PlayerID, player.Result.Score))
	}
	embed.Description = strings.Join(lines, "\n")
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d players", leaderboard.TotalPlayers),
	}
	return embed
}
