package commands

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/repositories/history"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
	"github.com/fadedpez/pokersquares/pkg/services/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T) (*StatsCommand, *history.MemoryRepository) {
	t.Helper()
	repo := history.NewMemoryRepository()
	now := func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return NewStatsCommand(statistics.NewService(repo), now), repo
}

func saveResult(t *testing.T, repo *history.MemoryRepository, playerID, key string, score int, hands ...*scoring.ScoreResult) {
	t.Helper()
	require.NoError(t, repo.SaveResult(context.Background(), &history.Result{
		PlayerID:    playerID,
		Game:        entities.GamePokerSquares,
		Key:         key,
		Score:       score,
		Hands:       hands,
		CompletedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}))
}

func options(game string) []*discordgo.ApplicationCommandInteractionDataOption {
	return []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "game", Type: discordgo.ApplicationCommandOptionString, Value: game},
	}
}

func TestStatsCommand_Commands(t *testing.T) {
	cmd, _ := newTestCommand(t)

	commands := cmd.Commands()

	require.Len(t, commands, 2)
	assert.Equal(t, CommandStats, commands[0].Name)
	assert.Equal(t, CommandLeaderboard, commands[1].Name)
	for _, c := range commands {
		require.Len(t, c.Options, 1)
		assert.True(t, c.Options[0].Required)
		assert.Len(t, c.Options[0].Choices, len(entities.GameTypes))
		assert.Equal(t, "poker-squares", c.Options[0].Choices[0].Value)
	}
}

func TestStatsCommand_IgnoresOtherCommands(t *testing.T) {
	cmd, _ := newTestCommand(t)

	resp, handled, err := cmd.Handle(context.Background(), "player-1",
		discordgo.ApplicationCommandInteractionData{Name: "pokersquares"})

	assert.NoError(t, err)
	assert.False(t, handled)
	assert.Nil(t, resp)
}

func TestStatsCommand_Stats(t *testing.T) {
	// Setup
	cmd, repo := newTestCommand(t)
	pair := &scoring.ScoreResult{Category: scoring.OnePair, Name: "One Pair", Points: 2}
	flush := &scoring.ScoreResult{Category: scoring.Flush, Name: "Flush", Points: 20}
	saveResult(t, repo, "player-1", "2024-02-29", 22, pair, flush)
	saveResult(t, repo, "player-1", "2024-03-01", 4, pair, pair)

	// Execute
	resp, handled, err := cmd.Handle(context.Background(), "player-1",
		discordgo.ApplicationCommandInteractionData{Name: CommandStats, Options: options("poker-squares")})

	// Assert
	require.NoError(t, err)
	assert.True(t, handled)
	assert.True(t, resp.Ephemeral)
	require.Len(t, resp.Embeds, 1)
	embed := resp.Embeds[0]
	assert.Equal(t, "📊 Poker Squares statistics", embed.Title)
	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "2", embed.Fields[0].Value)
	assert.Equal(t, "22 (2024-02-29)", embed.Fields[1].Value)
	assert.Equal(t, "13.0", embed.Fields[2].Value)
	assert.Equal(t, "One Pair: 3\nFlush: 1", embed.Fields[3].Value)
}

func TestStatsCommand_NoGames(t *testing.T) {
	cmd, _ := newTestCommand(t)

	resp, _, err := cmd.Handle(context.Background(), "player-1",
		discordgo.ApplicationCommandInteractionData{Name: CommandStats, Options: options("double-deal")})

	require.NoError(t, err)
	assert.Equal(t, "No finished games yet", resp.Embeds[0].Description)
}

func TestStatsCommand_Leaderboard(t *testing.T) {
	// Setup
	cmd, repo := newTestCommand(t)
	saveResult(t, repo, "player-1", "2024-03-01", 40)
	saveResult(t, repo, "player-2", "2024-03-01", 90)
	saveResult(t, repo, "player-3", "2024-03-01", 40)
	saveResult(t, repo, "player-4", "2024-03-01", 12)
	saveResult(t, repo, "player-5", "2024-02-29", 200)

	// Execute
	resp, handled, err := cmd.Handle(context.Background(), "player-1",
		discordgo.ApplicationCommandInteractionData{Name: CommandLeaderboard, Options: options("poker-squares")})

	// Assert
	require.NoError(t, err)
	assert.True(t, handled)
	assert.False(t, resp.Ephemeral)
	embed := resp.Embeds[0]
	assert.Equal(t, "🏆 Poker Squares 2024-03-01", embed.Title)
	assert.Equal(t, "👑 <@player-2> 90\n🥈 <@player-1> 40\n🥈 <@player-3> 40\n4. <@player-4> 12", embed.Description)
	assert.Equal(t, "4 players", embed.Footer.Text)
}

func TestStatsCommand_GameOption(t *testing.T) {
	cmd, _ := newTestCommand(t)

	testCases := []struct {
		name    string
		options []*discordgo.ApplicationCommandInteractionDataOption
	}{
		{name: "missing", options: nil},
		{name: "unknown", options: options("solitaire")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, handled, err := cmd.Handle(context.Background(), "player-1",
				discordgo.ApplicationCommandInteractionData{Name: CommandLeaderboard, Options: tc.options})

			assert.True(t, handled)
			assert.True(t, types.IsGameError(err, types.ErrInvalidArgument))
		})
	}
}
