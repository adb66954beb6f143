package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/services/daily"
	"github.com/fadedpez/pokersquares/pkg/services/session"
	"github.com/fadedpez/pokersquares/pkg/services/statistics"
	"github.com/pterm/pterm"
)

// client runs one player's game in the terminal
type client struct {
	ctx      context.Context
	playerID string
	games    *session.Service
	stats    *statistics.Service
	logger   *slog.Logger
	prompt   func(string) (string, error)
	now      func() time.Time
}

// report shows rule errors to the player and returns anything else
func (c *client) report(err error) error {
	var gameErr *types.GameError
	if types.As(err, &gameErr) && gameErr.Code != types.ErrDatabaseError && gameErr.Code != types.ErrInternalError {
		pterm.Warning.Println(gameErr.Message)
		return nil
	}
	return err
}

func (c *client) playPokerSquares() error {
	game, err := c.games.StartPokerSquares(c.ctx, c.playerID)
	if err != nil {
		return err
	}

	for !game.Finished {
		board, err := renderPokerSquares(game)
		if err != nil {
			return err
		}
		pterm.Println(board)

		line, err := c.prompt("Square (row col), d, a or q")
		if err != nil {
			return err
		}
		act, err := parsePokerSquares(line)
		if err != nil {
			pterm.Warning.Println(err.Error())
			continue
		}

		var next *session.PokerSquaresGame
		switch act.kind {
		case actQuit:
			c.logger.Info("game saved", "key", game.Key)
			return nil
		case actDeal:
			next, err = c.games.DealPokerSquares(c.ctx, c.playerID)
		case actAutoDeal:
			next, err = c.games.ToggleAutoDeal(c.ctx, c.playerID)
		case actPlace:
			next, err = c.games.PlacePokerSquares(c.ctx, c.playerID, act.row, act.col)
		}
		if err != nil {
			if err := c.report(err); err != nil {
				return err
			}
			continue
		}
		game = next
		c.logger.Debug("poker squares", "placed", game.State.Placement, "pile", len(game.State.Pile))
	}

	board, err := renderPokerSquares(game)
	if err != nil {
		return err
	}
	pterm.Println(board)
	pterm.Success.Println(renderFinish(game.Scores, game.Best, game.Share))
	return nil
}

func (c *client) playDoubleDeal() error {
	game, err := c.games.StartDoubleDeal(c.ctx, c.playerID)
	if err != nil {
		return err
	}

	for {
		pterm.Println(renderDoubleDeal(game))
		if game.Finished {
			pterm.Success.Println(renderFinish(game.Scores, game.Best, game.Share))
		}
		if len(game.Discarded) > 0 {
			c.logger.Info("discarded", "cards", fmt.Sprint(game.Discarded))
		}

		line, err := c.prompt("l1-l5, r1-r5, xl, xr, d, n or q")
		if err != nil {
			return err
		}
		act, err := parseDoubleDeal(line)
		if err != nil {
			pterm.Warning.Println(err.Error())
			continue
		}

		var next *session.DoubleDealGame
		switch act.kind {
		case actQuit:
			return nil
		case actDeal:
			next, err = c.games.DealDoubleDeal(c.ctx, c.playerID)
		case actSelect:
			next, err = c.games.SelectDoubleDeal(c.ctx, c.playerID, act.side, act.index)
		case actDiscard:
			next, err = c.games.DiscardDoubleDeal(c.ctx, c.playerID, act.side)
		case actNewGame:
			if !game.Finished {
				pterm.Warning.Println("finish this game first")
				continue
			}
			next, err = c.games.StartDoubleDeal(c.ctx, c.playerID)
		}
		if err != nil {
			if err := c.report(err); err != nil {
				return err
			}
			continue
		}
		game = next
	}
}

// printStats shows the player's totals and today's leaderboard
func (c *client) printStats(game entities.GameType) {
	stats, err := c.stats.PlayerSummary(c.ctx, c.playerID, game)
	if err != nil {
		c.logger.Warn("loading statistics", "error", err)
		return
	}
	if stats.GamesPlayed == 0 {
		return
	}
	pterm.Info.Printfln("%d games, best %d on %s, average %.1f",
		stats.GamesPlayed, stats.BestScore, stats.BestKey, stats.AverageScore())

	board, err := c.stats.DailyLeaderboard(c.ctx, game, daily.Key(c.now()), 5)
	if err != nil {
		c.logger.Warn("loading leaderboard", "error", err)
		return
	}
	data := [][]string{{"#", "Player", "Score"}}
	for _, p := range board.Players {
		data = append(data, []string{fmt.Sprint(p.Rank), p.PlayerID, fmt.Sprint(p.Result.Score)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		c.logger.Warn("rendering leaderboard", "error", err)
	}
}
