package statistics

import (
	"context"
	"sort"

	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/repositories/history"
)

// Service provides methods for retrieving and processing player statistics
type Service struct {
	repository history.Repository
}

// NewService creates a new statistics service
func NewService(repository history.Repository) *Service {
	return &Service{
		repository: repository,
	}
}

// PlayerSummary aggregates every finished game of a player
func (s *Service) PlayerSummary(ctx context.Context, playerID string, game entities.GameType) (*entities.PlayerStatistics, error) {
	results, err := s.repository.GetPlayerResults(ctx, playerID, game)
	if err != nil {
		return nil, err
	}

	stats := &entities.PlayerStatistics{
		PlayerID:       playerID,
		GameType:       game,
		CategoryCounts: make(map[string]int),
	}

	for _, r := range results {
		stats.GamesPlayed++
		stats.TotalScore += r.Score
		if stats.GamesPlayed == 1 || r.Score > stats.BestScore {
			stats.BestScore = r.Score
			stats.BestKey = r.Key
		}
		if r.CompletedAt.After(stats.LastUpdated) {
			stats.LastUpdated = r.CompletedAt
		}
		for _, h := range r.Hands {
			if h != nil {
				stats.CategoryCounts[h.Name]++
			}
		}
	}

	return stats, nil
}

// PlayerRank is one line of a daily leaderboard
type PlayerRank struct {
	Rank     int             `json:"rank"`
	PlayerID string          `json:"player_id"`
	Result   *history.Result `json:"result"`
}

// Leaderboard ranks the best result of each player for one day
type Leaderboard struct {
	Game         entities.GameType `json:"game"`
	Key          string            `json:"key"`
	Players      []*PlayerRank     `json:"players"`
	TotalPlayers int               `json:"total_players"`
}

// DailyLeaderboard ranks players by their best score of the day. Equal scores
// share a rank; at most limit players are returned.
func (s *Service) DailyLeaderboard(ctx context.Context, game entities.GameType, key string, limit int) (*Leaderboard, error) {
	if limit < 1 {
		limit = 10
	}

	results, err := s.repository.GetDailyResults(ctx, game, key)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].CompletedAt.Before(results[j].CompletedAt)
	})

	// Keep each player's best result
	seen := make(map[string]bool)
	ranks := make([]*PlayerRank, 0, len(results))
	for _, r := range results {
		if seen[r.PlayerID] {
			continue
		}
		seen[r.PlayerID] = true
		ranks = append(ranks, &PlayerRank{PlayerID: r.PlayerID, Result: r})
	}

	for i, pr := range ranks {
		if i > 0 && pr.Result.Score == ranks[i-1].Result.Score {
			pr.Rank = ranks[i-1].Rank
		} else {
			pr.Rank = i + 1
		}
	}

	total := len(ranks)
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}

	return &Leaderboard{
		Game:         game,
		Key:          key,
		Players:      ranks,
		TotalPlayers: total,
	}, nil
}
