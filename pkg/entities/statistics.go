package entities

import "time"

// PlayerStatistics represents aggregated statistics for a player in a specific game type
type PlayerStatistics struct {
	PlayerID       string         `json:"player_id"`
	GameType       GameType       `json:"game_type"`
	GamesPlayed    int            `json:"games_played"`
	TotalScore     int            `json:"total_score"`
	BestScore      int            `json:"best_score"`
	BestKey        string         `json:"best_key"`
	CategoryCounts map[string]int `json:"category_counts"`
	LastUpdated    time.Time      `json:"last_updated"`
}

// AverageScore calculates the player's mean score per game
func (s *PlayerStatistics) AverageScore() float64 {
	if s.GamesPlayed == 0 {
		return 0.0
	}
	return float64(s.TotalScore) / float64(s.GamesPlayed)
}
