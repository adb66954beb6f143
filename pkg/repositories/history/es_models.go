package history

import (
	"time"

	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
	"github.com/google/uuid"
)

// ESResult represents a result document in Elasticsearch
type ESResult struct {
	ResultID    string                 `json:"result_id"`
	GameID      string                 `json:"game_id"`
	PlayerID    string                 `json:"player_id"`
	Game        string                 `json:"game"`
	Key         string                 `json:"game_key"`
	Score       int                    `json:"score"`
	Categories  []string               `json:"categories"` // names of the scoring hands, for aggregations
	Hands       []*scoring.ScoreResult `json:"hands"`
	Share       string                 `json:"share,omitempty"`
	CompletedAt time.Time              `json:"completed_at"`
}

// ToESResult converts a Result to its document form
func (r *Result) ToESResult() *ESResult {
	doc := &ESResult{
		ResultID:    r.ID.String(),
		GameID:      r.GameID.String(),
		PlayerID:    r.PlayerID,
		Game:        string(r.Game),
		Key:         r.Key,
		Score:       r.Score,
		Categories:  make([]string, 0, len(r.Hands)),
		Hands:       r.Hands,
		Share:       r.Share,
		CompletedAt: r.CompletedAt,
	}
	for _, h := range r.Hands {
		if h != nil {
			doc.Categories = append(doc.Categories, h.Name)
		}
	}
	return doc
}

// ToResult converts a document back to a Result
func (d *ESResult) ToResult() (*Result, error) {
	id, err := uuid.Parse(d.ResultID)
	if err != nil {
		return nil, err
	}
	gameID, err := uuid.Parse(d.GameID)
	if err != nil {
		return nil, err
	}
	return &Result{
		ID:          id,
		GameID:      gameID,
		PlayerID:    d.PlayerID,
		Game:        entities.GameType(d.Game),
		Key:         d.Key,
		Score:       d.Score,
		Hands:       d.Hands,
		Share:       d.Share,
		CompletedAt: d.CompletedAt,
	}, nil
}
