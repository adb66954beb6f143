package history

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no saved game matches
var ErrNotFound = errors.New("history: game not found")

// Record is a saved game. State holds the game's JSON snapshot.
type Record struct {
	ID        uuid.UUID         `json:"id"`
	PlayerID  string            `json:"player_id"`
	Game      entities.GameType `json:"game"`
	Key       string            `json:"key"`
	State     json.RawMessage   `json:"state"`
	Finished  bool              `json:"finished"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Result is the score of a finished game
type Result struct {
	ID          uuid.UUID              `json:"id"`
	GameID      uuid.UUID              `json:"game_id"`
	PlayerID    string                 `json:"player_id"`
	Game        entities.GameType      `json:"game"`
	Key         string                 `json:"key"`
	Score       int                    `json:"score"`
	Hands       []*scoring.ScoreResult `json:"hands"` // nil entries scored nothing
	Share       string                 `json:"share,omitempty"`
	CompletedAt time.Time              `json:"completed_at"`
}

// prepareRecord fills in the ID and timestamps a new record is missing
func prepareRecord(r *Record, now time.Time) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
}

func prepareResult(r *Result, now time.Time) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CompletedAt.IsZero() {
		r.CompletedAt = now
	}
}

func copyRecord(r *Record) *Record {
	c := *r
	c.State = append(json.RawMessage(nil), r.State...)
	return &c
}

func copyResult(r *Result) *Result {
	c := *r
	c.Hands = append([]*scoring.ScoreResult(nil), r.Hands...)
	return &c
}

// sortByRecent orders results newest first
func sortByRecent(results []*Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompletedAt.After(results[j].CompletedAt)
	})
}

// sortByScore orders results highest score first; earlier finishes win ties
func sortByScore(results []*Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].CompletedAt.Before(results[j].CompletedAt)
	})
}
