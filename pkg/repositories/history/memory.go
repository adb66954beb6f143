package history

import (
	"context"
	"sync"
	"time"

	"github.com/fadedpez/pokersquares/pkg/entities"
)

type gameKey struct {
	playerID string
	game     entities.GameType
	key      string
}

// MemoryRepository implements Repository with in-memory storage
type MemoryRepository struct {
	mu      sync.RWMutex
	games   map[gameKey]*Record
	results []*Result
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		games: make(map[gameKey]*Record),
	}
}

// SaveGame stores a game, replacing any saved game for the same player, game and key
func (r *MemoryRepository) SaveGame(ctx context.Context, record *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareRecord(record, time.Now())
	r.games[gameKey{record.PlayerID, record.Game, record.Key}] = copyRecord(record)
	return nil
}

// GetGame returns the saved game for a day key
func (r *MemoryRepository) GetGame(ctx context.Context, playerID string, game entities.GameType, key string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.games[gameKey{playerID, game, key}]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRecord(record), nil
}

// LatestGame returns the most recently updated game of a player
func (r *MemoryRepository) LatestGame(ctx context.Context, playerID string, game entities.GameType) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *Record
	for k, record := range r.games {
		if k.playerID != playerID || k.game != game {
			continue
		}
		if latest == nil || record.UpdatedAt.After(latest.UpdatedAt) {
			latest = record
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return copyRecord(latest), nil
}

// DeleteGamesBefore removes saved games with a day key earlier than key
func (r *MemoryRepository) DeleteGamesBefore(ctx context.Context, key string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for k := range r.games {
		if k.key < key {
			delete(r.games, k)
			deleted++
		}
	}
	return deleted, nil
}

// SaveResult stores a finished game's result
func (r *MemoryRepository) SaveResult(ctx context.Context, result *Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareResult(result, time.Now())
	r.results = append(r.results, copyResult(result))
	return nil
}

// GetPlayerResults returns a player's results, newest first
func (r *MemoryRepository) GetPlayerResults(ctx context.Context, playerID string, game entities.GameType) ([]*Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := []*Result{}
	for _, result := range r.results {
		if result.PlayerID == playerID && result.Game == game {
			results = append(results, copyResult(result))
		}
	}
	sortByRecent(results)
	return results, nil
}

// GetDailyResults returns every result for a day key, best score first
func (r *MemoryRepository) GetDailyResults(ctx context.Context, game entities.GameType, key string) ([]*Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := []*Result{}
	for _, result := range r.results {
		if result.Game == game && result.Key == key {
			results = append(results, copyResult(result))
		}
	}
	sortByScore(results)
	return results, nil
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}

// snapshot and restore let FileRepository persist the same maps
type snapshot struct {
	Games   []*Record `json:"games"`
	Results []*Result `json:"results"`
}

func (r *MemoryRepository) snapshot() snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := snapshot{
		Games:   make([]*Record, 0, len(r.games)),
		Results: make([]*Result, 0, len(r.results)),
	}
	for _, record := range r.games {
		snap.Games = append(snap.Games, record)
	}
	snap.Results = append(snap.Results, r.results...)
	return snap
}

func (r *MemoryRepository) restore(snap snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.games = make(map[gameKey]*Record, len(snap.Games))
	for _, record := range snap.Games {
		r.games[gameKey{record.PlayerID, record.Game, record.Key}] = record
	}
	r.results = snap.Results
}
