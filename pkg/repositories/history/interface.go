package history

import (
	"context"

	"github.com/fadedpez/pokersquares/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_history

// Repository stores saved games and finished results
type Repository interface {
	// Saved games, one per player, game and day key
	SaveGame(ctx context.Context, record *Record) error
	GetGame(ctx context.Context, playerID string, game entities.GameType, key string) (*Record, error)
	LatestGame(ctx context.Context, playerID string, game entities.GameType) (*Record, error)
	DeleteGamesBefore(ctx context.Context, key string) (int, error)

	// Finished games
	SaveResult(ctx context.Context, result *Result) error
	GetPlayerResults(ctx context.Context, playerID string, game entities.GameType) ([]*Result, error)
	GetDailyResults(ctx context.Context, game entities.GameType, key string) ([]*Result, error)

	// Close closes any resources used by the repository
	Close() error
}
