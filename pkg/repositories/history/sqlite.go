package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadedpez/pokersquares/pkg/db/migrations"
	"github.com/fadedpez/pokersquares/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepository implements the Repository interface using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at dbPath and applies the schema.
// ":memory:" gives a private in-memory database.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// One connection keeps a :memory: database shared
	db.SetMaxOpenConns(1)

	if _, err := migrations.NewEmbeddedMigrator(db).MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// SaveGame upserts a game keyed by player, game and day key
func (r *SQLiteRepository) SaveGame(ctx context.Context, record *Record) error {
	prepareRecord(record, time.Now())

	query := `
		INSERT INTO games (id, player_id, game, game_key, state, finished, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_id, game, game_key)
		DO UPDATE SET id = excluded.id, state = excluded.state, finished = excluded.finished,
			created_at = excluded.created_at, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		record.ID.String(), record.PlayerID, string(record.Game), record.Key, string(record.State),
		record.Finished, record.CreatedAt.UTC(), record.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("error saving game: %w", err)
	}
	return nil
}

const selectGame = `SELECT id, player_id, game, game_key, state, finished, created_at, updated_at FROM games`

func scanRecord(row *sql.Row) (*Record, error) {
	var (
		record Record
		game   string
		state  string
	)
	err := row.Scan(&record.ID, &record.PlayerID, &game, &record.Key, &state,
		&record.Finished, &record.CreatedAt, &record.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading game: %w", err)
	}
	record.Game = entities.GameType(game)
	record.State = json.RawMessage(state)
	return &record, nil
}

// GetGame returns the saved game for a day key
func (r *SQLiteRepository) GetGame(ctx context.Context, playerID string, game entities.GameType, key string) (*Record, error) {
	row := r.db.QueryRowContext(ctx,
		selectGame+` WHERE player_id = ? AND game = ? AND game_key = ?`,
		playerID, string(game), key)
	return scanRecord(row)
}

// LatestGame returns the most recently updated game of a player
func (r *SQLiteRepository) LatestGame(ctx context.Context, playerID string, game entities.GameType) (*Record, error) {
	row := r.db.QueryRowContext(ctx,
		selectGame+` WHERE player_id = ? AND game = ? ORDER BY updated_at DESC LIMIT 1`,
		playerID, string(game))
	return scanRecord(row)
}

// DeleteGamesBefore removes saved games with a day key earlier than key
func (r *SQLiteRepository) DeleteGamesBefore(ctx context.Context, key string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE game_key < ?`, key)
	if err != nil {
		return 0, fmt.Errorf("error deleting games: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error counting deleted games: %w", err)
	}
	return int(n), nil
}

// SaveResult stores a finished game's result
func (r *SQLiteRepository) SaveResult(ctx context.Context, result *Result) error {
	prepareResult(result, time.Now())

	handsJSON, err := json.Marshal(result.Hands)
	if err != nil {
		return fmt.Errorf("error encoding hands: %w", err)
	}

	query := `
		INSERT INTO results (id, game_id, player_id, game, game_key, score, hands, share, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		result.ID.String(), result.GameID.String(), result.PlayerID, string(result.Game), result.Key,
		result.Score, string(handsJSON), result.Share, result.CompletedAt.UTC())
	if err != nil {
		return fmt.Errorf("error saving result: %w", err)
	}
	return nil
}

const selectResult = `SELECT id, game_id, player_id, game, game_key, score, hands, share, completed_at FROM results`

func (r *SQLiteRepository) queryResults(ctx context.Context, query string, args ...interface{}) ([]*Result, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying results: %w", err)
	}
	defer rows.Close()

	results := []*Result{}
	for rows.Next() {
		var (
			result Result
			game   string
			hands  string
		)
		if err := rows.Scan(&result.ID, &result.GameID, &result.PlayerID, &game, &result.Key,
			&result.Score, &hands, &result.Share, &result.CompletedAt); err != nil {
			return nil, fmt.Errorf("error reading result: %w", err)
		}
		result.Game = entities.GameType(game)
		if err := json.Unmarshal([]byte(hands), &result.Hands); err != nil {
			return nil, fmt.Errorf("error decoding hands: %w", err)
		}
		results = append(results, &result)
	}

	return results, rows.Err()
}

// GetPlayerResults returns a player's results, newest first
func (r *SQLiteRepository) GetPlayerResults(ctx context.Context, playerID string, game entities.GameType) ([]*Result, error) {
	return r.queryResults(ctx,
		selectResult+` WHERE player_id = ? AND game = ? ORDER BY completed_at DESC`,
		playerID, string(game))
}

// GetDailyResults returns every result for a day key, best score first
func (r *SQLiteRepository) GetDailyResults(ctx context.Context, game entities.GameType, key string) ([]*Result, error) {
	return r.queryResults(ctx,
		selectResult+` WHERE game = ? AND game_key = ? ORDER BY score DESC, completed_at ASC`,
		string(game), key)
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
