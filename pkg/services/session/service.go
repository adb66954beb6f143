package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/fadedpez/pokersquares/internal/logging"
	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/repositories/history"
	"github.com/fadedpez/pokersquares/pkg/services/daily"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
	"github.com/fadedpez/pokersquares/pkg/services/share"
)

// Service runs the load, act, save cycle for a player's games
type Service struct {
	repo     history.Repository
	now      func() time.Time
	logger   *logging.Logger
	shareURL string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces time.Now, which picks the day key and seeds Double Deal
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger replaces the default logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithShareURL sets the link added to share text
func WithShareURL(url string) Option {
	return func(s *Service) {
		s.shareURL = url
	}
}

// NewService creates a new session service
func NewService(repo history.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		now:    time.Now,
		logger: logging.Default,
		locks:  make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lock serializes actions of one player on one game
func (s *Service) lock(playerID string, game entities.GameType) func() {
	key := string(game) + "/" + playerID

	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *Service) today() string {
	return daily.Key(s.now())
}

// load returns today's saved game, or nil when there is none
func (s *Service) load(ctx context.Context, playerID string, game entities.GameType, state interface{}) (*history.Record, error) {
	record, err := s.repo.GetGame(ctx, playerID, game, s.today())
	if errors.Is(err, history.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load game", err)
	}
	if err := json.Unmarshal(record.State, state); err != nil {
		return nil, types.WrapError(types.ErrInternalError, "saved game is corrupt", err)
	}
	return record, nil
}

// mustLoad is load for actions on a game that has to exist already
func (s *Service) mustLoad(ctx context.Context, playerID string, game entities.GameType, state interface{}) (*history.Record, error) {
	record, err := s.load(ctx, playerID, game, state)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, types.NewGameError(types.ErrGameNotFound,
			"no "+game.Title()+" game for today, start one first")
	}
	return record, nil
}

// save stores the state, and records the result the first time the game is finished
func (s *Service) save(ctx context.Context, record *history.Record, state interface{}, finished bool, results []*scoring.ScoreResult) (*share.Share, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, types.WrapError(types.ErrInternalError, "failed to encode game", err)
	}
	now := s.now()
	record.State = data
	record.UpdatedAt = now

	var sh *share.Share
	if finished {
		generated := share.Generate(record.Game, record.Key, results, s.shareURL)
		sh = &generated
	}

	if finished && !record.Finished {
		result := &history.Result{
			GameID:      record.ID,
			PlayerID:    record.PlayerID,
			Game:        record.Game,
			Key:         record.Key,
			Score:       scoring.TotalScore(results),
			Hands:       results,
			Share:       sh.Text,
			CompletedAt: now,
		}
		if err := s.repo.SaveResult(ctx, result); err != nil {
			return nil, types.WrapError(types.ErrDatabaseError, "failed to save result", err)
		}
		record.Finished = true
		s.logger.Info("Player %s finished %s %s with %d points", record.PlayerID, record.Game.Title(), record.Key, result.Score)
	}

	if err := s.repo.SaveGame(ctx, record); err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to save game", err)
	}
	return sh, nil
}

func (s *Service) newRecord(playerID string, game entities.GameType, key string) *history.Record {
	now := s.now()
	return &history.Record{
		PlayerID:  playerID,
		Game:      game,
		Key:       key,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
