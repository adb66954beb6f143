package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/games/pokersquares"
	"github.com/fadedpez/pokersquares/pkg/repositories/history"
	"github.com/fadedpez/pokersquares/pkg/services/daily"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
	"github.com/fadedpez/pokersquares/pkg/services/share"
	"github.com/google/uuid"
)

// PokerSquaresGame is a player's Poker Squares game after an action
type PokerSquaresGame struct {
	ID       uuid.UUID
	PlayerID string
	Key      string
	State    pokersquares.State
	Scores   []*scoring.ScoreResult
	Total    int
	Finished bool
	Best     []entities.Card // strongest scoring line, nil when none scores
	Share    *share.Share    // set once finished
}

func newPokerSquaresGame(record *history.Record, state pokersquares.State, sh *share.Share) *PokerSquaresGame {
	scores := pokersquares.Scores(state)
	lines := pokersquares.Lines(state)
	var best []entities.Card
	if i := scoring.BestHand(lines); i >= 0 {
		best = lines[i]
	}
	return &PokerSquaresGame{
		ID:       record.ID,
		PlayerID: record.PlayerID,
		Key:      record.Key,
		State:    state,
		Scores:   scores,
		Total:    scoring.TotalScore(scores),
		Finished: pokersquares.IsFinished(state),
		Best:     best,
		Share:    sh,
	}
}

// StartPokerSquares returns today's game, dealing it from the day's shuffle if
// the player has not started it yet. Auto-deal carries over from the player's
// most recent game.
func (s *Service) StartPokerSquares(ctx context.Context, playerID string) (*PokerSquaresGame, error) {
	defer s.lock(playerID, entities.GamePokerSquares)()

	var state pokersquares.State
	record, err := s.load(ctx, playerID, entities.GamePokerSquares, &state)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return s.pokerSquaresView(record, state), nil
	}

	autoDeal, err := s.lastAutoDeal(ctx, playerID)
	if err != nil {
		return nil, err
	}

	key := s.today()
	deck, err := daily.DeckForKey(key)
	if err != nil {
		return nil, types.WrapError(types.ErrInternalError, "failed to shuffle today's deck", err)
	}
	state, err = pokersquares.New(deck, autoDeal)
	if err != nil {
		return nil, err
	}

	record = s.newRecord(playerID, entities.GamePokerSquares, key)
	if _, err := s.save(ctx, record, state, false, nil); err != nil {
		return nil, err
	}
	s.logger.Debug("Started Poker Squares %s for %s (auto-deal %t)", key, playerID, autoDeal)
	return newPokerSquaresGame(record, state, nil), nil
}

func (s *Service) lastAutoDeal(ctx context.Context, playerID string) (bool, error) {
	latest, err := s.repo.LatestGame(ctx, playerID, entities.GamePokerSquares)
	if errors.Is(err, history.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, types.WrapError(types.ErrDatabaseError, "failed to load last game", err)
	}

	var prev pokersquares.State
	if err := json.Unmarshal(latest.State, &prev); err != nil {
		s.logger.Warn("Ignoring unreadable game %s: %v", latest.ID, err)
		return false, nil
	}
	return prev.AutoDeal, nil
}

func (s *Service) pokerSquaresView(record *history.Record, state pokersquares.State) *PokerSquaresGame {
	var sh *share.Share
	if pokersquares.IsFinished(state) {
		generated := share.Generate(record.Game, record.Key, pokersquares.Scores(state), s.shareURL)
		sh = &generated
	}
	return newPokerSquaresGame(record, state, sh)
}

// updatePokerSquares loads today's game, applies an action and saves the result
func (s *Service) updatePokerSquares(ctx context.Context, playerID string, action func(pokersquares.State) (pokersquares.State, error)) (*PokerSquaresGame, error) {
	defer s.lock(playerID, entities.GamePokerSquares)()

	var state pokersquares.State
	record, err := s.mustLoad(ctx, playerID, entities.GamePokerSquares, &state)
	if err != nil {
		return nil, err
	}

	next, err := action(state)
	if err != nil {
		return nil, err
	}

	finished := pokersquares.IsFinished(next)
	sh, err := s.save(ctx, record, next, finished, pokersquares.Scores(next))
	if err != nil {
		return nil, err
	}
	return newPokerSquaresGame(record, next, sh), nil
}

// DealPokerSquares turns over the next card
func (s *Service) DealPokerSquares(ctx context.Context, playerID string) (*PokerSquaresGame, error) {
	return s.updatePokerSquares(ctx, playerID, pokersquares.Deal)
}

// PlacePokerSquares puts the dealt card on the board
func (s *Service) PlacePokerSquares(ctx context.Context, playerID string, row, col int) (*PokerSquaresGame, error) {
	return s.updatePokerSquares(ctx, playerID, func(state pokersquares.State) (pokersquares.State, error) {
		return pokersquares.Place(state, row, col)
	})
}

// ToggleAutoDeal flips the auto-deal setting of today's game
func (s *Service) ToggleAutoDeal(ctx context.Context, playerID string) (*PokerSquaresGame, error) {
	return s.updatePokerSquares(ctx, playerID, func(state pokersquares.State) (pokersquares.State, error) {
		return pokersquares.SetAutoDeal(state, !state.AutoDeal), nil
	})
}
