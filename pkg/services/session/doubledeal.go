package session

import (
	"context"

	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/games/doubledeal"
	"github.com/fadedpez/pokersquares/pkg/repositories/history"
	"github.com/fadedpez/pokersquares/pkg/services/daily"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
	"github.com/fadedpez/pokersquares/pkg/services/share"
	"github.com/google/uuid"
)

// doubleDealSnapshot is the saved form of a Double Deal game. Seed and
// Discards make the reinsertion positions of every discard reproducible.
type doubleDealSnapshot struct {
	State    doubledeal.State `json:"state"`
	Seed     int64            `json:"seed"`
	Discards int              `json:"discards"`
}

// DoubleDealGame is a player's Double Deal game after an action
type DoubleDealGame struct {
	ID        uuid.UUID
	PlayerID  string
	Key       string
	State     doubledeal.State
	Scores    []*scoring.ScoreResult
	Total     int
	Finished  bool
	Best      []entities.Card // stronger scoring hand, nil when neither scores
	Dealt     int             // cards dealt by the last Deal
	Discarded []entities.Card // cards removed by the last Discard
	Share     *share.Share
}

func newDoubleDealGame(record *history.Record, snap doubleDealSnapshot, sh *share.Share) *DoubleDealGame {
	scores := doubledeal.Scores(snap.State)
	hands := [][]entities.Card{snap.State.Left.Slice(), snap.State.Right.Slice()}
	var best []entities.Card
	if i := scoring.BestHand(hands); i >= 0 {
		best = hands[i]
	}
	return &DoubleDealGame{
		ID:       record.ID,
		PlayerID: record.PlayerID,
		Key:      record.Key,
		State:    snap.State,
		Scores:   scores,
		Total:    scoring.TotalScore(scores),
		Finished: doubledeal.IsFinished(snap.State),
		Best:     best,
		Share:    sh,
	}
}

// StartDoubleDeal returns the player's unfinished game of today, or deals a
// new one from a clock-seeded shuffle
func (s *Service) StartDoubleDeal(ctx context.Context, playerID string) (*DoubleDealGame, error) {
	defer s.lock(playerID, entities.GameDoubleDeal)()

	var snap doubleDealSnapshot
	record, err := s.load(ctx, playerID, entities.GameDoubleDeal, &snap)
	if err != nil {
		return nil, err
	}
	if record != nil && !doubledeal.IsFinished(snap.State) {
		return newDoubleDealGame(record, snap, nil), nil
	}

	seed := s.now().UnixNano()
	state, err := doubledeal.New(daily.ShuffledDeck(seed))
	if err != nil {
		return nil, err
	}
	snap = doubleDealSnapshot{State: state, Seed: seed}

	// A new game replaces today's finished one; its result is already recorded
	record = s.newRecord(playerID, entities.GameDoubleDeal, s.today())
	if _, err := s.save(ctx, record, snap, false, nil); err != nil {
		return nil, err
	}
	s.logger.Debug("Started Double Deal for %s with seed %d", playerID, seed)
	return newDoubleDealGame(record, snap, nil), nil
}

// updateDoubleDeal loads today's game, applies an action and saves the result
func (s *Service) updateDoubleDeal(ctx context.Context, playerID string, action func(*doubleDealSnapshot, *DoubleDealGame) error) (*DoubleDealGame, error) {
	defer s.lock(playerID, entities.GameDoubleDeal)()

	var snap doubleDealSnapshot
	record, err := s.mustLoad(ctx, playerID, entities.GameDoubleDeal, &snap)
	if err != nil {
		return nil, err
	}

	var out DoubleDealGame
	if err := action(&snap, &out); err != nil {
		return nil, err
	}

	finished := doubledeal.IsFinished(snap.State)
	sh, err := s.save(ctx, record, snap, finished, doubledeal.Scores(snap.State))
	if err != nil {
		return nil, err
	}

	game := newDoubleDealGame(record, snap, sh)
	game.Dealt = out.Dealt
	game.Discarded = out.Discarded
	return game, nil
}

// DealDoubleDeal fills the empty slots of both hands
func (s *Service) DealDoubleDeal(ctx context.Context, playerID string) (*DoubleDealGame, error) {
	return s.updateDoubleDeal(ctx, playerID, func(snap *doubleDealSnapshot, out *DoubleDealGame) error {
		next, n, err := doubledeal.Deal(snap.State)
		if err != nil {
			return err
		}
		snap.State = next
		out.Dealt = n
		return nil
	})
}

// SelectDoubleDeal toggles the selection of one card
func (s *Service) SelectDoubleDeal(ctx context.Context, playerID string, side entities.Side, index int) (*DoubleDealGame, error) {
	return s.updateDoubleDeal(ctx, playerID, func(snap *doubleDealSnapshot, _ *DoubleDealGame) error {
		next, err := doubledeal.ToggleSelect(snap.State, side, index)
		if err != nil {
			return err
		}
		snap.State = next
		return nil
	})
}

// DiscardDoubleDeal returns the selected cards to the chosen pile
func (s *Service) DiscardDoubleDeal(ctx context.Context, playerID string, pile entities.Side) (*DoubleDealGame, error) {
	return s.updateDoubleDeal(ctx, playerID, func(snap *doubleDealSnapshot, out *DoubleDealGame) error {
		rng := daily.NewRand(snap.Seed + int64(snap.Discards) + 1)
		next, discarded, err := doubledeal.Discard(snap.State, pile, rng)
		if err != nil {
			return err
		}
		snap.State = next
		snap.Discards++
		out.Discarded = discarded
		return nil
	})
}
