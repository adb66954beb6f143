package doubledeal

import (
	"math/rand"
	"testing"

	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
	"github.com/stretchr/testify/suite"
)

type GameTestSuite struct {
	suite.Suite
	deck []entities.Card
	rng  *rand.Rand
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameTestSuite))
}

func (s *GameTestSuite) SetupTest() {
	s.deck = entities.BuildDeck()
	s.rng = rand.New(rand.NewSource(42))
}

func (s *GameTestSuite) dealt() State {
	state, err := New(s.deck)
	s.Require().NoError(err)
	state, n, err := Deal(state)
	s.Require().NoError(err)
	s.Require().Equal(2*HandSize, n)
	return state
}

func (s *GameTestSuite) TestNew() {
	// Execute
	state, err := New(s.deck)

	// Assert
	s.NoError(err)
	s.Equal(s.deck[:26], state.LeftPile)
	s.Equal(s.deck[26:], state.RightPile)
	s.Equal(HandSize, state.Left.Empty())
	s.Equal(HandSize, state.Right.Empty())
	s.Equal(0, state.Deals)
	s.False(IsFinished(state))
}

func (s *GameTestSuite) TestNewRejectsPartialDeck() {
	_, err := New(s.deck[:50])
	s.True(types.IsGameError(err, types.ErrInvalidArgument))
}

func (s *GameTestSuite) TestDealFillsFromTheEndOfEachPile() {
	// Execute
	state := s.dealt()

	// Assert
	s.Equal(1, state.Deals)
	s.Len(state.LeftPile, 21)
	s.Len(state.RightPile, 21)
	s.Require().True(state.Left.Complete())
	s.Equal(entities.NewCard(entities.Clubs, entities.King), *state.Left.Cards[0])
	s.Equal(entities.NewCard(entities.Clubs, entities.Nine), *state.Left.Cards[4])
	s.Equal(entities.NewCard(entities.Diamonds, entities.King), *state.Right.Cards[0])
}

func (s *GameTestSuite) TestDealWithFullHandsEndsGame() {
	// Setup
	state := s.dealt()

	// Execute
	next, n, err := Deal(state)

	// Assert
	s.NoError(err)
	s.Equal(0, n)
	s.True(next.NoDiscards)
	s.Equal(1, next.Deals, "A deal that dealt nothing does not count")
	s.True(IsFinished(next))

	_, _, err = Deal(next)
	s.True(types.IsGameError(err, types.ErrGameAlreadyEnded))
}

func (s *GameTestSuite) TestToggleSelect() {
	// Setup
	state := s.dealt()

	// Execute
	state, err := ToggleSelect(state, entities.SideRight, 1)
	s.Require().NoError(err)
	state, err = ToggleSelect(state, entities.SideLeft, 0)
	s.Require().NoError(err)
	state, err = ToggleSelect(state, entities.SideLeft, 3)
	s.Require().NoError(err)

	// Assert
	s.Equal([HandSize]bool{true, false, false, true, false}, state.Left.Selected)
	s.False(state.Right.HasSelection(), "Selecting left should clear the right hand")

	state, err = ToggleSelect(state, entities.SideLeft, 3)
	s.Require().NoError(err)
	s.Equal([HandSize]bool{true, false, false, false, false}, state.Left.Selected)
}

func (s *GameTestSuite) TestToggleSelectErrors() {
	fresh, err := New(s.deck)
	s.Require().NoError(err)

	testCases := []struct {
		name  string
		state State
		side  entities.Side
		index int
		code  types.ErrorCode
	}{
		{name: "empty hand", state: fresh, side: entities.SideLeft, index: 0, code: types.ErrHandIncomplete},
		{name: "bad side", state: s.dealt(), side: entities.Side("middle"), index: 0, code: types.ErrInvalidArgument},
		{name: "index too large", state: s.dealt(), side: entities.SideLeft, index: HandSize, code: types.ErrInvalidArgument},
		{name: "finished", state: State{Deals: MaxDeals}, side: entities.SideLeft, index: 0, code: types.ErrGameAlreadyEnded},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := ToggleSelect(tc.state, tc.side, tc.index)
			s.True(types.IsGameError(err, tc.code), "expected %s, got %v", tc.code, err)
		})
	}
}

func (s *GameTestSuite) TestDiscard() {
	// Setup
	state := s.dealt()
	state, err := ToggleSelect(state, entities.SideLeft, 0)
	s.Require().NoError(err)
	state, err = ToggleSelect(state, entities.SideLeft, 2)
	s.Require().NoError(err)
	top := state.LeftPile[len(state.LeftPile)-1]

	// Execute
	next, discarded, err := Discard(state, entities.SideLeft, s.rng)

	// Assert
	s.NoError(err)
	s.Equal([]entities.Card{
		entities.NewCard(entities.Clubs, entities.King),
		entities.NewCard(entities.Clubs, entities.Jack),
	}, discarded)
	s.Nil(next.Left.Cards[0])
	s.Nil(next.Left.Cards[2])
	s.Equal(2, next.Left.Empty())
	s.False(next.Left.HasSelection())
	s.Len(next.LeftPile, 23)
	s.Equal(top, next.LeftPile[len(next.LeftPile)-1], "Discards never go on top")
	s.Subset(next.LeftPile, discarded)
	s.True(state.Left.Complete(), "Original state should not change")

	// Cannot select in a hand with empty slots
	_, err = ToggleSelect(next, entities.SideLeft, 1)
	s.True(types.IsGameError(err, types.ErrHandIncomplete))

	// Refill
	refilled, n, err := Deal(next)
	s.NoError(err)
	s.Equal(2, n)
	s.Equal(2, refilled.Deals)
	s.True(refilled.Left.Complete())
}

func (s *GameTestSuite) TestDiscardIntoTheOtherPile() {
	state := s.dealt()
	state, err := ToggleSelect(state, entities.SideRight, 4)
	s.Require().NoError(err)

	next, discarded, err := Discard(state, entities.SideLeft, s.rng)

	s.NoError(err)
	s.Len(discarded, 1)
	s.Len(next.LeftPile, 22)
	s.Len(next.RightPile, 21)
	s.Nil(next.Right.Cards[4])
}

func (s *GameTestSuite) TestDiscardWithoutSelection() {
	_, _, err := Discard(s.dealt(), entities.SideLeft, s.rng)
	s.True(types.IsGameError(err, types.ErrNoSelection))
}

func (s *GameTestSuite) TestDiscardIsReproducible() {
	run := func() State {
		state := s.dealt()
		state, err := ToggleSelect(state, entities.SideLeft, 1)
		s.Require().NoError(err)
		state, _, err = Discard(state, entities.SideLeft, rand.New(rand.NewSource(9)))
		s.Require().NoError(err)
		return state
	}

	s.Equal(run(), run())
}

func (s *GameTestSuite) TestGameEndsAfterMaxDeals() {
	// Setup
	state := s.dealt()
	var err error

	// Execute
	for i := 1; i < MaxDeals; i++ {
		state, err = ToggleSelect(state, entities.SideLeft, 0)
		s.Require().NoError(err)
		state, _, err = Discard(state, entities.SideLeft, s.rng)
		s.Require().NoError(err)
		state, _, err = Deal(state)
		s.Require().NoError(err)
	}

	// Assert
	s.Equal(MaxDeals, state.Deals)
	s.True(IsFinished(state))
	s.False(state.NoDiscards)

	_, err = ToggleSelect(state, entities.SideLeft, 0)
	s.True(types.IsGameError(err, types.ErrGameAlreadyEnded))
	_, _, err = Discard(state, entities.SideLeft, s.rng)
	s.True(types.IsGameError(err, types.ErrGameAlreadyEnded))
}

func (s *GameTestSuite) TestScores() {
	// Unshuffled piles deal K-9 of clubs and K-9 of diamonds
	state := s.dealt()

	scores := Scores(state)

	s.Require().Len(scores, 2)
	s.Require().NotNil(scores[0])
	s.Equal(scoring.StraightFlush, scores[0].Category)
	s.Require().NotNil(scores[0].Suit)
	s.Equal(entities.Clubs, *scores[0].Suit)
	s.Require().NotNil(scores[1])
	s.Equal(entities.Diamonds, *scores[1].Suit)
	s.Equal(150, TotalScore(state))

	fresh, err := New(s.deck)
	s.Require().NoError(err)
	s.Equal([]*scoring.ScoreResult{nil, nil}, Scores(fresh))
}
