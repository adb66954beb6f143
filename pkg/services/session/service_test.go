package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fadedpez/pokersquares/internal/logging"
	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/games/doubledeal"
	"github.com/fadedpez/pokersquares/pkg/games/pokersquares"
	"github.com/fadedpez/pokersquares/pkg/repositories/history"
	mock_history "github.com/fadedpez/pokersquares/pkg/repositories/history/mock"
	"github.com/fadedpez/pokersquares/pkg/services/daily"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *history.MemoryRepository
	now     time.Time
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = history.NewMemoryRepository()
	s.now = time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	s.service = s.newService(s.repo)
}

func (s *ServiceTestSuite) newService(repo history.Repository) *Service {
	return NewService(repo,
		WithClock(func() time.Time { return s.now }),
		WithLogger(logging.NewLogger(logging.ERROR)),
		WithShareURL("https://example.com/squares"),
	)
}

func (s *ServiceTestSuite) playPokerSquares(playerID string) *PokerSquaresGame {
	game, err := s.service.StartPokerSquares(s.ctx, playerID)
	s.Require().NoError(err)
	for i := 0; i < pokersquares.PileSize; i++ {
		if !game.State.TopCardVisible {
			game, err = s.service.DealPokerSquares(s.ctx, playerID)
			s.Require().NoError(err)
		}
		game, err = s.service.PlacePokerSquares(s.ctx, playerID, i/pokersquares.Size, i%pokersquares.Size)
		s.Require().NoError(err)
	}
	return game
}

func (s *ServiceTestSuite) TestStartPokerSquaresUsesDailyDeck() {
	// Execute
	game, err := s.service.StartPokerSquares(s.ctx, "player-1")

	// Assert
	s.Require().NoError(err)
	s.Equal("2024-03-01", game.Key)
	deck, err := daily.DeckForKey("2024-03-01")
	s.Require().NoError(err)
	s.Equal(deck[:pokersquares.PileSize], game.State.Pile, "Everyone gets the same pile on the same day")
	s.False(game.Finished)
	s.Nil(game.Share)

	other, err := s.service.StartPokerSquares(s.ctx, "player-2")
	s.Require().NoError(err)
	s.Equal(game.State.Pile, other.State.Pile)
	s.NotEqual(game.ID, other.ID)

	again, err := s.service.StartPokerSquares(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(game.ID, again.ID, "Starting twice resumes the saved game")
}

func (s *ServiceTestSuite) TestStartPokerSquaresResumesProgress() {
	// Setup
	_, err := s.service.StartPokerSquares(s.ctx, "player-1")
	s.Require().NoError(err)
	_, err = s.service.DealPokerSquares(s.ctx, "player-1")
	s.Require().NoError(err)
	placed, err := s.service.PlacePokerSquares(s.ctx, "player-1", 2, 3)
	s.Require().NoError(err)

	// Execute
	resumed, err := s.service.StartPokerSquares(s.ctx, "player-1")

	// Assert
	s.Require().NoError(err)
	s.Equal(placed.State, resumed.State)
	s.NotNil(resumed.State.Board[2][3])
}

func (s *ServiceTestSuite) TestAutoDealCarriesOver() {
	// Setup
	_, err := s.service.StartPokerSquares(s.ctx, "player-1")
	s.Require().NoError(err)
	toggled, err := s.service.ToggleAutoDeal(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().True(toggled.State.AutoDeal)

	// Execute
	s.now = s.now.Add(24 * time.Hour)
	tomorrow, err := s.service.StartPokerSquares(s.ctx, "player-1")

	// Assert
	s.Require().NoError(err)
	s.Equal("2024-03-02", tomorrow.Key)
	s.True(tomorrow.State.AutoDeal)
	s.NotEqual(toggled.State.Pile, tomorrow.State.Pile)

	fresh, err := s.service.StartPokerSquares(s.ctx, "player-2")
	s.Require().NoError(err)
	s.False(fresh.State.AutoDeal)
}

func (s *ServiceTestSuite) TestFinishedPokerSquaresRecordsResultOnce() {
	// Execute
	game := s.playPokerSquares("player-1")

	// Assert
	s.True(game.Finished)
	s.Require().NotNil(game.Share)
	s.True(strings.HasPrefix(game.Share.Text, "Poker Squares\n2024-03-01\n"))
	s.True(strings.HasSuffix(game.Share.Text, "https://example.com/squares"))

	_, err := s.service.DealPokerSquares(s.ctx, "player-1")
	s.True(types.IsGameError(err, types.ErrGameAlreadyEnded))
	_, err = s.service.ToggleAutoDeal(s.ctx, "player-1")
	s.NoError(err, "Toggling after the end saves again but must not record a second result")

	results, err := s.repo.GetDailyResults(s.ctx, entities.GamePokerSquares, "2024-03-01")
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(game.Total, results[0].Score)
	s.Equal(game.ID, results[0].GameID)
	s.Len(results[0].Hands, 2*pokersquares.Size)
	s.Equal(game.Share.Text, results[0].Share)
	if game.Best != nil {
		s.Contains(pokersquares.Lines(game.State), game.Best)
		s.NotNil(scoring.Evaluate(game.Best))
	} else {
		s.Zero(game.Total)
	}

	resumed, err := s.service.StartPokerSquares(s.ctx, "player-1")
	s.Require().NoError(err)
	s.True(resumed.Finished)
	s.NotNil(resumed.Share)
}

func (s *ServiceTestSuite) TestActionsNeedAGame() {
	_, err := s.service.PlacePokerSquares(s.ctx, "player-1", 0, 0)
	s.True(types.IsGameError(err, types.ErrGameNotFound))

	_, err = s.service.DealDoubleDeal(s.ctx, "player-1")
	s.True(types.IsGameError(err, types.ErrGameNotFound))
}

func (s *ServiceTestSuite) TestRuleErrorsPassThrough() {
	_, err := s.service.StartPokerSquares(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.service.PlacePokerSquares(s.ctx, "player-1", 0, 0)
	s.True(types.IsGameError(err, types.ErrNoCardDealt))

	_, err = s.service.DealPokerSquares(s.ctx, "player-1")
	s.Require().NoError(err)
	_, err = s.service.PlacePokerSquares(s.ctx, "player-1", 7, 0)
	s.True(types.IsGameError(err, types.ErrInvalidArgument))
}

func (s *ServiceTestSuite) TestRepositoryErrorsBecomeDatabaseErrors() {
	// Setup
	ctrl := gomock.NewController(s.T())
	repo := mock_history.NewMockRepository(ctrl)
	service := s.newService(repo)

	repo.EXPECT().
		GetGame(gomock.Any(), "player-1", entities.GamePokerSquares, "2024-03-01").
		Return(nil, errors.New("disk on fire"))

	// Execute
	_, err := service.StartPokerSquares(s.ctx, "player-1")

	// Assert
	s.True(types.IsGameError(err, types.ErrDatabaseError))
	s.ErrorContains(err, "disk on fire")
}

func (s *ServiceTestSuite) TestSaveFailureIsReported() {
	// Setup
	ctrl := gomock.NewController(s.T())
	repo := mock_history.NewMockRepository(ctrl)
	service := s.newService(repo)

	gomock.InOrder(
		repo.EXPECT().GetGame(gomock.Any(), "player-1", entities.GamePokerSquares, "2024-03-01").Return(nil, history.ErrNotFound),
		repo.EXPECT().LatestGame(gomock.Any(), "player-1", entities.GamePokerSquares).Return(nil, history.ErrNotFound),
		repo.EXPECT().SaveGame(gomock.Any(), gomock.Any()).Return(errors.New("read-only")),
	)

	// Execute
	_, err := service.StartPokerSquares(s.ctx, "player-1")

	// Assert
	s.True(types.IsGameError(err, types.ErrDatabaseError))
}

func (s *ServiceTestSuite) TestDoubleDealRound() {
	// Setup
	game, err := s.service.StartDoubleDeal(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(doubledeal.HandSize, game.State.Left.Empty())

	// Execute
	game, err = s.service.DealDoubleDeal(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(2*doubledeal.HandSize, game.Dealt)

	game, err = s.service.SelectDoubleDeal(s.ctx, "player-1", entities.SideRight, 2)
	s.Require().NoError(err)
	s.True(game.State.Right.Selected[2])

	selected := *game.State.Right.Cards[2]
	game, err = s.service.DiscardDoubleDeal(s.ctx, "player-1", entities.SideRight)
	s.Require().NoError(err)

	// Assert
	s.Equal([]entities.Card{selected}, game.Discarded)
	s.Nil(game.State.Right.Cards[2])
	s.Contains(game.State.RightPile, selected)

	game, err = s.service.DealDoubleDeal(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(1, game.Dealt)
	s.Equal(2, game.State.Deals)
}

func (s *ServiceTestSuite) TestDoubleDealIsSeededFromTheClock() {
	first, err := s.service.StartDoubleDeal(s.ctx, "player-1")
	s.Require().NoError(err)

	other := s.newService(history.NewMemoryRepository())
	same, err := other.StartDoubleDeal(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(first.State, same.State, "Same instant gives the same shuffle")

	s.now = s.now.Add(time.Second)
	later, err := other.StartDoubleDeal(s.ctx, "player-2")
	s.Require().NoError(err)
	s.NotEqual(first.State.LeftPile, later.State.LeftPile)
}

func (s *ServiceTestSuite) TestDoubleDealFinishes() {
	// Setup
	_, err := s.service.StartDoubleDeal(s.ctx, "player-1")
	s.Require().NoError(err)
	game, err := s.service.DealDoubleDeal(s.ctx, "player-1")
	s.Require().NoError(err)

	// Execute
	for !game.Finished {
		_, err = s.service.SelectDoubleDeal(s.ctx, "player-1", entities.SideLeft, 0)
		s.Require().NoError(err)
		_, err = s.service.DiscardDoubleDeal(s.ctx, "player-1", entities.SideLeft)
		s.Require().NoError(err)
		game, err = s.service.DealDoubleDeal(s.ctx, "player-1")
		s.Require().NoError(err)
	}

	// Assert
	s.Equal(doubledeal.MaxDeals, game.State.Deals)
	s.Require().NotNil(game.Share)
	s.True(strings.HasPrefix(game.Share.Text, "Double Deal\n"))

	results, err := s.repo.GetPlayerResults(s.ctx, "player-1", entities.GameDoubleDeal)
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(game.Total, results[0].Score)

	// A finished game makes way for a new one
	s.now = s.now.Add(time.Minute)
	next, err := s.service.StartDoubleDeal(s.ctx, "player-1")
	s.Require().NoError(err)
	s.NotEqual(game.ID, next.ID)
	s.Equal(0, next.State.Deals)
}
