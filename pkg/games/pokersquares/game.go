package pokersquares

import (
	"fmt"

	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
)

const (
	Size     = 5         // Rows and columns on the board
	PileSize = Size * Size // Cards dealt in one game
)

// State is a complete Poker Squares game. Transition functions never modify
// the State they are given; they return the next one.
type State struct {
	Board          [Size][Size]*entities.Card `json:"board"`
	Pile           []entities.Card            `json:"pile"`
	Dealt          *entities.Card             `json:"dealt_card,omitempty"`
	TopCardVisible bool                       `json:"top_card_visible"`
	Placement      *entities.Position         `json:"placement,omitempty"` // where the dealt card went, movable until the next deal
	AutoDeal       bool                       `json:"auto_deal"`
}

// New starts a game from a shuffled deck; the first 25 cards form the pile
func New(deck []entities.Card, autoDeal bool) (State, error) {
	if len(deck) < PileSize {
		return State{}, types.NewGameError(types.ErrInvalidArgument,
			fmt.Sprintf("need %d cards to start, got %d", PileSize, len(deck)))
	}

	pile := make([]entities.Card, PileSize)
	copy(pile, deck[:PileSize])

	return State{
		Pile:     pile,
		AutoDeal: autoDeal,
	}, nil
}

func (s State) clone() State {
	next := s
	next.Pile = append([]entities.Card(nil), s.Pile...)
	if s.Placement != nil {
		p := *s.Placement
		next.Placement = &p
	}
	return next
}

// dealNext moves the top of the pile into the dealt slot; an empty pile leaves nothing dealt
func (s *State) dealNext() {
	if len(s.Pile) == 0 {
		s.Dealt = nil
		return
	}
	card := s.Pile[0]
	s.Dealt = &card
	s.Pile = s.Pile[1:]
}

// Deal turns over the next card of the pile. The previous placement becomes final.
func Deal(s State) (State, error) {
	if IsFinished(s) {
		return s, types.NewGameError(types.ErrGameAlreadyEnded, "every card has been placed")
	}
	if s.TopCardVisible {
		return s, types.NewGameError(types.ErrCardAlreadyDealt, "place the dealt card first")
	}
	if len(s.Pile) == 0 {
		return s, types.NewGameError(types.ErrNoCardsLeft, "the pile is empty")
	}

	next := s.clone()
	next.TopCardVisible = true
	next.dealNext()
	next.Placement = nil
	return next, nil
}

// Place puts the dealt card on an empty square. Without auto-deal the card may
// be moved again until the next Deal; with auto-deal the next card is turned
// over at once.
func Place(s State, row, col int) (State, error) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return s, types.NewGameError(types.ErrInvalidArgument,
			fmt.Sprintf("square (%d, %d) is off the board", row, col))
	}
	if s.Dealt == nil {
		return s, types.NewGameError(types.ErrNoCardDealt, "deal a card first")
	}
	if s.Board[row][col] != nil {
		return s, types.NewGameError(types.ErrSlotOccupied,
			fmt.Sprintf("square (%d, %d) already holds %s", row, col, s.Board[row][col]))
	}

	next := s.clone()
	if next.Placement != nil {
		next.Board[next.Placement.Row][next.Placement.Col] = nil
	}
	card := *next.Dealt
	next.Board[row][col] = &card

	if next.AutoDeal {
		next.Placement = nil
		next.dealNext()
		return next, nil
	}

	next.Placement = &entities.Position{Row: row, Col: col}
	next.TopCardVisible = false
	if len(next.Pile) == 0 {
		next.Dealt = nil
		next.Placement = nil
	}
	return next, nil
}

// SetAutoDeal switches auto-deal on or off
func SetAutoDeal(s State, on bool) State {
	next := s.clone()
	next.AutoDeal = on
	return next
}

// IsFinished reports whether all 25 cards are on the board
func IsFinished(s State) bool {
	return len(s.Pile) == 0 && s.Dealt == nil
}

// Placed counts the cards on the board
func Placed(s State) int {
	n := 0
	for _, row := range s.Board {
		for _, card := range row {
			if card != nil {
				n++
			}
		}
	}
	return n
}

// Lines returns the five rows followed by the five columns. A line with an
// empty square is returned as nil.
func Lines(s State) [][]entities.Card {
	lines := make([][]entities.Card, 0, 2*Size)
	for i := 0; i < Size; i++ {
		lines = append(lines, line(s, func(j int) *entities.Card { return s.Board[i][j] }))
	}
	for j := 0; j < Size; j++ {
		lines = append(lines, line(s, func(i int) *entities.Card { return s.Board[i][j] }))
	}
	return lines
}

func line(s State, at func(int) *entities.Card) []entities.Card {
	cards := make([]entities.Card, 0, Size)
	for k := 0; k < Size; k++ {
		card := at(k)
		if card == nil {
			return nil
		}
		cards = append(cards, *card)
	}
	return cards
}

// Scores evaluates every complete line, rows first; incomplete lines score nil
func Scores(s State) []*scoring.ScoreResult {
	return scoring.EvaluateAll(Lines(s))
}

// TotalScore sums the points of every line
func TotalScore(s State) int {
	return scoring.TotalScore(Scores(s))
}
