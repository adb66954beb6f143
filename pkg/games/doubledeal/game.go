package doubledeal

import (
	"fmt"
	"math/rand"

	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
)

const (
	HandSize = scoring.HandSize
	MaxDeals = 4 // The game ends after this many deals
)

// Hand is five slots; a nil slot is waiting to be dealt into
type Hand struct {
	Cards    [HandSize]*entities.Card `json:"cards"`
	Selected [HandSize]bool           `json:"selected"`
}

// Complete reports whether every slot holds a card
func (h Hand) Complete() bool {
	for _, c := range h.Cards {
		if c == nil {
			return false
		}
	}
	return true
}

// Empty counts the open slots
func (h Hand) Empty() int {
	n := 0
	for _, c := range h.Cards {
		if c == nil {
			n++
		}
	}
	return n
}

// HasSelection reports whether any card is selected
func (h Hand) HasSelection() bool {
	for _, sel := range h.Selected {
		if sel {
			return true
		}
	}
	return false
}

// Slice returns the cards of a complete hand, or nil
func (h Hand) Slice() []entities.Card {
	if !h.Complete() {
		return nil
	}
	cards := make([]entities.Card, HandSize)
	for i, c := range h.Cards {
		cards[i] = *c
	}
	return cards
}

// State is a complete Double Deal game. Piles are drawn from the end.
type State struct {
	Left       Hand            `json:"left"`
	Right      Hand            `json:"right"`
	LeftPile   []entities.Card `json:"left_pile"`
	RightPile  []entities.Card `json:"right_pile"`
	Deals      int             `json:"deals"`
	NoDiscards bool            `json:"no_discards"` // a deal found nothing to fill
}

// New splits a shuffled deck into two piles of 26
func New(deck []entities.Card) (State, error) {
	if len(deck) != entities.DeckSize {
		return State{}, types.NewGameError(types.ErrInvalidArgument,
			fmt.Sprintf("need a full deck of %d cards, got %d", entities.DeckSize, len(deck)))
	}

	half := entities.DeckSize / 2
	return State{
		LeftPile:  append([]entities.Card(nil), deck[:half]...),
		RightPile: append([]entities.Card(nil), deck[half:]...),
	}, nil
}

func (s State) clone() State {
	next := s
	next.LeftPile = append([]entities.Card(nil), s.LeftPile...)
	next.RightPile = append([]entities.Card(nil), s.RightPile...)
	return next
}

func (s *State) hand(side entities.Side) *Hand {
	if side == entities.SideRight {
		return &s.Right
	}
	return &s.Left
}

func (s *State) pile(side entities.Side) *[]entities.Card {
	if side == entities.SideRight {
		return &s.RightPile
	}
	return &s.LeftPile
}

// fill deals into the open slots of one hand from its pile and returns the
// number of cards dealt
func fill(h *Hand, pile *[]entities.Card) int {
	n := 0
	for i := range h.Cards {
		if h.Cards[i] != nil || len(*pile) == 0 {
			continue
		}
		last := len(*pile) - 1
		card := (*pile)[last]
		*pile = (*pile)[:last]
		h.Cards[i] = &card
		h.Selected[i] = false
		n++
	}
	return n
}

// Deal fills the open slots of both hands. A deal that places no card ends
// the game. The second return value is the number of cards dealt.
func Deal(s State) (State, int, error) {
	if IsFinished(s) {
		return s, 0, types.NewGameError(types.ErrGameAlreadyEnded, "no deals left")
	}

	next := s.clone()
	n := fill(&next.Left, &next.LeftPile) + fill(&next.Right, &next.RightPile)
	if n > 0 {
		next.Deals++
	} else {
		next.NoDiscards = true
	}
	return next, n, nil
}

// ToggleSelect flips the selection of one card. Selecting a card clears any
// selection in the other hand.
func ToggleSelect(s State, side entities.Side, index int) (State, error) {
	if IsFinished(s) {
		return s, types.NewGameError(types.ErrGameAlreadyEnded, "the game is over")
	}
	if !side.Valid() {
		return s, types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("unknown side %q", side))
	}
	if index < 0 || index >= HandSize {
		return s, types.NewGameError(types.ErrInvalidArgument,
			fmt.Sprintf("card index %d is out of range", index))
	}

	next := s.clone()
	h := next.hand(side)
	if !h.Complete() {
		return s, types.NewGameError(types.ErrHandIncomplete, "deal before discarding again")
	}

	h.Selected[index] = !h.Selected[index]
	if h.Selected[index] {
		next.hand(side.Other()).Selected = [HandSize]bool{}
	}
	return next, nil
}

// Discard removes the selected cards and shuffles each into the given pile at
// a random position. The returned cards are in hand order.
func Discard(s State, pileSide entities.Side, rng *rand.Rand) (State, []entities.Card, error) {
	if IsFinished(s) {
		return s, nil, types.NewGameError(types.ErrGameAlreadyEnded, "the game is over")
	}
	if !pileSide.Valid() {
		return s, nil, types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("unknown side %q", pileSide))
	}

	next := s.clone()
	var h *Hand
	switch {
	case next.Left.HasSelection():
		h = &next.Left
	case next.Right.HasSelection():
		h = &next.Right
	default:
		return s, nil, types.NewGameError(types.ErrNoSelection, "select cards to discard first")
	}

	discarded := make([]entities.Card, 0, HandSize)
	for i, sel := range h.Selected {
		if sel && h.Cards[i] != nil {
			discarded = append(discarded, *h.Cards[i])
			h.Cards[i] = nil
		}
	}
	h.Selected = [HandSize]bool{}

	pile := next.pile(pileSide)
	for _, card := range discarded {
		*pile = insertAt(*pile, randIndex(rng, len(*pile)), card)
	}
	return next, discarded, nil
}

// randIndex picks a position in [0, n). The top of the pile is never chosen.
func randIndex(rng *rand.Rand, n int) int {
	if n == 0 {
		return 0
	}
	return rng.Intn(n)
}

func insertAt(cards []entities.Card, i int, card entities.Card) []entities.Card {
	cards = append(cards, entities.Card{})
	copy(cards[i+1:], cards[i:])
	cards[i] = card
	return cards
}

// IsFinished reports whether the deal limit is reached or a deal filled nothing
func IsFinished(s State) bool {
	return s.Deals >= MaxDeals || s.NoDiscards
}

// Scores evaluates the left then the right hand; an incomplete hand scores nil
func Scores(s State) []*scoring.ScoreResult {
	return scoring.EvaluateAll([][]entities.Card{s.Left.Slice(), s.Right.Slice()})
}

// TotalScore sums both hands
func TotalScore(s State) int {
	return scoring.TotalScore(Scores(s))
}
