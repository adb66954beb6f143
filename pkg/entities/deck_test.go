package entities

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DeckTestSuite struct {
	suite.Suite
}

func TestDeckSuite(t *testing.T) {
	suite.Run(t, new(DeckTestSuite))
}

func (s *DeckTestSuite) TestCardString() {
	testCases := []struct {
		name     string
		card     Card
		expected string
	}{
		{
			name:     "ace of spades",
			card:     Card{Suit: Spades, Rank: Ace},
			expected: "A♠",
		},
		{
			name:     "ten of hearts",
			card:     Card{Suit: Hearts, Rank: Ten},
			expected: "10♥",
		},
		{
			name:     "king of clubs",
			card:     Card{Suit: Clubs, Rank: King},
			expected: "K♣",
		},
		{
			name:     "seven of diamonds",
			card:     Card{Suit: Diamonds, Rank: Seven},
			expected: "7♦",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// Execute
			result := tc.card.String()

			// Assert
			s.Equal(tc.expected, result, "Card string representation should match expected")
		})
	}
}

func (s *DeckTestSuite) TestParseCard() {
	testCases := []struct {
		name     string
		input    string
		expected Card
		wantErr  bool
	}{
		{name: "rendered ace", input: "A♠", expected: Card{Suit: Spades, Rank: Ace}},
		{name: "rendered ten", input: "10♥", expected: Card{Suit: Hearts, Rank: Ten}},
		{name: "short ten", input: "Th", expected: Card{Suit: Hearts, Rank: Ten}},
		{name: "short queen lower case", input: "qd", expected: Card{Suit: Diamonds, Rank: Queen}},
		{name: "numeric", input: "7c", expected: Card{Suit: Clubs, Rank: Seven}},
		{name: "bad suit", input: "7x", wantErr: true},
		{name: "bad rank", input: "14s", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			card, err := ParseCard(tc.input)
			if tc.wantErr {
				s.Error(err)
				return
			}
			s.NoError(err)
			s.Equal(tc.expected, card)
		})
	}
}

func (s *DeckTestSuite) TestBuildDeck() {
	// Execute
	deck := BuildDeck()

	// Assert
	s.Len(deck, DeckSize, "Deck should have 52 cards")

	seen := make(map[Card]bool)
	suits := map[Suit]int{}
	for _, card := range deck {
		s.False(seen[card], "Card %v should appear exactly once", card)
		seen[card] = true
		suits[card.Suit]++
		s.True(card.Rank.Valid(), "Rank %d should be within Ace..King", card.Rank)
	}

	for _, suit := range Suits {
		s.Equal(13, suits[suit], "Each suit should have 13 cards: %s", suit)
	}

	// Suit-major, rank ascending
	s.Equal(Card{Suit: Spades, Rank: Ace}, deck[0])
	s.Equal(Card{Suit: Spades, Rank: King}, deck[12])
	s.Equal(Card{Suit: Clubs, Rank: Ace}, deck[13])
	s.Equal(Card{Suit: Diamonds, Rank: King}, deck[51])
}

func (s *DeckTestSuite) TestBuildDeckReturnsFreshSlice() {
	deck := BuildDeck()
	deck[0] = Card{Suit: Hearts, Rank: Nine}

	s.Equal(Card{Suit: Spades, Rank: Ace}, BuildDeck()[0])
}

func (s *DeckTestSuite) TestSortByValue() {
	// Setup
	hand := []Card{
		{Suit: Hearts, Rank: King},
		{Suit: Spades, Rank: Four},
		{Suit: Clubs, Rank: Ace},
		{Suit: Diamonds, Rank: Four},
		{Suit: Spades, Rank: Ten},
	}
	original := make([]Card, len(hand))
	copy(original, hand)

	// Execute
	sorted := SortByValue(hand)

	// Assert
	s.Equal([]Card{
		{Suit: Clubs, Rank: Ace},
		{Suit: Spades, Rank: Four},
		{Suit: Diamonds, Rank: Four},
		{Suit: Spades, Rank: Ten},
		{Suit: Hearts, Rank: King},
	}, sorted, "Equal ranks should keep their input order")
	s.Equal(original, hand, "Input should not be mutated")
}

func (s *DeckTestSuite) TestShuffleIsDeterministicPerSeed() {
	// Setup
	deck1 := NewDeck()
	deck2 := NewDeck()
	deck3 := NewDeck()

	// Execute
	deck1.Shuffle(rand.New(rand.NewSource(20240101)))
	deck2.Shuffle(rand.New(rand.NewSource(20240101)))
	deck3.Shuffle(rand.New(rand.NewSource(20240102)))

	// Assert
	s.Equal(deck1.Cards, deck2.Cards, "Same seed should give the same order")
	s.NotEqual(deck1.Cards, deck3.Cards, "Different seeds should give different orders")
	s.ElementsMatch(BuildDeck(), deck1.Cards, "Shuffle should not lose or duplicate cards")
}

func (s *DeckTestSuite) TestDraw() {
	// Setup
	deck := NewDeck()
	top := deck.Cards[0]

	// Execute
	drawn, ok := deck.Draw()

	// Assert
	s.True(ok)
	s.Equal(top, drawn, "Draw should return the top card")
	s.Equal(51, deck.Remaining(), "Deck should have one less card")

	empty := &Deck{}
	_, ok = empty.Draw()
	s.False(ok, "Drawing from an empty deck should report no card")
}

func (s *DeckTestSuite) TestSuitLabels() {
	s.Equal("♠", Spades.Symbol())
	s.Equal("HEARTS", Hearts.String())
	s.True(Diamonds.IsRed())
	s.False(Clubs.IsRed())
	s.False(Suit(9).Valid())
	s.Equal("Q", Queen.Label())
}
