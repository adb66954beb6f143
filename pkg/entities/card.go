package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit represents a card suit

type Suit int

const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

// Suits lists every suit in deck construction order
var Suits = []Suit{Spades, Clubs, Hearts, Diamonds}

var suitNames = map[Suit]string{
	Spades:   "SPADES",
	Clubs:    "CLUBS",
	Hearts:   "HEARTS",
	Diamonds: "DIAMONDS",
}

var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Clubs:    "♣",
	Hearts:   "♥",
	Diamonds: "♦",
}

// String returns the suit name
func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

// Symbol returns the rendering glyph for the suit
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// IsRed reports whether the suit is printed in red
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	_, ok := suitNames[s]
	return ok
}

// Rank represents a card rank, 1 (Ace) through 13 (King)

type Rank int

const (
	Ace   Rank = 1
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// Label returns the short face label of the rank
func (r Rank) Label() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(int(r))
	}
}

// Valid reports whether r is within Ace..King
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Card represents a playing card

type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"value"`
}

// NewCard creates a new card

func NewCard(suit Suit, rank Rank) Card {
	return Card{
		Suit: suit,
		Rank: rank,
	}
}

// String returns the string representation of the card

func (c Card) String() string {
	return c.Rank.Label() + c.Suit.Symbol()
}

// ParseCard parses a card from its rendered form ("10♥", "A♠") or the short
// ASCII form ("Th", "as", "10d")
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Card{}, fmt.Errorf("empty card")
	}

	var suit Suit
	var rankPart string
	found := false
	for candidate, symbol := range suitSymbols {
		if strings.HasSuffix(s, symbol) {
			suit = candidate
			rankPart = strings.TrimSuffix(s, symbol)
			found = true
			break
		}
	}
	if !found {
		switch strings.ToLower(s[len(s)-1:]) {
		case "s":
			suit = Spades
		case "c":
			suit = Clubs
		case "h":
			suit = Hearts
		case "d":
			suit = Diamonds
		default:
			return Card{}, fmt.Errorf("invalid suit in card %q", s)
		}
		rankPart = s[:len(s)-1]
	}

	var rank Rank
	switch strings.ToUpper(rankPart) {
	case "A", "1":
		rank = Ace
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "T":
		rank = Ten
	default:
		n, err := strconv.Atoi(rankPart)
		if err != nil || !Rank(n).Valid() {
			return Card{}, fmt.Errorf("invalid rank in card %q", s)
		}
		rank = Rank(n)
	}

	return NewCard(suit, rank), nil
}

// MustParseCards parses a space separated list of cards, panicking on error
func MustParseCards(s string) []Card {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		card, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		cards = append(cards, card)
	}
	return cards
}
