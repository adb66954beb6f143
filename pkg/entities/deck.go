package entities

import (
	"math/rand"
	"sort"
)

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

type Deck struct {
	Cards []Card
}

// BuildDeck returns the 52 cards of a standard deck, suit-major and rank-ascending.
// The order carries no meaning; consumers shuffle before dealing.
func BuildDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// SortByValue returns a copy of hand ordered by ascending rank. Cards of equal
// rank keep their input order.
func SortByValue(hand []Card) []Card {
	sorted := make([]Card, len(hand))
	copy(sorted, hand)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})
	return sorted
}

// NewDeck creates a new deck of 52 cards, one of each rank and suit
func NewDeck() *Deck {
	return &Deck{Cards: BuildDeck()}
}

// Shuffle shuffles the deck with the given source so that seeded games reproduce
func (d *Deck) Shuffle(r *rand.Rand) {
	r.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}
	card := d.Cards[0]
	d.Cards = d.Cards[1:]
	return card, true
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.Cards)
}
