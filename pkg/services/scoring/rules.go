package scoring

import "github.com/fadedpez/pokersquares/pkg/entities"

// HandSize is the number of cards in a scored hand
const HandSize = 5

// Category is a recognised poker hand type
type Category int

const (
	None Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = map[Category]string{
	None:          "Nothing",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

var categoryPoints = map[Category]int{
	None:          0,
	OnePair:       2,
	TwoPair:       5,
	ThreeOfAKind:  10,
	Straight:      15,
	Flush:         20,
	FullHouse:     25,
	FourOfAKind:   50,
	StraightFlush: 75,
	RoyalFlush:    100,
}

// Categories lists the scoring categories from highest to lowest priority
var Categories = []Category{
	RoyalFlush,
	StraightFlush,
	FourOfAKind,
	FullHouse,
	Flush,
	Straight,
	ThreeOfAKind,
	TwoPair,
	OnePair,
}

// String returns the display name of the category
func (c Category) String() string {
	return categoryNames[c]
}

// Points returns the fixed score of the category
func (c Category) Points() int {
	return categoryPoints[c]
}

// ScoreResult is the outcome of evaluating one hand
type ScoreResult struct {
	Category Category       `json:"category"`
	Name     string         `json:"name"`
	Points   int            `json:"points"`
	Suit     *entities.Suit `json:"suit,omitempty"` // Flush and Straight Flush only
}

func newResult(c Category) *ScoreResult {
	return &ScoreResult{
		Category: c,
		Name:     c.String(),
		Points:   c.Points(),
	}
}

func newSuitedResult(c Category, suit entities.Suit) *ScoreResult {
	r := newResult(c)
	r.Suit = &suit
	return r
}

// TotalScore sums the points of every result; nil results count as zero
func TotalScore(results []*ScoreResult) int {
	total := 0
	for _, r := range results {
		if r != nil {
			total += r.Points
		}
	}
	return total
}
