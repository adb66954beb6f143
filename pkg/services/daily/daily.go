package daily

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fadedpez/pokersquares/pkg/entities"
)

// KeyLayout is the calendar date format used for daily keys
const KeyLayout = "2006-01-02"

// Key returns the calendar date of t in its own location, e.g. "2024-03-09"
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseKey parses a daily key as midnight UTC
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid daily key %q: %w", key, err)
	}
	return t, nil
}

// Seed derives the shuffle seed for a daily key: Unix milliseconds of that
// date at midnight UTC. Every player gets the same seed on the same day.
func Seed(key string) (int64, error) {
	t, err := ParseKey(key)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// NewRand returns a deterministic source for seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ShuffledDeck returns a full deck shuffled by seed
func ShuffledDeck(seed int64) []entities.Card {
	deck := entities.NewDeck()
	deck.Shuffle(NewRand(seed))
	return deck.Cards
}

// DeckForKey returns the shuffled deck for a daily key
func DeckForKey(key string) ([]entities.Card, error) {
	seed, err := Seed(key)
	if err != nil {
		return nil, err
	}
	return ShuffledDeck(seed), nil
}

// KeyBefore returns the key for the day that is days before key
func KeyBefore(key string, days int) (string, error) {
	t, err := ParseKey(key)
	if err != nil {
		return "", err
	}
	return Key(t.AddDate(0, 0, -days)), nil
}
