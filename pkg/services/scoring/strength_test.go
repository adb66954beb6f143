package scoring

import (
	"math/rand"
	"testing"

	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrengthOrdersWithinCategory(t *testing.T) {
	highPair := hand("A♠ A♥ 3♦ 8♣ J♠")
	lowPair := hand("2♠ 2♥ 3♦ 8♣ J♠")

	cmp, err := Compare(highPair, lowPair)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp, "pair of aces should beat pair of twos")

	cmp, err = Compare(lowPair, highPair)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = Compare(highPair, hand("A♣ A♦ 3♠ 8♥ J♣"))
	require.NoError(t, err)
	assert.Equal(t, 0, cmp, "same ranks in other suits tie")
}

func TestStrengthAgreesWithCategoryOrder(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	deck := entities.BuildDeck()

	type scored struct {
		category Category
		strength int16
	}
	samples := make([]scored, 0, 400)
	for i := 0; i < 400; i++ {
		r.Shuffle(len(deck), func(a, b int) { deck[a], deck[b] = deck[b], deck[a] })
		h := append([]entities.Card(nil), deck[:HandSize]...)

		strength, err := Strength(h)
		require.NoError(t, err)

		category := None
		if result := Evaluate(h); result != nil {
			category = result.Category
		}
		samples = append(samples, scored{category: category, strength: strength})
	}

	for _, a := range samples {
		for _, b := range samples {
			if a.category.Points() > b.category.Points() {
				assert.Greater(t, a.strength, b.strength, "%s should outrank %s", a.category, b.category)
			}
		}
	}
}

func TestStrengthRejectsBadHands(t *testing.T) {
	_, err := Strength(hand("A♠ A♥ 3♦ 8♣"))
	assert.True(t, types.IsGameError(err, types.ErrInvalidArgument))

	_, err = Strength(hand("A♠ A♠ 3♦ 8♣ J♠"))
	assert.True(t, types.IsGameError(err, types.ErrInvalidArgument))

	_, err = Compare(hand("A♠ K♠ Q♠ J♠ 10♠"), hand("A♠"))
	assert.Error(t, err)
}

func TestBestHand(t *testing.T) {
	testCases := []struct {
		name     string
		hands    [][]entities.Card
		expected int
	}{
		{
			name:     "higher points win",
			hands:    [][]entities.Card{hand("2♠ 2♥ 5♦ 8♣ J♠"), hand("3♠ 3♥ 3♦ 8♦ J♥")},
			expected: 1,
		},
		{
			name:     "same points ordered by strength",
			hands:    [][]entities.Card{hand("2♠ 2♥ 5♦ 8♣ J♠"), nil, hand("K♠ K♥ 5♣ 8♦ J♥")},
			expected: 2,
		},
		{
			name:     "full tie keeps the first",
			hands:    [][]entities.Card{hand("K♠ K♥ 5♣ 8♦ J♥"), hand("K♣ K♦ 5♠ 8♥ J♣")},
			expected: 0,
		},
		{
			name:     "nothing scores",
			hands:    [][]entities.Card{nil, hand("2♠ 4♥ 6♦ 8♣ 10♠")},
			expected: -1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BestHand(tc.hands))
		})
	}
}
