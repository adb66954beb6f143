package scoring

import (
	"fmt"

	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/paulhankin/poker"
)

// Strength ranks a hand by standard poker rules, kickers included. Larger is
// stronger. Game scoring only needs the category, so this is used to break
// ties between hands that score the same points.
func Strength(hand []entities.Card) (int16, error) {
	if len(hand) != HandSize {
		return 0, types.NewGameError(types.ErrInvalidArgument,
			fmt.Sprintf("a hand needs exactly %d cards, got %d", HandSize, len(hand)))
	}

	seen := make(map[entities.Card]bool, HandSize)
	var five [HandSize]poker.Card
	for i, c := range hand {
		if seen[c] {
			return 0, types.NewGameError(types.ErrInvalidArgument,
				fmt.Sprintf("card %s appears twice", c))
		}
		seen[c] = true

		pc, err := toLibraryCard(c)
		if err != nil {
			return 0, types.WrapError(types.ErrInvalidArgument, "invalid card", err)
		}
		five[i] = pc
	}

	return poker.Eval5(&five), nil
}

// Compare orders two hands by Strength: negative when a is weaker, positive
// when a is stronger, zero on a tie
func Compare(a, b []entities.Card) (int, error) {
	sa, err := Strength(a)
	if err != nil {
		return 0, err
	}
	sb, err := Strength(b)
	if err != nil {
		return 0, err
	}
	switch {
	case sa < sb:
		return -1, nil
	case sa > sb:
		return 1, nil
	default:
		return 0, nil
	}
}

// BestHand returns the index of the highest scoring hand, or -1 when no hand
// scores. Hands worth the same points are ordered by Strength; on a full tie
// the earlier hand wins. Nil hands are skipped.
func BestHand(hands [][]entities.Card) int {
	best, bestPoints := -1, 0
	for i, hand := range hands {
		if hand == nil {
			continue
		}
		result := Evaluate(hand)
		if result == nil || (best >= 0 && result.Points < bestPoints) {
			continue
		}
		if best >= 0 && result.Points == bestPoints {
			if cmp, err := Compare(hand, hands[best]); err != nil || cmp <= 0 {
				continue
			}
		}
		best, bestPoints = i, result.Points
	}
	return best
}

// Library ranks run 1 (ace) to 13 (king), the same numbering as entities.Rank.
func toLibraryCard(c entities.Card) (poker.Card, error) {
	var s poker.Suit
	switch c.Suit {
	case entities.Clubs:
		s = poker.Club
	case entities.Diamonds:
		s = poker.Diamond
	case entities.Hearts:
		s = poker.Heart
	case entities.Spades:
		s = poker.Spade
	default:
		var zero poker.Card
		return zero, fmt.Errorf("unknown suit %d", int(c.Suit))
	}
	return poker.MakeCard(s, poker.Rank(c.Rank))
}
