package scoring

import (
	"fmt"

	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
)

// The detectors below work on the rank-sorted hand, where equal ranks always
// sit in one contiguous block. Each exported predicate sorts its own input so
// callers may pass cards in any order.

// IsNKind reports whether every card in cards shares one rank
func IsNKind(cards []entities.Card) bool {
	for _, c := range cards {
		if c.Rank != cards[0].Rank {
			return false
		}
	}
	return true
}

// IsFlush reports whether all cards share one suit
func IsFlush(hand []entities.Card) bool {
	for _, c := range hand {
		if c.Suit != hand[0].Suit {
			return false
		}
	}
	return true
}

// IsRoyalStraight reports whether the ranks are exactly A, 10, J, Q, K.
// This is the only straight in which the ace plays high.
func IsRoyalStraight(hand []entities.Card) bool {
	return isRoyalStraight(entities.SortByValue(hand))
}

func isRoyalStraight(sorted []entities.Card) bool {
	return sorted[0].Rank == entities.Ace &&
		sorted[1].Rank == entities.Ten &&
		sorted[2].Rank == entities.Jack &&
		sorted[3].Rank == entities.Queen &&
		sorted[4].Rank == entities.King
}

// IsStraight reports whether the hand is a royal straight or five consecutive ranks
func IsStraight(hand []entities.Card) bool {
	return isStraight(entities.SortByValue(hand))
}

func isStraight(sorted []entities.Card) bool {
	if isRoyalStraight(sorted) {
		return true
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank-sorted[i-1].Rank != 1 {
			return false
		}
	}
	return true
}

// IsRoyalFlush reports whether the hand is a suited A-10-J-Q-K
func IsRoyalFlush(hand []entities.Card) bool {
	return IsFlush(hand) && IsRoyalStraight(hand)
}

// IsFourOfAKind reports whether the first four or last four sorted cards share a rank
func IsFourOfAKind(hand []entities.Card) bool {
	return isFourOfAKind(entities.SortByValue(hand))
}

func isFourOfAKind(s []entities.Card) bool {
	return IsNKind(s[0:4]) || IsNKind(s[1:5])
}

// IsFullHouse reports whether the sorted hand splits into pair+triple or triple+pair
func IsFullHouse(hand []entities.Card) bool {
	return isFullHouse(entities.SortByValue(hand))
}

func isFullHouse(s []entities.Card) bool {
	return (IsNKind(s[0:2]) && IsNKind(s[2:5])) ||
		(IsNKind(s[0:3]) && IsNKind(s[3:5]))
}

// IsThreeOfAKind reports whether any three adjacent sorted cards share a rank
func IsThreeOfAKind(hand []entities.Card) bool {
	return isThreeOfAKind(entities.SortByValue(hand))
}

func isThreeOfAKind(s []entities.Card) bool {
	return IsNKind(s[0:3]) || IsNKind(s[1:4]) || IsNKind(s[2:5])
}

// IsTwoPair reports whether two disjoint adjacent pairs exist in the sorted hand
func IsTwoPair(hand []entities.Card) bool {
	return isTwoPair(entities.SortByValue(hand))
}

func isTwoPair(s []entities.Card) bool {
	return (IsNKind(s[0:2]) && IsNKind(s[2:4])) ||
		(IsNKind(s[0:2]) && IsNKind(s[3:5])) ||
		(IsNKind(s[1:3]) && IsNKind(s[3:5]))
}

// IsOnePair reports whether any two adjacent sorted cards share a rank
func IsOnePair(hand []entities.Card) bool {
	return isOnePair(entities.SortByValue(hand))
}

func isOnePair(s []entities.Card) bool {
	for i := 1; i < len(s); i++ {
		if IsNKind(s[i-1 : i+1]) {
			return true
		}
	}
	return false
}

// Evaluate returns the highest priority category the hand matches, or nil when
// it is only a high card. The hand must hold exactly five cards; anything else
// is a caller bug and panics.
func Evaluate(hand []entities.Card) *ScoreResult {
	if len(hand) != HandSize {
		panic(fmt.Sprintf("scoring: Evaluate needs %d cards, got %d", HandSize, len(hand)))
	}

	sorted := entities.SortByValue(hand)
	flush := IsFlush(sorted)
	straight := isStraight(sorted)

	switch {
	case flush && isRoyalStraight(sorted):
		return newResult(RoyalFlush)
	case flush && straight:
		return newSuitedResult(StraightFlush, hand[0].Suit)
	case isFourOfAKind(sorted):
		return newResult(FourOfAKind)
	case isFullHouse(sorted):
		return newResult(FullHouse)
	case flush:
		return newSuitedResult(Flush, hand[0].Suit)
	case straight:
		return newResult(Straight)
	case isThreeOfAKind(sorted):
		return newResult(ThreeOfAKind)
	case isTwoPair(sorted):
		return newResult(TwoPair)
	case isOnePair(sorted):
		return newResult(OnePair)
	}

	return nil
}

// EvaluateChecked is Evaluate for untrusted input: a hand of the wrong size
// or with invalid cards yields an INVALID_ARGUMENT error instead of a panic
func EvaluateChecked(hand []entities.Card) (*ScoreResult, error) {
	if len(hand) != HandSize {
		return nil, types.NewGameError(types.ErrInvalidArgument,
			fmt.Sprintf("a hand needs exactly %d cards, got %d", HandSize, len(hand)))
	}
	for _, c := range hand {
		if !c.Suit.Valid() || !c.Rank.Valid() {
			return nil, types.NewGameError(types.ErrInvalidArgument,
				fmt.Sprintf("invalid card (suit %d, rank %d)", int(c.Suit), int(c.Rank)))
		}
	}
	return Evaluate(hand), nil
}

// EvaluateAll evaluates every hand in order. A nil hand is one still being
// built and scores nil.
func EvaluateAll(hands [][]entities.Card) []*ScoreResult {
	results := make([]*ScoreResult, len(hands))
	for i, hand := range hands {
		if hand != nil {
			results[i] = Evaluate(hand)
		}
	}
	return results
}
