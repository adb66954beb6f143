package share

import (
	"fmt"
	"strings"

	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
)

// Share is the text a player posts after finishing a game
type Share struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

var categoryEmoji = map[scoring.Category]string{
	scoring.RoyalFlush:    "👑",
	scoring.StraightFlush: "🍍",
	scoring.FourOfAKind:   "4️⃣",
	scoring.FullHouse:     "🏠",
	scoring.Straight:      "🔢",
	scoring.ThreeOfAKind:  "3️⃣",
	scoring.TwoPair:       "👯",
	scoring.OnePair:       "🍐",
}

// Emoji returns the symbol for a scored hand. A flush shows its suit.
func Emoji(result *scoring.ScoreResult) string {
	if result == nil {
		return ""
	}
	if result.Category == scoring.Flush {
		if result.Suit == nil {
			return ""
		}
		return result.Suit.Symbol()
	}
	return categoryEmoji[result.Category]
}

// Generate builds the share text: title, day key, one emoji per scoring hand,
// the total and a link. An empty url leaves the link line out.
func Generate(game entities.GameType, key string, results []*scoring.ScoreResult, url string) Share {
	var emojis strings.Builder
	for _, r := range results {
		emojis.WriteString(Emoji(r))
	}

	lines := []string{
		game.Title(),
		key,
		emojis.String(),
		fmt.Sprintf("Score: %d", scoring.TotalScore(results)),
	}
	if url != "" {
		lines = append(lines, url)
	}

	return Share{
		Title: game.Title(),
		Text:  strings.Join(lines, "\n"),
	}
}

// Summary lists each scoring hand as "Name: Points", skipping hands that scored nothing
func Summary(results []*scoring.ScoreResult) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		if r != nil {
			lines = append(lines, fmt.Sprintf("%s: %d", r.Name, r.Points))
		}
	}
	return lines
}

// Message is the line shown when a game ends
func Message(results []*scoring.ScoreResult) string {
	return fmt.Sprintf("You're finished! You scored %d. Here are the hands you made.", scoring.TotalScore(results))
}
