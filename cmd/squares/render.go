package main

import (
	"fmt"
	"strings"

	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/games/doubledeal"
	"github.com/fadedpez/pokersquares/pkg/games/pokersquares"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
	"github.com/fadedpez/pokersquares/pkg/services/session"
	"github.com/fadedpez/pokersquares/pkg/services/share"
	"github.com/pterm/pterm"
)

func cardText(card *entities.Card) string {
	if card == nil {
		return pterm.Gray("··")
	}
	if card.Suit.IsRed() {
		return pterm.LightRed(card.String())
	}
	return pterm.LightWhite(card.String())
}

func scoreText(result *scoring.ScoreResult) string {
	if result == nil {
		return ""
	}
	return fmt.Sprintf("%s %d", share.Emoji(result), result.Points)
}

// renderPokerSquares draws the board with row scores on the right and column
// scores underneath
func renderPokerSquares(game *session.PokerSquaresGame) (string, error) {
	state := game.State
	data := pterm.TableData{{"", "1", "2", "3", "4", "5", ""}}
	for r := 0; r < pokersquares.Size; r++ {
		row := []string{fmt.Sprint(r + 1)}
		for c := 0; c < pokersquares.Size; c++ {
			text := cardText(state.Board[r][c])
			if state.Placement != nil && state.Placement.Row == r && state.Placement.Col == c {
				text = pterm.BgGreen.Sprint(text)
			}
			row = append(row, text)
		}
		row = append(row, scoreText(game.Scores[r]))
		data = append(data, row)
	}

	columns := []string{""}
	for c := 0; c < pokersquares.Size; c++ {
		columns = append(columns, scoreText(game.Scores[pokersquares.Size+c]))
	}
	data = append(data, append(columns, pterm.Bold.Sprint(game.Total)))

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return "", err
	}

	status := fmt.Sprintf("Cards left: %d   Auto-deal: %t", len(state.Pile), state.AutoDeal)
	if state.Dealt != nil && !game.Finished {
		status = fmt.Sprintf("Card: %s   %s", cardText(state.Dealt), status)
	}
	return pterm.DefaultBox.
		WithTitle(fmt.Sprintf("Poker Squares %s", game.Key)).
		WithTitleTopCenter().
		Sprint(table + "\n" + status), nil
}

// renderDoubleDeal draws both hands with selected cards highlighted
func renderDoubleDeal(game *session.DoubleDealGame) string {
	state := game.State
	hand := func(name string, h doubledeal.Hand, result *scoring.ScoreResult, pile int) string {
		cards := make([]string, 0, doubledeal.HandSize)
		for i, card := range h.Cards {
			text := fmt.Sprintf("%d:%s", i+1, cardText(card))
			if h.Selected[i] {
				text = pterm.BgCyan.Sprint(text)
			}
			cards = append(cards, text)
		}
		return pterm.DefaultBox.
			WithTitle(fmt.Sprintf("%s (pile %d)", name, pile)).
			Sprint(strings.Join(cards, "  ") + "\n" + scoreText(result))
	}

	return pterm.DefaultBox.
		WithTitle(fmt.Sprintf("Double Deal   deals %d/%d   score %d", state.Deals, doubledeal.MaxDeals, game.Total)).
		WithTitleTopCenter().
		Sprint(hand("Left", state.Left, game.Scores[0], len(state.LeftPile)) + "\n" +
			hand("Right", state.Right, game.Scores[1], len(state.RightPile)))
}

func renderFinish(results []*scoring.ScoreResult, best []entities.Card, sh *share.Share) string {
	lines := append([]string{share.Message(results)}, share.Summary(results)...)
	if best != nil {
		cards := make([]string, len(best))
		for i := range best {
			cards[i] = cardText(&best[i])
		}
		lines = append(lines, "Best hand: "+strings.Join(cards, " ")+" ("+scoring.Evaluate(best).Name+")")
	}
	if sh != nil {
		lines = append(lines, "", sh.Text)
	}
	return strings.Join(lines, "\n")
}
