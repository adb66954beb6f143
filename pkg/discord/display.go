package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	idiscord "github.com/fadedpez/pokersquares/internal/discord"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/games/doubledeal"
	"github.com/fadedpez/pokersquares/pkg/games/pokersquares"
	"github.com/fadedpez/pokersquares/pkg/services/scoring"
	"github.com/fadedpez/pokersquares/pkg/services/session"
	"github.com/fadedpez/pokersquares/pkg/services/share"
)

const (
	colorPlaying  = 0x2E8B57 // felt green
	colorFinished = 0xFFD700
	emptySlot     = "·"
)

func formatCard(card *entities.Card) string {
	if card == nil {
		return emptySlot
	}
	return card.String()
}

func formatScore(result *scoring.ScoreResult) string {
	if result == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%d)", result.Name, result.Points)
}

// pokerSquaresResponse renders the board as a 5x5 button grid
func pokerSquaresResponse(game *session.PokerSquaresGame) *idiscord.Response {
	state := game.State
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Poker Squares %s", game.Key),
		Color: colorPlaying,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Cards left", Value: fmt.Sprint(len(state.Pile)), Inline: true},
			{Name: "Auto-deal", Value: onOff(state.AutoDeal), Inline: true},
			{Name: "Score", Value: fmt.Sprint(game.Total), Inline: true},
		},
	}

	switch {
	case game.Finished:
		finish(embed, game.Scores, game.Best, game.Share)
	case state.TopCardVisible:
		embed.Description = fmt.Sprintf("Place the %s", formatCard(state.Dealt))
	case state.Placement != nil:
		embed.Description = fmt.Sprintf("Move the %s or use `/pokersquares deal` for the next card", formatCard(state.Dealt))
	default:
		embed.Description = "Use `/pokersquares deal` to turn over a card"
	}

	canPlace := !game.Finished && state.Dealt != nil
	rows := make([]discordgo.MessageComponent, 0, pokersquares.Size)
	for r := 0; r < pokersquares.Size; r++ {
		buttons := make([]discordgo.MessageComponent, 0, pokersquares.Size)
		for c := 0; c < pokersquares.Size; c++ {
			card := state.Board[r][c]
			style := discordgo.SecondaryButton
			switch {
			case state.Placement != nil && state.Placement.Row == r && state.Placement.Col == c:
				style = discordgo.SuccessButton
			case card != nil:
				style = discordgo.PrimaryButton
			}
			buttons = append(buttons, discordgo.Button{
				Label:    formatCard(card),
				Style:    style,
				CustomID: fmt.Sprintf("%s:%d:%d", buttonPlace, r, c),
				Disabled: !canPlace || card != nil,
			})
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}

	return idiscord.NewEphemeralResponse("", rows).WithEmbed(embed)
}

// doubleDealResponse renders both hands as toggle buttons and a row of actions
func doubleDealResponse(game *session.DoubleDealGame) *idiscord.Response {
	state := game.State
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Double Deal %s", game.Key),
		Color: colorPlaying,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Left hand", Value: formatScore(game.Scores[0]), Inline: true},
			{Name: "Right hand", Value: formatScore(game.Scores[1]), Inline: true},
			{Name: "Deals", Value: fmt.Sprintf("%d/%d", state.Deals, doubledeal.MaxDeals), Inline: true},
			{Name: "Piles", Value: fmt.Sprintf("%d | %d", len(state.LeftPile), len(state.RightPile)), Inline: true},
		},
	}

	switch {
	case game.Finished:
		finish(embed, game.Scores, game.Best, game.Share)
	case len(game.Discarded) > 0:
		embed.Description = fmt.Sprintf("Discarded %s", cardList(game.Discarded))
	case state.Deals == 0:
		embed.Description = "Deal to start"
	default:
		embed.Description = "Select cards from one hand to discard, or deal to end the game"
	}

	rows := []discordgo.MessageComponent{
		handRow(entities.SideLeft, state.Left, game.Finished),
		handRow(entities.SideRight, state.Right, game.Finished),
	}

	if game.Finished {
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "New game",
				Style:    discordgo.SuccessButton,
				CustomID: buttonNewDouble,
			},
		}})
	} else {
		selected := state.Left.HasSelection() || state.Right.HasSelection()
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Discard to left pile",
				Style:    discordgo.DangerButton,
				CustomID: fmt.Sprintf("%s:%s", buttonDiscard, entities.SideLeft),
				Disabled: !selected,
			},
			discordgo.Button{
				Label:    "Deal",
				Style:    discordgo.SuccessButton,
				CustomID: buttonDeal,
			},
			discordgo.Button{
				Label:    "Discard to right pile",
				Style:    discordgo.DangerButton,
				CustomID: fmt.Sprintf("%s:%s", buttonDiscard, entities.SideRight),
				Disabled: !selected,
			},
		}})
	}

	return idiscord.NewEphemeralResponse("", rows).WithEmbed(embed)
}

func handRow(side entities.Side, hand doubledeal.Hand, finished bool) discordgo.ActionsRow {
	buttons := make([]discordgo.MessageComponent, 0, doubledeal.HandSize)
	for i, card := range hand.Cards {
		style := discordgo.SecondaryButton
		if hand.Selected[i] {
			style = discordgo.PrimaryButton
		}
		buttons = append(buttons, discordgo.Button{
			Label:    formatCard(card),
			Style:    style,
			CustomID: fmt.Sprintf("%s:%s:%d", buttonSelect, side, i),
			Disabled: finished || !hand.Complete(),
		})
	}
	return discordgo.ActionsRow{Components: buttons}
}

// finish adds the final hands and the share text to a game embed
func finish(embed *discordgo.MessageEmbed, results []*scoring.ScoreResult, best []entities.Card, sh *share.Share) {
	embed.Color = colorFinished
	lines := append([]string{share.Message(results)}, share.Summary(results)...)
	embed.Description = strings.Join(lines, "\n")
	if best != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Best hand",
			Value: fmt.Sprintf("%s (%s)", cardList(best), scoring.Evaluate(best).Name),
		})
	}
	if sh != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Share",
			Value: "```\n" + sh.Text + "\n```",
		})
	}
}

func cardList(cards []entities.Card) string {
	labels := make([]string, len(cards))
	for i, card := range cards {
		labels[i] = card.String()
	}
	return strings.Join(labels, " ")
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
