package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	idiscord "github.com/fadedpez/pokersquares/internal/discord"
	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/services/session"
)

// Slash command names
const (
	CommandPokerSquares = "pokersquares"
	CommandDoubleDeal   = "doubledeal"
)

// Button custom ids. Arguments follow the prefix separated by ':'.
const (
	buttonPlace     = "ps_place"   // ps_place:<row>:<col>
	buttonSelect    = "dd_select"  // dd_select:<side>:<index>
	buttonDiscard   = "dd_discard" // dd_discard:<pile>
	buttonDeal      = "dd_deal"
	buttonNewDouble = "dd_new"
)

func (b *Bot) handleCommand(ctx context.Context, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	playerID := userID(i)
	b.logger.Debug("Received application command %s from %s", data.Name, playerID)

	switch data.Name {
	case CommandPokerSquares:
		game, err := b.runPokerSquaresCommand(ctx, playerID, data.Options)
		if err != nil {
			return err
		}
		return idiscord.SendResponse(b.session, i, pokerSquaresResponse(game))

	case CommandDoubleDeal:
		game, err := b.games.StartDoubleDeal(ctx, playerID)
		if err != nil {
			return err
		}
		return idiscord.SendResponse(b.session, i, doubleDealResponse(game))

	default:
		resp, handled, err := b.stats.Handle(ctx, playerID, data)
		if err != nil {
			return err
		}
		if !handled {
			return types.NewGameError(types.ErrInvalidCommand, fmt.Sprintf("unknown command /%s", data.Name))
		}
		return idiscord.SendResponse(b.session, i, resp)
	}
}

func (b *Bot) runPokerSquaresCommand(ctx context.Context, playerID string, options []*discordgo.ApplicationCommandInteractionDataOption) (*session.PokerSquaresGame, error) {
	sub := "play"
	if len(options) > 0 {
		sub = options[0].Name
	}

	switch sub {
	case "play":
		return b.games.StartPokerSquares(ctx, playerID)
	case "deal":
		return b.games.DealPokerSquares(ctx, playerID)
	case "autodeal":
		return b.games.ToggleAutoDeal(ctx, playerID)
	default:
		return nil, types.NewGameError(types.ErrInvalidCommand, fmt.Sprintf("unknown subcommand %q", sub))
	}
}

func (b *Bot) handleComponent(ctx context.Context, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID
	playerID := userID(i)
	b.logger.Debug("Received message component %s from %s", customID, playerID)

	name, args := parseCustomID(customID)
	switch name {
	case buttonPlace:
		if len(args) != 2 {
			return badButton(customID)
		}
		row, rowErr := strconv.Atoi(args[0])
		col, colErr := strconv.Atoi(args[1])
		if rowErr != nil || colErr != nil {
			return badButton(customID)
		}
		game, err := b.games.PlacePokerSquares(ctx, playerID, row, col)
		if err != nil {
			return err
		}
		return idiscord.UpdateResponse(b.session, i, pokerSquaresResponse(game))

	case buttonSelect:
		if len(args) != 2 {
			return badButton(customID)
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return badButton(customID)
		}
		game, err := b.games.SelectDoubleDeal(ctx, playerID, entities.Side(args[0]), index)
		if err != nil {
			return err
		}
		return idiscord.UpdateResponse(b.session, i, doubleDealResponse(game))

	case buttonDiscard:
		if len(args) != 1 {
			return badButton(customID)
		}
		game, err := b.games.DiscardDoubleDeal(ctx, playerID, entities.Side(args[0]))
		if err != nil {
			return err
		}
		return idiscord.UpdateResponse(b.session, i, doubleDealResponse(game))

	case buttonDeal:
		game, err := b.games.DealDoubleDeal(ctx, playerID)
		if err != nil {
			return err
		}
		return idiscord.UpdateResponse(b.session, i, doubleDealResponse(game))

	case buttonNewDouble:
		game, err := b.games.StartDoubleDeal(ctx, playerID)
		if err != nil {
			return err
		}
		return idiscord.UpdateResponse(b.session, i, doubleDealResponse(game))

	default:
		return badButton(customID)
	}
}

func parseCustomID(customID string) (string, []string) {
	parts := strings.Split(customID, ":")
	return parts[0], parts[1:]
}

func badButton(customID string) error {
	return types.NewGameError(types.ErrInvalidAction, fmt.Sprintf("unknown button %q", customID))
}
