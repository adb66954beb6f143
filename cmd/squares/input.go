package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fadedpez/pokersquares/pkg/entities"
	"github.com/fadedpez/pokersquares/pkg/games/doubledeal"
	"github.com/fadedpez/pokersquares/pkg/games/pokersquares"
)

type actionKind int

const (
	actQuit actionKind = iota
	actDeal
	actAutoDeal
	actPlace
	actSelect
	actDiscard
	actNewGame
)

// action is one parsed line of player input. Board and hand positions are
// zero based here and one based on screen.
type action struct {
	kind  actionKind
	row   int
	col   int
	side  entities.Side
	index int
}

// parsePokerSquares reads "d", "a", "q" or a square such as "2 5" or "2,5"
func parsePokerSquares(line string) (action, error) {
	line = strings.ToLower(strings.TrimSpace(line))
	switch line {
	case "q", "quit":
		return action{kind: actQuit}, nil
	case "d", "deal":
		return action{kind: actDeal}, nil
	case "a", "auto":
		return action{kind: actAutoDeal}, nil
	}

	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 2 {
		return action{}, fmt.Errorf("enter a square as ROW COL, d to deal, a for auto-deal or q to quit")
	}
	row, err := position(fields[0], pokersquares.Size)
	if err != nil {
		return action{}, err
	}
	col, err := position(fields[1], pokersquares.Size)
	if err != nil {
		return action{}, err
	}
	return action{kind: actPlace, row: row, col: col}, nil
}

// parseDoubleDeal reads "d", "n", "q", a card such as "l3" or "r5", or a
// discard target "xl" or "xr"
func parseDoubleDeal(line string) (action, error) {
	line = strings.ToLower(strings.TrimSpace(line))
	switch line {
	case "q", "quit":
		return action{kind: actQuit}, nil
	case "d", "deal":
		return action{kind: actDeal}, nil
	case "n", "new":
		return action{kind: actNewGame}, nil
	case "xl":
		return action{kind: actDiscard, side: entities.SideLeft}, nil
	case "xr":
		return action{kind: actDiscard, side: entities.SideRight}, nil
	}

	if len(line) >= 2 {
		var side entities.Side
		switch line[0] {
		case 'l':
			side = entities.SideLeft
		case 'r':
			side = entities.SideRight
		}
		if side != "" {
			index, err := position(strings.TrimSpace(line[1:]), doubledeal.HandSize)
			if err != nil {
				return action{}, err
			}
			return action{kind: actSelect, side: side, index: index}, nil
		}
	}
	return action{}, fmt.Errorf("enter l1-l5 or r1-r5 to select, xl or xr to discard, d to deal or q to quit")
}

func position(s string, size int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > size {
		return 0, fmt.Errorf("%q is not a number from 1 to %d", s, size)
	}
	return n - 1, nil
}
