package entities

import "fmt"

// GameType identifies one of the solitaire games
type GameType string

const (
	GamePokerSquares GameType = "poker-squares"
	GameDoubleDeal   GameType = "double-deal"
)

// GameTypes lists every supported game
var GameTypes = []GameType{GamePokerSquares, GameDoubleDeal}

// Title returns the display title of the game
func (g GameType) Title() string {
	switch g {
	case GamePokerSquares:
		return "Poker Squares"
	case GameDoubleDeal:
		return "Double Deal"
	default:
		return string(g)
	}
}

// ParseGameType validates a game identifier
func ParseGameType(s string) (GameType, error) {
	for _, g := range GameTypes {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown game type %q", s)
}

// Side picks one of the two Double Deal hands
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Position is a board coordinate in Poker Squares
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid reports whether the side is left or right
func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight
}

// Other returns the opposite side
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}
