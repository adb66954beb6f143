package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Game state errors
	ErrGameNotFound     ErrorCode = "GAME_NOT_FOUND"
	ErrGameAlreadyEnded ErrorCode = "GAME_ALREADY_ENDED"
	ErrInvalidState     ErrorCode = "INVALID_STATE"

	// Move errors
	ErrSlotOccupied     ErrorCode = "SLOT_OCCUPIED"
	ErrNoCardDealt      ErrorCode = "NO_CARD_DEALT"
	ErrCardAlreadyDealt ErrorCode = "CARD_ALREADY_DEALT"
	ErrNoCardsLeft      ErrorCode = "NO_CARDS_LEFT"
	ErrNoSelection      ErrorCode = "NO_SELECTION"
	ErrHandIncomplete   ErrorCode = "HAND_INCOMPLETE"

	// Action errors
	ErrInvalidAction   ErrorCode = "INVALID_ACTION"
	ErrInvalidCommand  ErrorCode = "INVALID_COMMAND"
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// System errors
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrNetworkError  ErrorCode = "NETWORK_ERROR"
)

// GameError represents a game-related error
type GameError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GameError) Unwrap() error {
	return e.Err
}

// NewGameError creates a new GameError
func NewGameError(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a GameError
func WrapError(code ErrorCode, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsGameError checks if an error is a GameError and has a specific code
func IsGameError(err error, code ErrorCode) bool {
	var gameErr *GameError
	if err == nil {
		return false
	}
	if ok := As(err, &gameErr); !ok {
		return false
	}
	return gameErr.Code == code
}

// As is a helper function to find a GameError anywhere in an error chain
func As(err error, target **GameError) bool {
	if target == nil || err == nil {
		return false
	}
	return errors.As(err, target)
}

// CodeOf returns the code of the first GameError in err's chain, or an empty code
func CodeOf(err error) ErrorCode {
	var gameErr *GameError
	if As(err, &gameErr) {
		return gameErr.Code
	}
	return ""
}
