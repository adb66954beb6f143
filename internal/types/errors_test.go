package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (s *ErrorTestSuite) TestNewGameError() {
	// Setup
	code := ErrGameNotFound
	message := "no poker squares game for today"

	// Execute
	err := NewGameError(code, message)

	// Assert
	s.Equal(code, err.Code, "Error code should match")
	s.Equal(message, err.Message, "Error message should match")
	s.Nil(err.Err, "Underlying error should be nil")
}

func (s *ErrorTestSuite) TestWrapError() {
	// Setup
	code := ErrInternalError
	message := "database error"
	underlying := errors.New("connection failed")

	// Execute
	err := WrapError(code, message, underlying)

	// Assert
	s.Equal(code, err.Code, "Error code should match")
	s.Equal(message, err.Message, "Error message should match")
	s.Equal(underlying, err.Err, "Underlying error should match")
}

func (s *ErrorTestSuite) TestErrorString() {
	testCases := []struct {
		name     string
		err      *GameError
		expected string
	}{
		{
			name:     "Simple error",
			err:      NewGameError(ErrGameNotFound, "no poker squares game for today"),
			expected: "GAME_NOT_FOUND: no poker squares game for today",
		},
		{
			name:     "Wrapped error",
			err:      WrapError(ErrInternalError, "database error", errors.New("connection failed")),
			expected: "INTERNAL_ERROR: database error (connection failed)",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.err.Error(), "Error string should match expected format")
		})
	}
}

func (s *ErrorTestSuite) TestIsGameError() {
	// Setup
	gameErr := NewGameError(ErrGameNotFound, "no poker squares game for today")
	regularErr := errors.New("regular error")

	// Test cases
	testCases := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{
			name:     "Matching game error",
			err:      gameErr,
			code:     ErrGameNotFound,
			expected: true,
		},
		{
			name:     "Non-matching game error",
			err:      gameErr,
			code:     ErrInternalError,
			expected: false,
		},
		{
			name:     "Regular error",
			err:      regularErr,
			code:     ErrGameNotFound,
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			code:     ErrGameNotFound,
			expected: false,
		},
	}

	// Execute and assert
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result := IsGameError(tc.err, tc.code)
			s.Equal(tc.expected, result, "IsGameError result should match expected value")
		})
	}
}

func (s *ErrorTestSuite) TestAs() {
	// Setup
	gameErr := NewGameError(ErrGameNotFound, "no poker squares game for today")
	regularErr := errors.New("regular error")

	// Test cases
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Game error",
			err:      gameErr,
			expected: true,
		},
		{
			name:     "Regular error",
			err:      regularErr,
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	// Execute and assert
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			var target *GameError
			result := As(tc.err, &target)
			s.Equal(tc.expected, result, "As result should match expected value")
			if tc.expected {
				s.Equal(gameErr, target, "Target should be set to the game error")
			}
		})
	}
}

func (s *ErrorTestSuite) TestAsWrappedChain() {
	// Setup
	gameErr := NewGameError(ErrSlotOccupied, "that square already holds a card")
	wrapped := fmt.Errorf("placing card: %w", gameErr)

	// Execute
	var target *GameError
	result := As(wrapped, &target)

	// Assert
	s.True(result, "As should find a GameError behind fmt wrapping")
	s.Equal(gameErr, target)
	s.True(IsGameError(wrapped, ErrSlotOccupied))
}

func (s *ErrorTestSuite) TestCodeOf() {
	testCases := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{
			name:     "Direct game error",
			err:      NewGameError(ErrNoCardDealt, "deal a card first"),
			expected: ErrNoCardDealt,
		},
		{
			name:     "Wrapped game error",
			err:      fmt.Errorf("outer: %w", WrapError(ErrDatabaseError, "save failed", errors.New("disk full"))),
			expected: ErrDatabaseError,
		},
		{
			name:     "Plain error",
			err:      errors.New("boom"),
			expected: "",
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, CodeOf(tc.err))
		})
	}
}
