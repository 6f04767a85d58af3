package board

import (
	"errors"
	"fmt"
)

// Position text errors.
var (
	ErrFieldCount = errors.New("expected 6 fields")
	ErrRank       = errors.New("rank does not describe 8 squares")
	ErrPieceChar  = errors.New("unknown piece character")
	ErrSide       = errors.New("side to move must be w or b")
	ErrCastling   = errors.New("castling field must be - or a subset of KQkq")
	ErrSquare     = errors.New("not a square")
	ErrNumber     = errors.New("not a non-negative integer")
)

// Move text errors.
var (
	ErrMoveLength = errors.New("move must be 4 or 5 characters")
	ErrCoordinate = errors.New("coordinate out of range")
	ErrPromotion  = errors.New("unknown promotion letter")
)

// ParseError reports malformed position text.
type ParseError struct {
	Field string // which of the six fields failed
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid FEN %s %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError reports malformed move text.
type FormatError struct {
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid move %q: %v", e.Input, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
