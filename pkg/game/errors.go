package game

import (
	"errors"
	"fmt"
)

var (
	// ErrGameIsFinished rejects turns against a finished game.
	ErrGameIsFinished = errors.New("can't make turn on a finished game")
	// ErrPlayerNotFound reports a seat lookup miss inside an engine.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrPlayerPoolCorrupted indicates an empty or inconsistent player
	// queue. It is a construction bug, not a recoverable condition.
	ErrPlayerPoolCorrupted = errors.New("failed to switch players in the pool")
)

type CellIsEmptyError struct {
	Row int
	Col int
}

func (e *CellIsEmptyError) Error() string {
	return fmt.Sprintf("cell (%d, %d) is empty", e.Row, e.Col)
}

type CellIsOccupiedError struct {
	Row int
	Col int
}

func (e *CellIsOccupiedError) Error() string {
	return fmt.Sprintf("cell (%d, %d) is occupied", e.Row, e.Col)
}

type NotYourTurnError struct {
	Expected PlayerID
	Found    PlayerID
}

func (e *NotYourTurnError) Error() string {
	return fmt.Sprintf("other player's turn (expected: %d, found: %d)", e.Expected, e.Found)
}

type InvalidMoveError struct {
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("failed to make move: %s", e.Reason)
}

type UnauthorizedMoveError struct {
	Expected PlayerID
	Found    PlayerID
}

func (e *UnauthorizedMoveError) Error() string {
	return fmt.Sprintf("player %d is unable to make this move, player %d is expected", e.Found, e.Expected)
}

// TurnDataError reports malformed or out-of-range turn payload bytes.
type TurnDataError struct {
	Reason string
}

func (e *TurnDataError) Error() string {
	return fmt.Sprintf("invalid turn data: %s", e.Reason)
}

// IsRuleViolation reports whether err is an ordinary rule rejection, as
// opposed to internal corruption. Rule violations map to bad-input
// status codes at the RPC boundary.
func IsRuleViolation(err error) bool {
	var (
		cellEmpty    *CellIsEmptyError
		cellOccupied *CellIsOccupiedError
		notYourTurn  *NotYourTurnError
		invalidMove  *InvalidMoveError
		unauthorized *UnauthorizedMoveError
		turnData     *TurnDataError
	)
	switch {
	case errors.Is(err, ErrGameIsFinished),
		errors.As(err, &cellEmpty),
		errors.As(err, &cellOccupied),
		errors.As(err, &notYourTurn),
		errors.As(err, &invalidMove),
		errors.As(err, &unauthorized),
		errors.As(err, &turnData):
		return true
	}
	return false
}
