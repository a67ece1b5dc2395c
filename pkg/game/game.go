package game

import "fmt"

// PlayerID is a seat index inside a single game. Account identifiers
// (user ids) are resolved to seats at the storage boundary.
type PlayerID uint32

// Type discriminates the closed set of supported game engines.
type Type int8

const (
	TypeUnspecified Type = iota
	TypeTicTacToe
	TypeChess
)

func (t Type) String() string {
	switch t {
	case TypeTicTacToe:
		return "tic_tac_toe"
	case TypeChess:
		return "chess"
	default:
		return "unspecified"
	}
}

// ParseType parses a game type discriminator string.
func ParseType(s string) (Type, error) {
	switch s {
	case "tic_tac_toe":
		return TypeTicTacToe, nil
	case "chess":
		return TypeChess, nil
	default:
		return TypeUnspecified, fmt.Errorf("unrecognized game type: %q", s)
	}
}

type StateKind int

const (
	StateTurn StateKind = iota
	StateWin
	StateDraw
)

// State is the game lifecycle variant: Turn(player) while the game is
// live, Win(player) or Draw once it has finished. Finished states are
// terminal; the engines never transition back to Turn.
type State struct {
	Kind   StateKind
	Player PlayerID // valid for StateTurn and StateWin
}

func Turn(p PlayerID) State {
	return State{Kind: StateTurn, Player: p}
}

func Win(p PlayerID) State {
	return State{Kind: StateWin, Player: p}
}

func Draw() State {
	return State{Kind: StateDraw}
}

func (s State) IsFinished() bool {
	return s.Kind != StateTurn
}

func (s State) String() string {
	switch s.Kind {
	case StateTurn:
		return fmt.Sprintf("turn(%d)", s.Player)
	case StateWin:
		return fmt.Sprintf("win(%d)", s.Player)
	case StateDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Occupant describes one occupied cell of a board snapshot. Piece is
// empty for games without piece kinds.
type Occupant struct {
	Owner PlayerID `json:"owner"`
	Piece string   `json:"piece,omitempty"`
}

// Game is the capability set shared by all engines. Update decodes the
// game-specific turn payload, validates the move against the rules and
// either applies it or returns an engine error leaving the state
// untouched. Board returns a row-major snapshot with nil entries for
// empty cells.
type Game interface {
	Update(player PlayerID, turnData []byte) (State, error)
	State() State
	Board() []*Occupant
}
