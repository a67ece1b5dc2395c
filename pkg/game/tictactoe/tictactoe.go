// Package tictactoe implements the tic-tac-toe rule engine on a 3x3
// board for exactly two players.
package tictactoe

import (
	"fmt"

	"github.com/parlorgames/parlor/pkg/board"
	"github.com/parlorgames/parlor/pkg/game"
)

const boardSize = 3

// Player is a seat in a tic-tac-toe game.
type Player struct {
	id game.PlayerID
}

func (p Player) ID() game.PlayerID {
	return p.id
}

// Game holds the live board and turn order. It is not safe for
// concurrent use; callers serialize access through the game worker.
type Game struct {
	board   *board.Grid[board.Cell[game.PlayerID]]
	players *game.Queue[Player]
	state   game.State
}

// NewGame creates a fresh game with seats 0 and 1, seat 0 to move.
func NewGame() *Game {
	return &Game{
		board:   board.NewGrid[board.Cell[game.PlayerID]](boardSize, boardSize),
		players: game.NewQueue([]Player{{id: 0}, {id: 1}}),
		state:   game.Turn(0),
	}
}

func (g *Game) State() game.State {
	return g.state
}

// Update applies a move at the decoded position. The turn payload is a
// single Position. On any error the board and state are unchanged.
func (g *Game) Update(player game.PlayerID, turnData []byte) (game.State, error) {
	if g.state.IsFinished() {
		return g.state, game.ErrGameIsFinished
	}
	current, err := g.players.Current()
	if err != nil {
		return g.state, err
	}
	if current.ID() != player {
		return g.state, &game.NotYourTurnError{Expected: current.ID(), Found: player}
	}
	pos, err := game.DecodePosition(turnData)
	if err != nil {
		return g.state, err
	}
	if !g.board.Contains(pos) {
		return g.state, &game.TurnDataError{Reason: fmt.Sprintf("position %s is outside the board", pos)}
	}
	if !g.board.At(pos).IsEmpty() {
		return g.state, &game.CellIsOccupiedError{Row: pos.Row, Col: pos.Col}
	}

	g.board.Set(pos, board.NewCell(player))

	switch {
	case g.hasWon(player):
		g.state = game.Win(player)
	case g.isFull():
		g.state = game.Draw()
	default:
		next, err := g.players.Advance()
		if err != nil {
			return g.state, err
		}
		g.state = game.Turn(next.ID())
	}
	return g.state, nil
}

// Board returns a row-major snapshot, nil for empty cells.
func (g *Game) Board() []*game.Occupant {
	snapshot := make([]*game.Occupant, 0, boardSize*boardSize)
	g.board.Each(func(_ board.Index, cell board.Cell[game.PlayerID]) bool {
		if owner, ok := cell.Get(); ok {
			snapshot = append(snapshot, &game.Occupant{Owner: owner})
		} else {
			snapshot = append(snapshot, nil)
		}
		return true
	})
	return snapshot
}

// hasWon checks the three rows, three columns and two diagonals.
func (g *Game) hasWon(player game.PlayerID) bool {
	for row := 0; row < boardSize; row++ {
		if g.ownsLine(player, g.board.RightFrom(board.NewIndex(row, 0))) {
			return true
		}
	}
	for col := 0; col < boardSize; col++ {
		if g.ownsLine(player, g.board.DownFrom(board.NewIndex(0, col))) {
			return true
		}
	}
	if g.ownsLine(player, g.board.DownRightFrom(board.NewIndex(0, 0))) {
		return true
	}
	return g.ownsLine(player, g.board.DownLeftFrom(board.NewIndex(0, boardSize-1)))
}

func (g *Game) ownsLine(player game.PlayerID, c *board.Cursor[board.Cell[game.PlayerID]]) bool {
	for c.Next() {
		owner, ok := c.Value().Get()
		if !ok || owner != player {
			return false
		}
	}
	return true
}

func (g *Game) isFull() bool {
	full := true
	g.board.Each(func(_ board.Index, cell board.Cell[game.PlayerID]) bool {
		if cell.IsEmpty() {
			full = false
			return false
		}
		return true
	})
	return full
}
