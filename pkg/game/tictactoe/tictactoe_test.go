package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorgames/parlor/pkg/board"
	"github.com/parlorgames/parlor/pkg/game"
)

func mustMove(t *testing.T, g *Game, player game.PlayerID, row, col int) game.State {
	t.Helper()
	state, err := g.Update(player, game.EncodePosition(board.NewIndex(row, col)))
	require.NoError(t, err, "move (%d, %d) by player %d", row, col, player)
	return state
}

func TestNewGame(t *testing.T) {
	g := NewGame()

	assert.Equal(t, game.Turn(0), g.State())
	for _, occupant := range g.Board() {
		assert.Nil(t, occupant)
	}
}

func TestDiagonalWin(t *testing.T) {
	g := NewGame()

	assert.Equal(t, game.Turn(1), mustMove(t, g, 0, 1, 1))
	assert.Equal(t, game.Turn(0), mustMove(t, g, 1, 1, 0))
	assert.Equal(t, game.Turn(1), mustMove(t, g, 0, 0, 2))
	assert.Equal(t, game.Turn(0), mustMove(t, g, 1, 2, 0))
	assert.Equal(t, game.Turn(1), mustMove(t, g, 0, 0, 0))
	assert.Equal(t, game.Turn(0), mustMove(t, g, 1, 0, 1))
	assert.Equal(t, game.Win(0), mustMove(t, g, 0, 2, 2))

	owners := make([]*game.PlayerID, 0, 9)
	for _, occupant := range g.Board() {
		if occupant == nil {
			owners = append(owners, nil)
		} else {
			owner := occupant.Owner
			owners = append(owners, &owner)
		}
	}
	p0, p1 := game.PlayerID(0), game.PlayerID(1)
	assert.Equal(t, []*game.PlayerID{&p0, &p1, &p0, &p1, &p0, nil, &p1, nil, &p0}, owners)
}

func TestRowAndColumnWins(t *testing.T) {
	t.Run("row", func(t *testing.T) {
		g := NewGame()
		mustMove(t, g, 0, 1, 0)
		mustMove(t, g, 1, 0, 0)
		mustMove(t, g, 0, 1, 1)
		mustMove(t, g, 1, 0, 1)
		assert.Equal(t, game.Win(0), mustMove(t, g, 0, 1, 2))
	})
	t.Run("column", func(t *testing.T) {
		g := NewGame()
		mustMove(t, g, 0, 0, 0)
		mustMove(t, g, 1, 0, 1)
		mustMove(t, g, 0, 1, 0)
		mustMove(t, g, 1, 1, 1)
		assert.Equal(t, game.Win(0), mustMove(t, g, 0, 2, 0))
	})
}

func TestDraw(t *testing.T) {
	g := NewGame()

	mustMove(t, g, 0, 0, 0)
	mustMove(t, g, 1, 0, 1)
	mustMove(t, g, 0, 0, 2)
	mustMove(t, g, 1, 1, 1)
	mustMove(t, g, 0, 1, 0)
	mustMove(t, g, 1, 1, 2)
	mustMove(t, g, 0, 2, 1)
	mustMove(t, g, 1, 2, 0)
	assert.Equal(t, game.Draw(), mustMove(t, g, 0, 2, 2))
}

func TestRejections(t *testing.T) {
	g := NewGame()
	mustMove(t, g, 0, 1, 1)

	t.Run("not your turn", func(t *testing.T) {
		_, err := g.Update(0, game.EncodePosition(board.NewIndex(0, 0)))
		var notYourTurn *game.NotYourTurnError
		require.ErrorAs(t, err, &notYourTurn)
		assert.Equal(t, game.PlayerID(1), notYourTurn.Expected)
	})

	t.Run("occupied cell", func(t *testing.T) {
		_, err := g.Update(1, game.EncodePosition(board.NewIndex(1, 1)))
		var occupied *game.CellIsOccupiedError
		require.ErrorAs(t, err, &occupied)
	})

	t.Run("out of bounds", func(t *testing.T) {
		_, err := g.Update(1, game.EncodePosition(board.NewIndex(3, 0)))
		var turnData *game.TurnDataError
		require.ErrorAs(t, err, &turnData)
	})

	t.Run("state unchanged", func(t *testing.T) {
		assert.Equal(t, game.Turn(1), g.State())
	})
}

func TestFinishedGameRejectsMoves(t *testing.T) {
	g := NewGame()
	mustMove(t, g, 0, 1, 0)
	mustMove(t, g, 1, 0, 0)
	mustMove(t, g, 0, 1, 1)
	mustMove(t, g, 1, 0, 1)
	require.Equal(t, game.Win(0), mustMove(t, g, 0, 1, 2))

	_, err := g.Update(1, game.EncodePosition(board.NewIndex(2, 2)))
	assert.ErrorIs(t, err, game.ErrGameIsFinished)
}
