package lobby

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorgames/parlor/pkg/board"
	"github.com/parlorgames/parlor/pkg/game"
)

func TestNewRejectsUnknownGameType(t *testing.T) {
	_, err := New(game.TypeUnspecified, []uint64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidGameType)
}

func TestPlayerSeatFollowsSeatingOrder(t *testing.T) {
	l, err := New(game.TypeTicTacToe, []uint64{10, 20})
	require.NoError(t, err)

	seat, ok := l.PlayerSeat(10)
	require.True(t, ok)
	assert.Equal(t, game.PlayerID(0), seat)

	seat, ok = l.PlayerSeat(20)
	require.True(t, ok)
	assert.Equal(t, game.PlayerID(1), seat)

	_, ok = l.PlayerSeat(30)
	assert.False(t, ok)
}

func TestUpdateFansOutToAllConnections(t *testing.T) {
	l, err := New(game.TypeTicTacToe, []uint64{10, 20})
	require.NoError(t, err)

	first := NewConnection(10)
	second := NewConnection(20)
	l.AddConnection(first)
	l.AddConnection(second)

	data := game.EncodePosition(board.NewIndex(1, 1))
	state, err := l.Update(10, data)
	require.NoError(t, err)
	assert.Equal(t, game.Turn(1), state)

	for _, conn := range []*Connection{first, second} {
		event := <-conn.Events()
		require.NotNil(t, event.Move)
		assert.Equal(t, game.PlayerID(0), event.Move.Player)
		assert.Equal(t, data, event.Move.Data)
	}
}

func TestUpdateByForeignUser(t *testing.T) {
	l, err := New(game.TypeTicTacToe, []uint64{10, 20})
	require.NoError(t, err)

	_, err = l.Update(99, game.EncodePosition(board.NewIndex(0, 0)))
	assert.ErrorIs(t, err, ErrForeignGame)
}

func TestUpdateErrorDoesNotFanOut(t *testing.T) {
	l, err := New(game.TypeTicTacToe, []uint64{10, 20})
	require.NoError(t, err)
	conn := NewConnection(20)
	l.AddConnection(conn)

	// player 20 holds seat 1, it is not their turn
	_, err = l.Update(20, game.EncodePosition(board.NewIndex(0, 0)))
	var notYourTurn *game.NotYourTurnError
	require.ErrorAs(t, err, &notYourTurn)

	select {
	case event := <-conn.Events():
		t.Fatalf("unexpected event: %+v", event)
	default:
	}
}

func TestNotifyErrorTargetsSingleUser(t *testing.T) {
	l, err := New(game.TypeTicTacToe, []uint64{10, 20})
	require.NoError(t, err)
	first := NewConnection(10)
	second := NewConnection(20)
	l.AddConnection(first)
	l.AddConnection(second)

	l.NotifyError(20, ErrForeignGame)

	event := <-second.Events()
	assert.ErrorIs(t, event.Err, ErrForeignGame)
	select {
	case event := <-first.Events():
		t.Fatalf("unexpected event: %+v", event)
	default:
	}
}

func TestFinishedGameClosesConnections(t *testing.T) {
	l, err := New(game.TypeTicTacToe, []uint64{10, 20})
	require.NoError(t, err)
	conn := NewConnection(10)
	l.AddConnection(conn)

	moves := []struct {
		user uint64
		pos  board.Index
	}{
		{10, board.NewIndex(1, 0)},
		{20, board.NewIndex(0, 0)},
		{10, board.NewIndex(1, 1)},
		{20, board.NewIndex(0, 1)},
		{10, board.NewIndex(1, 2)},
	}
	var state game.State
	for _, move := range moves {
		state, err = l.Update(move.user, game.EncodePosition(move.pos))
		require.NoError(t, err)
	}
	require.Equal(t, game.Win(0), state)

	// drain the five broadcasts, then expect the closed channel
	for i := 0; i < len(moves); i++ {
		event, ok := <-conn.Events()
		require.True(t, ok)
		require.NotNil(t, event.Move)
	}
	_, ok := <-conn.Events()
	assert.False(t, ok, "connection must be closed after the final fan-out")

	// disconnected users are simply gone
	assert.Nil(t, l.Disconnect(10))
}

func TestCloseConnectionsDeliversReason(t *testing.T) {
	l, err := New(game.TypeTicTacToe, []uint64{10, 20})
	require.NoError(t, err)
	first := NewConnection(10)
	second := NewConnection(20)
	l.AddConnection(first)
	l.AddConnection(second)

	reason := errors.New("server is stopping")
	l.CloseConnections(reason)

	for _, conn := range []*Connection{first, second} {
		event, ok := <-conn.Events()
		require.True(t, ok)
		assert.ErrorIs(t, event.Err, reason)
		_, ok = <-conn.Events()
		assert.False(t, ok, "connection must be closed after the reason")
	}
	assert.Nil(t, l.Disconnect(10))
	assert.Nil(t, l.Disconnect(20))
}

func TestDisconnectRemovesConnection(t *testing.T) {
	l, err := New(game.TypeChess, []uint64{1, 2})
	require.NoError(t, err)
	conn := NewConnection(1)
	l.AddConnection(conn)

	removed := l.Disconnect(1)
	assert.Same(t, conn, removed)
	assert.Nil(t, l.Disconnect(1))
}
