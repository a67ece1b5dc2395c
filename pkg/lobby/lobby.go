// Package lobby ties a live game to the players allowed to mutate it
// and the session connections observing it.
package lobby

import (
	"errors"

	"github.com/parlorgames/parlor/pkg/game"
	"github.com/parlorgames/parlor/pkg/game/chess"
	"github.com/parlorgames/parlor/pkg/game/tictactoe"
)

var (
	// ErrInvalidGameType rejects unrecognized game type discriminators.
	ErrInvalidGameType = errors.New("unrecognized game type")
	// ErrForeignGame rejects users that are not players of the game.
	ErrForeignGame = errors.New("player does not belong to this game")
)

// Lobby is not safe for concurrent use on its own; the storage layer
// serializes access to it.
type Lobby struct {
	players     []uint64
	game        game.Game
	connections []*Connection
}

// New creates a lobby with a fresh game of the given type. Seat order
// follows the order of players.
func New(gameType game.Type, players []uint64) (*Lobby, error) {
	var g game.Game
	switch gameType {
	case game.TypeTicTacToe:
		g = tictactoe.NewGame()
	case game.TypeChess:
		g = chess.NewGame()
	default:
		return nil, ErrInvalidGameType
	}
	return &Lobby{
		players: append([]uint64(nil), players...),
		game:    g,
	}, nil
}

func (l *Lobby) Game() game.Game {
	return l.game
}

func (l *Lobby) Players() []uint64 {
	return l.players
}

// PlayerSeat resolves a user id to the seat index inside the game.
func (l *Lobby) PlayerSeat(user uint64) (game.PlayerID, bool) {
	for i, id := range l.players {
		if id == user {
			return game.PlayerID(i), true
		}
	}
	return 0, false
}

func (l *Lobby) AddConnection(conn *Connection) {
	l.connections = append(l.connections, conn)
}

// Disconnect removes and returns the user's connection, nil if the
// user has none.
func (l *Lobby) Disconnect(user uint64) *Connection {
	for i, conn := range l.connections {
		if conn.User() == user {
			l.connections = append(l.connections[:i], l.connections[i+1:]...)
			return conn
		}
	}
	return nil
}

// NotifyError delivers an error to the user's connection, if any.
// Other connections are never told about it.
func (l *Lobby) NotifyError(user uint64, err error) {
	for _, conn := range l.connections {
		if conn.User() == user {
			conn.NotifyError(err)
			return
		}
	}
}

// CloseConnections tells every live connection why the stream is
// ending (unless reason is nil) and closes it. The game itself is
// untouched.
func (l *Lobby) CloseConnections(reason error) {
	for _, conn := range l.connections {
		if reason != nil {
			conn.NotifyError(reason)
		}
		conn.Close()
	}
	l.connections = nil
}

// Update resolves the user to a seat, applies the move and fans the
// raw turn bytes out to every connection, the mover's included. Once
// the game finishes the connections are closed after the final
// fan-out.
func (l *Lobby) Update(user uint64, data []byte) (game.State, error) {
	seat, ok := l.PlayerSeat(user)
	if !ok {
		return l.game.State(), ErrForeignGame
	}
	state, err := l.game.Update(seat, data)
	if err != nil {
		return state, err
	}
	for _, conn := range l.connections {
		conn.Notify(seat, data)
	}
	if state.IsFinished() {
		l.CloseConnections(nil)
	}
	return state, nil
}
