// Package storage holds the live games, partitioned by game type and
// keyed by game id. All access is serialized through one mutex; the
// lobbies themselves carry no locking.
package storage

import (
	"errors"
	"sync"

	"github.com/parlorgames/parlor/pkg/game"
	"github.com/parlorgames/parlor/pkg/lobby"
)

var (
	// ErrDuplicateGame rejects game creation while the creator already
	// has an active game of that type.
	ErrDuplicateGame = errors.New("this player already has an active game")
	// ErrNoSuchGame signals a lookup for a game id with no live game.
	ErrNoSuchGame = errors.New("no such game")
	// ErrDeleteActiveGame rejects deletion of a game that has not
	// finished yet.
	ErrDeleteActiveGame = errors.New("game must be finished before deletion")
	// ErrInvalidPlayers rejects a player list that is not exactly two
	// distinct users including the creator.
	ErrInvalidPlayers = errors.New("a game needs exactly two distinct players including its creator")
)

// StateInfo is the JSON shape of a game lifecycle state.
type StateInfo struct {
	Kind   string         `json:"kind"`
	Player *game.PlayerID `json:"player,omitempty"`
}

// StateInfoFrom converts an engine state to its JSON shape.
func StateInfoFrom(s game.State) StateInfo {
	switch s.Kind {
	case game.StateWin:
		player := s.Player
		return StateInfo{Kind: "win", Player: &player}
	case game.StateDraw:
		return StateInfo{Kind: "draw"}
	default:
		player := s.Player
		return StateInfo{Kind: "turn", Player: &player}
	}
}

// GameInfo is a snapshot of one live game. Board is row-major with nil
// entries for empty cells and is populated only for single-game reads.
type GameInfo struct {
	GameID   uint64           `json:"game_id"`
	GameType string           `json:"game_type"`
	Players  []uint64         `json:"player_ids"`
	State    StateInfo        `json:"state"`
	Board    []*game.Occupant `json:"board,omitempty"`
}

type Storage struct {
	mu         sync.Mutex
	partitions map[game.Type]map[uint64]*lobby.Lobby
}

func NewStorage() *Storage {
	return &Storage{
		partitions: map[game.Type]map[uint64]*lobby.Lobby{
			game.TypeTicTacToe: {},
			game.TypeChess:     {},
		},
	}
}

// lobbyFor resolves a partition and game id while s.mu is held.
func (s *Storage) lobbyFor(gameType game.Type, gameID uint64) (*lobby.Lobby, error) {
	partition, ok := s.partitions[gameType]
	if !ok {
		return nil, lobby.ErrInvalidGameType
	}
	l, ok := partition[gameID]
	if !ok {
		return nil, ErrNoSuchGame
	}
	return l, nil
}

func (s *Storage) info(gameType game.Type, gameID uint64, l *lobby.Lobby, withBoard bool) *GameInfo {
	info := &GameInfo{
		GameID:   gameID,
		GameType: gameType.String(),
		Players:  append([]uint64(nil), l.Players()...),
		State:    StateInfoFrom(l.Game().State()),
	}
	if withBoard {
		info.Board = l.Game().Board()
	}
	return info
}

// CreateGame registers a fresh game. The game id is the creator's user
// id, so one creator can hold at most one active game per type.
func (s *Storage) CreateGame(gameType game.Type, creator uint64, players []uint64) (*GameInfo, error) {
	if len(players) != 2 || players[0] == players[1] {
		return nil, ErrInvalidPlayers
	}
	if players[0] != creator && players[1] != creator {
		return nil, ErrInvalidPlayers
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	partition, ok := s.partitions[gameType]
	if !ok {
		return nil, lobby.ErrInvalidGameType
	}
	if _, exists := partition[creator]; exists {
		return nil, ErrDuplicateGame
	}
	l, err := lobby.New(gameType, players)
	if err != nil {
		return nil, err
	}
	partition[creator] = l
	return s.info(gameType, creator, l, false), nil
}

// UpdateGame applies a turn on behalf of a user and returns the
// resulting game state.
func (s *Storage) UpdateGame(gameType game.Type, gameID uint64, user uint64, data []byte) (game.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.lobbyFor(gameType, gameID)
	if err != nil {
		return game.State{}, err
	}
	return l.Update(user, data)
}

// DeleteGame removes a finished game. Deleting a game that does not
// exist is not an error; deleting an unfinished one is.
func (s *Storage) DeleteGame(gameType game.Type, gameID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	partition, ok := s.partitions[gameType]
	if !ok {
		return lobby.ErrInvalidGameType
	}
	l, ok := partition[gameID]
	if !ok {
		return nil
	}
	if !l.Game().State().IsFinished() {
		return ErrDeleteActiveGame
	}
	delete(partition, gameID)
	return nil
}

// Game returns a single game snapshot including its board.
func (s *Storage) Game(gameType game.Type, gameID uint64) (*GameInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.lobbyFor(gameType, gameID)
	if err != nil {
		return nil, err
	}
	return s.info(gameType, gameID, l, true), nil
}

// PlayerGames lists the games of one type the player takes part in.
// Boards are omitted from the snapshots.
func (s *Storage) PlayerGames(gameType game.Type, player uint64) ([]*GameInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	partition, ok := s.partitions[gameType]
	if !ok {
		return nil, lobby.ErrInvalidGameType
	}
	games := []*GameInfo{}
	for gameID, l := range partition {
		if _, ok := l.PlayerSeat(player); ok {
			games = append(games, s.info(gameType, gameID, l, false))
		}
	}
	return games, nil
}

// Connect attaches a session connection to a game. The connection's
// owner must be one of the game's players.
func (s *Storage) Connect(gameType game.Type, gameID uint64, conn *lobby.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.lobbyFor(gameType, gameID)
	if err != nil {
		return err
	}
	if _, ok := l.PlayerSeat(conn.User()); !ok {
		return lobby.ErrForeignGame
	}
	l.AddConnection(conn)
	return nil
}

// Disconnect detaches and closes the user's connection, if any. The
// game itself stays alive.
func (s *Storage) Disconnect(gameType game.Type, gameID uint64, user uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.lobbyFor(gameType, gameID)
	if err != nil {
		return
	}
	if conn := l.Disconnect(user); conn != nil {
		conn.Close()
	}
}

// CloseConnections tells every live connection across all games why
// its stream is ending and closes it. Used during shutdown; the games
// themselves stay in storage.
func (s *Storage) CloseConnections(reason error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, partition := range s.partitions {
		for _, l := range partition {
			l.CloseConnections(reason)
		}
	}
}

// NotifyErr delivers an error to the user's connection on a game.
// Nothing is sent to the other players.
func (s *Storage) NotifyErr(gameType game.Type, gameID uint64, user uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, lookupErr := s.lobbyFor(gameType, gameID)
	if lookupErr != nil {
		return
	}
	l.NotifyError(user, err)
}
