// Package workers contains the per-game-type lobby workers. Each
// worker is the sole consumer of its command queue, which keeps turn
// application strictly in arrival order.
package workers

import (
	"context"
	"fmt"

	"github.com/parlorgames/parlor/pkg/game"
	"github.com/parlorgames/parlor/pkg/log"
	"github.com/parlorgames/parlor/pkg/queue"
	"github.com/parlorgames/parlor/pkg/storage"
)

type CommandType int

const (
	CommandUpdateGame CommandType = iota
	CommandDisconnect
)

func (t CommandType) String() string {
	switch t {
	case CommandUpdateGame:
		return "update_game"
	case CommandDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

// Command is one unit of work for a lobby worker. Data carries the raw
// turn payload for update commands and is unused for disconnects.
type Command struct {
	Type   CommandType
	GameID uint64
	User   uint64
	Data   []byte
}

type LobbyWorker struct {
	gameType     game.Type
	gameStorage  *storage.Storage
	commandQueue queue.Queue
}

// NewLobbyWorkerOptions contains options for creating a new LobbyWorker.
type NewLobbyWorkerOptions struct {
	GameType     game.Type
	GameStorage  *storage.Storage
	CommandQueue queue.Queue
}

func NewLobbyWorker(opts NewLobbyWorkerOptions) *LobbyWorker {
	return &LobbyWorker{
		gameType:     opts.GameType,
		gameStorage:  opts.GameStorage,
		commandQueue: opts.CommandQueue,
	}
}

// Start consumes the command queue until the context is cancelled,
// then drains whatever is still queued before returning.
func (w *LobbyWorker) Start(ctx context.Context) {
	log.Info("%s lobby worker started", w.gameType)
	for {
		item, err := w.commandQueue.Dequeue(ctx)
		if err != nil {
			w.drain()
			log.Info("%s lobby worker stopped", w.gameType)
			return
		}
		w.handle(item)
	}
}

func (w *LobbyWorker) drain() {
	for {
		item, ok := w.commandQueue.TryDequeue()
		if !ok {
			return
		}
		w.handle(item)
	}
}

func (w *LobbyWorker) handle(item interface{}) {
	command, ok := item.(Command)
	if !ok {
		log.Error("failed to cast lobby command: %T", item)
		return
	}
	log.Debug("%s lobby worker: %s game %d user %d", w.gameType, command.Type, command.GameID, command.User)

	switch command.Type {
	case CommandUpdateGame:
		if err := w.handleUpdateGame(command); err != nil {
			log.Error("failed to handle update game command: %v", err)
		}
	case CommandDisconnect:
		w.gameStorage.Disconnect(w.gameType, command.GameID, command.User)
	default:
		log.Error("unknown lobby command type: %v", command.Type)
	}
}

// handleUpdateGame applies a turn. A failed update is reported to the
// offending player's connection only; the player stays connected.
func (w *LobbyWorker) handleUpdateGame(command Command) error {
	state, err := w.gameStorage.UpdateGame(w.gameType, command.GameID, command.User, command.Data)
	if err != nil {
		w.gameStorage.NotifyErr(w.gameType, command.GameID, command.User, err)
		return fmt.Errorf("failed to update game %d: %v", command.GameID, err)
	}
	log.Debug("game %d is now %s", command.GameID, state)
	return nil
}
