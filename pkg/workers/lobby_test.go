package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorgames/parlor/pkg/board"
	"github.com/parlorgames/parlor/pkg/game"
	"github.com/parlorgames/parlor/pkg/lobby"
	"github.com/parlorgames/parlor/pkg/queue"
	"github.com/parlorgames/parlor/pkg/storage"
)

func updateCommand(gameID, user uint64, pos board.Index) Command {
	return Command{
		Type:   CommandUpdateGame,
		GameID: gameID,
		User:   user,
		Data:   game.EncodePosition(pos),
	}
}

func TestLobbyWorkerAppliesCommandsInOrder(t *testing.T) {
	s := storage.NewStorage()
	_, err := s.CreateGame(game.TypeTicTacToe, 1, []uint64{1, 2})
	require.NoError(t, err)

	commandQueue := queue.NewInMemoryQueue(16)
	worker := NewLobbyWorker(NewLobbyWorkerOptions{
		GameType:     game.TypeTicTacToe,
		GameStorage:  s,
		CommandQueue: commandQueue,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	commands := []Command{
		updateCommand(1, 1, board.NewIndex(0, 0)),
		updateCommand(1, 2, board.NewIndex(1, 0)),
		updateCommand(1, 1, board.NewIndex(0, 1)),
		updateCommand(1, 2, board.NewIndex(1, 1)),
		updateCommand(1, 1, board.NewIndex(0, 2)),
	}
	for _, command := range commands {
		require.NoError(t, commandQueue.Enqueue(ctx, command))
	}

	require.Eventually(t, func() bool {
		info, err := s.Game(game.TypeTicTacToe, 1)
		require.NoError(t, err)
		return info.State.Kind == "win"
	}, time.Second, 5*time.Millisecond)

	info, err := s.Game(game.TypeTicTacToe, 1)
	require.NoError(t, err)
	require.NotNil(t, info.State.Player)
	assert.Equal(t, game.PlayerID(0), *info.State.Player)

	cancel()
	<-done
}

func TestLobbyWorkerNotifiesOffenderOnFailure(t *testing.T) {
	s := storage.NewStorage()
	_, err := s.CreateGame(game.TypeTicTacToe, 1, []uint64{1, 2})
	require.NoError(t, err)

	offender := lobby.NewConnection(2)
	other := lobby.NewConnection(1)
	require.NoError(t, s.Connect(game.TypeTicTacToe, 1, offender))
	require.NoError(t, s.Connect(game.TypeTicTacToe, 1, other))

	commandQueue := queue.NewInMemoryQueue(16)
	worker := NewLobbyWorker(NewLobbyWorkerOptions{
		GameType:     game.TypeTicTacToe,
		GameStorage:  s,
		CommandQueue: commandQueue,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	// player 2 moves out of turn
	require.NoError(t, commandQueue.Enqueue(ctx, updateCommand(1, 2, board.NewIndex(0, 0))))

	select {
	case event := <-offender.Events():
		var notYourTurn *game.NotYourTurnError
		assert.ErrorAs(t, event.Err, &notYourTurn)
	case <-time.After(time.Second):
		t.Fatal("offender was never notified")
	}
	select {
	case event := <-other.Events():
		t.Fatalf("unexpected event: %+v", event)
	default:
	}

	// the offender stays connected and still sees the next move
	require.NoError(t, commandQueue.Enqueue(ctx, updateCommand(1, 1, board.NewIndex(0, 0))))
	select {
	case event := <-offender.Events():
		require.NotNil(t, event.Move)
		assert.Equal(t, game.PlayerID(0), event.Move.Player)
	case <-time.After(time.Second):
		t.Fatal("offender missed the broadcast")
	}
}

func TestLobbyWorkerDisconnectCommand(t *testing.T) {
	s := storage.NewStorage()
	_, err := s.CreateGame(game.TypeTicTacToe, 1, []uint64{1, 2})
	require.NoError(t, err)
	conn := lobby.NewConnection(2)
	require.NoError(t, s.Connect(game.TypeTicTacToe, 1, conn))

	commandQueue := queue.NewInMemoryQueue(16)
	worker := NewLobbyWorker(NewLobbyWorkerOptions{
		GameType:     game.TypeTicTacToe,
		GameStorage:  s,
		CommandQueue: commandQueue,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	require.NoError(t, commandQueue.Enqueue(ctx, Command{
		Type:   CommandDisconnect,
		GameID: 1,
		User:   2,
	}))

	select {
	case _, ok := <-conn.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("connection was never closed")
	}

	// the game itself survives
	_, err = s.Game(game.TypeTicTacToe, 1)
	assert.NoError(t, err)
}

func TestLobbyWorkerDrainsQueueOnShutdown(t *testing.T) {
	s := storage.NewStorage()
	_, err := s.CreateGame(game.TypeTicTacToe, 1, []uint64{1, 2})
	require.NoError(t, err)

	commandQueue := queue.NewInMemoryQueue(16)
	worker := NewLobbyWorker(NewLobbyWorkerOptions{
		GameType:     game.TypeTicTacToe,
		GameStorage:  s,
		CommandQueue: commandQueue,
	})

	// enqueue before the worker ever runs, then start it with a
	// cancelled context: the drain pass must still apply the command
	require.NoError(t, commandQueue.Enqueue(context.Background(), updateCommand(1, 1, board.NewIndex(0, 0))))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	worker.Start(ctx)

	info, err := s.Game(game.TypeTicTacToe, 1)
	require.NoError(t, err)
	require.NotNil(t, info.Board[0])
	assert.Equal(t, game.PlayerID(0), info.Board[0].Owner)
	assert.Zero(t, commandQueue.Size())
}
