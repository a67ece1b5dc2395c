package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authproviders "github.com/parlorgames/parlor/pkg/auth/providers"
	"github.com/parlorgames/parlor/pkg/board"
	"github.com/parlorgames/parlor/pkg/game"
	"github.com/parlorgames/parlor/pkg/messages"
	"github.com/parlorgames/parlor/pkg/queue"
	"github.com/parlorgames/parlor/pkg/repositories/models"
	"github.com/parlorgames/parlor/pkg/storage"
	"github.com/parlorgames/parlor/pkg/workers"
)

// staticRepository maps fixed tokens to fixed user ids.
type staticRepository struct {
	users map[string]uint64
}

func (r *staticRepository) Close(ctx context.Context) error {
	return nil
}

func (r *staticRepository) CreateUser(ctx context.Context, externalUID string) (*models.User, error) {
	id, ok := r.users[externalUID]
	if !ok {
		id = 999
	}
	return &models.User{ID: id, ExternalUID: externalUID}, nil
}

func (r *staticRepository) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	return &models.User{ID: id}, nil
}

type fixture struct {
	url           string
	gameStorage   *storage.Storage
	sessionServer *SessionServer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gameStorage := storage.NewStorage()
	_, err := gameStorage.CreateGame(game.TypeTicTacToe, 1, []uint64{1, 2})
	require.NoError(t, err)

	commandQueues := map[game.Type]queue.Queue{
		game.TypeTicTacToe: queue.NewInMemoryQueue(64),
		game.TypeChess:     queue.NewInMemoryQueue(64),
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	for gameType, commandQueue := range commandQueues {
		worker := workers.NewLobbyWorker(workers.NewLobbyWorkerOptions{
			GameType:     gameType,
			GameStorage:  gameStorage,
			CommandQueue: commandQueue,
		})
		go worker.Start(ctx)
	}

	sessionServer := NewSessionServer(NewSessionServerOptions{
		AuthProvider: authproviders.NewStaticAuthProvider(),
		Repository: &staticRepository{users: map[string]uint64{
			"alice": 1,
			"bob":   2,
		}},
		GameStorage:   gameStorage,
		CommandQueues: commandQueues,
	})
	testServer := httptest.NewServer(sessionServer.Handler())
	t.Cleanup(testServer.Close)

	return &fixture{
		url:           "ws" + strings.TrimPrefix(testServer.URL, "http"),
		gameStorage:   gameStorage,
		sessionServer: sessionServer,
	}
}

func dial(t *testing.T, url, token string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	ws, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func sendFrame(t *testing.T, ws *websocket.Conn, msgType messages.MessageType, payload []byte) {
	t.Helper()
	b, err := messages.SerializeMessage(&messages.Message{
		Type:    msgType,
		Payload: payload,
	})
	require.NoError(t, err)
	require.NoError(t, ws.WriteMessage(websocket.BinaryMessage, b))
}

func sendInit(t *testing.T, ws *websocket.Conn, gameID, playerID uint64) {
	t.Helper()
	payload, err := messages.SerializeSessionInit(&messages.SessionInit{
		GameType: game.TypeTicTacToe,
		GameID:   gameID,
		PlayerID: playerID,
	})
	require.NoError(t, err)
	sendFrame(t, ws, messages.MessageTypeSessionInit, payload)
}

func readFrame(t *testing.T, ws *websocket.Conn) *messages.Message {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, b, err := ws.ReadMessage()
	require.NoError(t, err)
	msg, err := messages.DeserializeMessage(b)
	require.NoError(t, err)
	return msg
}

func TestSessionBroadcastsMoves(t *testing.T) {
	f := newFixture(t)

	alice := dial(t, f.url+"/session", "alice")
	bob := dial(t, f.url+"/session", "bob")
	sendInit(t, alice, 1, 1)
	sendInit(t, bob, 1, 2)

	// attachment happens on the server side of the socket; give both
	// init frames a moment to land
	time.Sleep(50 * time.Millisecond)

	turnData := game.EncodePosition(board.NewIndex(1, 1))
	sendFrame(t, alice, messages.MessageTypeTurnData, turnData)

	for _, ws := range []*websocket.Conn{alice, bob} {
		msg := readFrame(t, ws)
		require.Equal(t, messages.MessageTypeMoveBroadcast, msg.Type)
		broadcast, err := messages.DeserializeMoveBroadcast(msg.Payload)
		require.NoError(t, err)
		assert.Equal(t, game.PlayerID(0), broadcast.Player)
		assert.Equal(t, turnData, broadcast.TurnData)
	}
}

func TestSessionErrorGoesToOffenderOnly(t *testing.T) {
	f := newFixture(t)

	alice := dial(t, f.url+"/session", "alice")
	bob := dial(t, f.url+"/session", "bob")
	sendInit(t, alice, 1, 1)
	sendInit(t, bob, 1, 2)
	time.Sleep(50 * time.Millisecond)

	// bob moves out of turn
	sendFrame(t, bob, messages.MessageTypeTurnData, game.EncodePosition(board.NewIndex(0, 0)))

	msg := readFrame(t, bob)
	require.Equal(t, messages.MessageTypeSessionError, msg.Type)
	sessionErr, err := messages.DeserializeSessionError(msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(http.StatusForbidden), sessionErr.Code)

	// alice sees nothing until a real move lands
	sendFrame(t, alice, messages.MessageTypeTurnData, game.EncodePosition(board.NewIndex(0, 0)))
	msg = readFrame(t, alice)
	require.Equal(t, messages.MessageTypeMoveBroadcast, msg.Type)
}

func TestSessionFirstFrameMustBeInit(t *testing.T) {
	f := newFixture(t)

	ws := dial(t, f.url+"/session", "alice")
	sendFrame(t, ws, messages.MessageTypeTurnData, game.EncodePosition(board.NewIndex(0, 0)))

	msg := readFrame(t, ws)
	require.Equal(t, messages.MessageTypeSessionError, msg.Type)
	sessionErr, err := messages.DeserializeSessionError(msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(http.StatusPreconditionFailed), sessionErr.Code)
}

func TestSessionRejectsForeignSeat(t *testing.T) {
	f := newFixture(t)

	ws := dial(t, f.url+"/session", "alice")
	sendInit(t, ws, 1, 2)

	msg := readFrame(t, ws)
	require.Equal(t, messages.MessageTypeSessionError, msg.Type)
	sessionErr, err := messages.DeserializeSessionError(msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(http.StatusForbidden), sessionErr.Code)
}

func TestStopNotifiesOpenStreams(t *testing.T) {
	f := newFixture(t)

	alice := dial(t, f.url+"/session", "alice")
	bob := dial(t, f.url+"/session", "bob")
	sendInit(t, alice, 1, 1)
	sendInit(t, bob, 1, 2)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, f.sessionServer.Stop(context.Background()))

	// every open stream gets a final error frame, then the socket dies
	for _, ws := range []*websocket.Conn{alice, bob} {
		msg := readFrame(t, ws)
		require.Equal(t, messages.MessageTypeSessionError, msg.Type)
		sessionErr, err := messages.DeserializeSessionError(msg.Payload)
		require.NoError(t, err)
		assert.Equal(t, uint32(http.StatusServiceUnavailable), sessionErr.Code)
		assert.Equal(t, ErrServerStopping.Error(), sessionErr.Message)

		require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, _, err = ws.ReadMessage()
		assert.Error(t, err, "socket must be closed after the final frame")
	}

	// the games themselves survive the shutdown notification
	_, err := f.gameStorage.Game(game.TypeTicTacToe, 1)
	assert.NoError(t, err)
}

func TestTurnStream(t *testing.T) {
	f := newFixture(t)

	alice := dial(t, f.url+"/turns", "alice")
	sendInit(t, alice, 1, 1)

	sendFrame(t, alice, messages.MessageTypeTurnData, game.EncodePosition(board.NewIndex(1, 1)))
	msg := readFrame(t, alice)
	require.Equal(t, messages.MessageTypeGameState, msg.Type)
	state, err := messages.DeserializeGameStateUpdate(msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, int8(game.StateTurn), state.Kind)
	assert.Equal(t, game.PlayerID(1), state.Player)

	// out of turn now: one error reply, stream stays usable
	sendFrame(t, alice, messages.MessageTypeTurnData, game.EncodePosition(board.NewIndex(0, 0)))
	msg = readFrame(t, alice)
	require.Equal(t, messages.MessageTypeSessionError, msg.Type)
	sessionErr, err := messages.DeserializeSessionError(msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(http.StatusForbidden), sessionErr.Code)
}
