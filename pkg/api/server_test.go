package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorgames/parlor/pkg/api/handlers"
	authproviders "github.com/parlorgames/parlor/pkg/auth/providers"
	"github.com/parlorgames/parlor/pkg/board"
	"github.com/parlorgames/parlor/pkg/game"
	"github.com/parlorgames/parlor/pkg/repositories/models"
	"github.com/parlorgames/parlor/pkg/storage"
)

// fakeRepository keeps users in memory for handler tests.
type fakeRepository struct {
	users  map[string]uint64
	nextID uint64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:  make(map[string]uint64),
		nextID: 1,
	}
}

func (r *fakeRepository) Close(ctx context.Context) error {
	return nil
}

func (r *fakeRepository) CreateUser(ctx context.Context, externalUID string) (*models.User, error) {
	id, ok := r.users[externalUID]
	if !ok {
		id = r.nextID
		r.nextID++
		r.users[externalUID] = id
	}
	return &models.User{ID: id, ExternalUID: externalUID}, nil
}

func (r *fakeRepository) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	for uid, userID := range r.users {
		if userID == id {
			return &models.User{ID: id, ExternalUID: uid}, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func newTestServer() *APIServer {
	return NewAPIServer(NewAPIServerOptions{
		Port:         0,
		AuthProvider: authproviders.NewStaticAuthProvider(),
		Repository:   newFakeRepository(),
		GameStorage:  storage.NewStorage(),
	})
}

func doRequest(t *testing.T, server *APIServer, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)
	return recorder
}

func createGame(t *testing.T, server *APIServer, token string, playerIDs []uint64) storage.GameInfo {
	t.Helper()
	recorder := doRequest(t, server, http.MethodPost, "/games", token, handlers.CreateGameRequest{
		GameType:  "tic_tac_toe",
		PlayerIDs: playerIDs,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var info storage.GameInfo
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &info))
	return info
}

func makeTurn(t *testing.T, server *APIServer, token string, gameID, playerID uint64, pos board.Index) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, server, http.MethodPost, fmt.Sprintf("/games/%d/turns", gameID), token, handlers.MakeTurnRequest{
		GameType: "tic_tac_toe",
		PlayerID: playerID,
		TurnData: game.EncodePosition(pos),
	})
}

func TestHealthz(t *testing.T) {
	server := newTestServer()

	recorder := doRequest(t, server, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, server.Stop(context.Background()))
	recorder = doRequest(t, server, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestRequestsRequireAuth(t *testing.T) {
	server := newTestServer()

	recorder := doRequest(t, server, http.MethodPost, "/games", "", handlers.CreateGameRequest{
		GameType:  "tic_tac_toe",
		PlayerIDs: []uint64{1, 2},
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateGameValidation(t *testing.T) {
	server := newTestServer()

	// "alice" becomes user 1
	recorder := doRequest(t, server, http.MethodPost, "/games", "alice", handlers.CreateGameRequest{
		GameType:  "checkers",
		PlayerIDs: []uint64{1, 2},
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doRequest(t, server, http.MethodPost, "/games", "alice", handlers.CreateGameRequest{
		GameType:  "tic_tac_toe",
		PlayerIDs: []uint64{2, 3},
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	createGame(t, server, "alice", []uint64{1, 2})
	recorder = doRequest(t, server, http.MethodPost, "/games", "alice", handlers.CreateGameRequest{
		GameType:  "tic_tac_toe",
		PlayerIDs: []uint64{1, 2},
	})
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestGamePlaythrough(t *testing.T) {
	server := newTestServer()

	// users register on their first authenticated request, so alice
	// becomes user 1 and bob user 2
	info := createGame(t, server, "alice", []uint64{1, 2})
	recorder := doRequest(t, server, http.MethodGet, "/games/1?game_type=tic_tac_toe", "bob", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	assert.Equal(t, uint64(1), info.GameID)
	assert.Equal(t, []uint64{1, 2}, info.Players)

	// deleting before the game ends is rejected
	recorder = doRequest(t, server, http.MethodDelete, "/games/1?game_type=tic_tac_toe", "alice", nil)
	assert.Equal(t, http.StatusPreconditionFailed, recorder.Code)

	moves := []struct {
		token    string
		playerID uint64
		pos      board.Index
	}{
		{"alice", 1, board.NewIndex(1, 1)},
		{"bob", 2, board.NewIndex(1, 0)},
		{"alice", 1, board.NewIndex(0, 2)},
		{"bob", 2, board.NewIndex(2, 0)},
		{"alice", 1, board.NewIndex(0, 0)},
		{"bob", 2, board.NewIndex(0, 1)},
		{"alice", 1, board.NewIndex(2, 2)},
	}
	var last handlers.MakeTurnResponse
	for _, move := range moves {
		recorder := makeTurn(t, server, move.token, 1, move.playerID, move.pos)
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &last))
	}
	require.Equal(t, "win", last.GameState.Kind)
	require.NotNil(t, last.GameState.Player)
	assert.Equal(t, game.PlayerID(0), *last.GameState.Player)

	// the finished board is visible on a single-game read
	recorder = doRequest(t, server, http.MethodGet, "/games/1?game_type=tic_tac_toe", "alice", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var finished storage.GameInfo
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &finished))
	assert.Equal(t, "win", finished.State.Kind)
	assert.Len(t, finished.Board, 9)

	// and now deletion goes through
	recorder = doRequest(t, server, http.MethodDelete, "/games/1?game_type=tic_tac_toe", "alice", nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	recorder = doRequest(t, server, http.MethodGet, "/games/1?game_type=tic_tac_toe", "alice", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMakeTurnRejections(t *testing.T) {
	server := newTestServer()
	createGame(t, server, "alice", []uint64{1, 2})

	// asserting someone else's seat
	recorder := makeTurn(t, server, "alice", 1, 2, board.NewIndex(0, 0))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// unknown game
	recorder = makeTurn(t, server, "alice", 99, 1, board.NewIndex(0, 0))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// moving out of turn
	recorder = doRequest(t, server, http.MethodPost, "/games/1/turns", "bob", handlers.MakeTurnRequest{
		GameType: "tic_tac_toe",
		PlayerID: 2,
		TurnData: game.EncodePosition(board.NewIndex(0, 0)),
	})
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// malformed turn payload
	recorder = doRequest(t, server, http.MethodPost, "/games/1/turns", "alice", handlers.MakeTurnRequest{
		GameType: "tic_tac_toe",
		PlayerID: 1,
		TurnData: []byte{0x01},
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetPlayerGames(t *testing.T) {
	server := newTestServer()

	// six creators register in order; "carol" becomes user 7 on her
	// first request and plays in games 1, 2 and 6
	tokens := []string{"u1", "u2", "u3", "u4", "u5", "u6"}
	for i, token := range tokens {
		creator := uint64(i + 1)
		recorder := doRequest(t, server, http.MethodPost, "/games", token, handlers.CreateGameRequest{
			GameType:  "tic_tac_toe",
			PlayerIDs: []uint64{creator, pickOpponent(creator)},
		})
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	}

	recorder := doRequest(t, server, http.MethodGet, "/games?game_type=tic_tac_toe&player_id=7", "carol", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var resp handlers.PlayerGamesResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))

	ids := map[uint64]bool{}
	for _, info := range resp.Games {
		ids[info.GameID] = true
	}
	assert.Equal(t, map[uint64]bool{1: true, 2: true, 6: true}, ids)
}

// pickOpponent seats user 7 in games 1, 2 and 6, strangers elsewhere.
func pickOpponent(creator uint64) uint64 {
	if creator == 1 || creator == 2 || creator == 6 {
		return 7
	}
	return 100 + creator
}
