// Package session serves the streaming side of the game API: a lobby
// session stream fanning out applied moves, and a client-streaming
// turn endpoint. Frames are zstd-compressed flatbuffer messages.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/parlorgames/parlor/pkg/api/handlers"
	"github.com/parlorgames/parlor/pkg/api/middleware"
	authproviders "github.com/parlorgames/parlor/pkg/auth/providers"
	"github.com/parlorgames/parlor/pkg/game"
	"github.com/parlorgames/parlor/pkg/lobby"
	"github.com/parlorgames/parlor/pkg/log"
	"github.com/parlorgames/parlor/pkg/messages"
	"github.com/parlorgames/parlor/pkg/queue"
	"github.com/parlorgames/parlor/pkg/repositories"
	"github.com/parlorgames/parlor/pkg/storage"
	"github.com/parlorgames/parlor/pkg/workers"
)

var (
	errUnexpectedFrame = errors.New("unexpected frame: session already initialized")
	// ErrServerStopping is sent to every open stream during shutdown.
	ErrServerStopping = errors.New("server is stopping")
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type SessionServer struct {
	server        *http.Server
	tls           *TLSConfig
	gameStorage   *storage.Storage
	commandQueues map[game.Type]queue.Queue
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewSessionServerOptions struct {
	Port          int
	TLS           *TLSConfig
	AuthProvider  authproviders.AuthProvider
	Repository    repositories.Repository
	GameStorage   *storage.Storage
	CommandQueues map[game.Type]queue.Queue
}

// NewSessionServer creates a new http.Server upgrading the streaming
// endpoints to websockets.
func NewSessionServer(opts NewSessionServerOptions) *SessionServer {
	s := &SessionServer{
		tls:           opts.TLS,
		gameStorage:   opts.GameStorage,
		commandQueues: opts.CommandQueues,
	}

	authMiddleware := middleware.NewAuthMiddleware(opts.AuthProvider, opts.Repository)

	router := mux.NewRouter()
	router.Handle("/session", authMiddleware(http.HandlerFunc(s.handleSession)))
	router.Handle("/turns", authMiddleware(http.HandlerFunc(s.handleTurns)))

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}
	return s
}

// Handler exposes the router for tests.
func (s *SessionServer) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the SessionServer
func (s *SessionServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("session server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("session server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("session server closed")
			return
		}
		log.Error("session server error: %v", err)
	}
}

// Stop tells every open stream the server is going away, then shuts
// the listener down. http.Server.Shutdown ignores hijacked websocket
// connections, so the streams must be closed through their lobby
// connections: the writer goroutines deliver the final error frame and
// close the sockets, which unblocks the readers.
func (s *SessionServer) Stop(ctx context.Context) error {
	s.gameStorage.CloseConnections(ErrServerStopping)
	return s.server.Shutdown(ctx)
}

// readInit reads and validates the mandatory first frame of a stream.
func (s *SessionServer) readInit(ws *websocket.Conn, user uint64) (*messages.SessionInit, error) {
	msg, err := readMessage(ws)
	if err != nil {
		return nil, err
	}
	if msg.Type != messages.MessageTypeSessionInit {
		writeSessionError(ws, http.StatusPreconditionFailed, "first message must be session init")
		return nil, fmt.Errorf("first message was %s", msg.Type)
	}
	init, err := messages.DeserializeSessionInit(msg.Payload)
	if err != nil {
		writeSessionError(ws, http.StatusBadRequest, err.Error())
		return nil, err
	}
	if init.PlayerID != user {
		writeSessionError(ws, http.StatusForbidden, "player id does not match the authenticated user")
		return nil, fmt.Errorf("user %d asserted player %d", user, init.PlayerID)
	}
	if _, ok := s.commandQueues[init.GameType]; !ok {
		writeSessionError(ws, http.StatusBadRequest, lobby.ErrInvalidGameType.Error())
		return nil, lobby.ErrInvalidGameType
	}
	return init, nil
}

func (s *SessionServer) handleSession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		log.Error("failed to get user from context")
		http.Error(w, "failed to get user from context", http.StatusInternalServerError)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade to WebSocket: %v", err)
		return
	}
	log.Debug("new session connection from %s", ws.RemoteAddr().String())
	go s.handleSessionConnection(user.ID, ws)
}

func (s *SessionServer) handleSessionConnection(user uint64, ws *websocket.Conn) {
	defer ws.Close()

	init, err := s.readInit(ws, user)
	if err != nil {
		log.Debug("session init failed for user %d: %v", user, err)
		return
	}
	commandQueue := s.commandQueues[init.GameType]

	conn := lobby.NewConnection(user)
	if err := s.gameStorage.Connect(init.GameType, init.GameID, conn); err != nil {
		writeSessionError(ws, handlers.StatusFromError(err), err.Error())
		return
	}
	log.Info("user %d attached to %s game %d", user, init.GameType, init.GameID)

	// single writer: everything outbound flows through the lobby
	// connection's event stream
	go func() {
		for event := range conn.Events() {
			if event.Move != nil {
				if err := writeMoveBroadcast(ws, event.Move); err != nil {
					log.Error("failed to write move broadcast: %v", err)
				}
				continue
			}
			if event.Err != nil {
				writeSessionError(ws, sessionErrorCode(event.Err), event.Err.Error())
			}
		}
		// the lobby closed the stream: game over or disconnect
		ws.Close()
	}()

	for {
		msg, err := readMessage(ws)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Error("error reading session message from user %d: %v", user, err)
			}
			break
		}
		if msg.Type != messages.MessageTypeTurnData {
			s.gameStorage.NotifyErr(init.GameType, init.GameID, user, errUnexpectedFrame)
			continue
		}
		command := workers.Command{
			Type:   workers.CommandUpdateGame,
			GameID: init.GameID,
			User:   user,
			Data:   msg.Payload,
		}
		if err := commandQueue.Enqueue(context.Background(), command); err != nil {
			log.Error("failed to enqueue update command: %v", err)
			break
		}
	}

	// stream ended: detach through the worker to preserve ordering
	command := workers.Command{
		Type:   workers.CommandDisconnect,
		GameID: init.GameID,
		User:   user,
	}
	if err := commandQueue.Enqueue(context.Background(), command); err != nil {
		log.Error("failed to enqueue disconnect command: %v", err)
	}
}

func (s *SessionServer) handleTurns(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		log.Error("failed to get user from context")
		http.Error(w, "failed to get user from context", http.StatusInternalServerError)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade to WebSocket: %v", err)
		return
	}
	log.Debug("new turn stream from %s", ws.RemoteAddr().String())
	go s.handleTurnStream(user.ID, ws)
}

// handleTurnStream applies each turn frame synchronously and answers
// every request with exactly one reply frame.
func (s *SessionServer) handleTurnStream(user uint64, ws *websocket.Conn) {
	defer ws.Close()

	init, err := s.readInit(ws, user)
	if err != nil {
		log.Debug("turn stream init failed for user %d: %v", user, err)
		return
	}

	for {
		msg, err := readMessage(ws)
		if err != nil {
			return
		}
		if msg.Type != messages.MessageTypeTurnData {
			writeSessionError(ws, http.StatusPreconditionFailed, errUnexpectedFrame.Error())
			continue
		}
		state, err := s.gameStorage.UpdateGame(init.GameType, init.GameID, user, msg.Payload)
		if err != nil {
			writeSessionError(ws, handlers.StatusFromError(err), err.Error())
			continue
		}
		if err := writeGameState(ws, state); err != nil {
			log.Error("failed to write game state: %v", err)
			return
		}
	}
}

func sessionErrorCode(err error) int {
	switch {
	case errors.Is(err, errUnexpectedFrame):
		return http.StatusPreconditionFailed
	case errors.Is(err, ErrServerStopping):
		return http.StatusServiceUnavailable
	default:
		return handlers.StatusFromError(err)
	}
}

// readMessage reads one message envelope from a websocket connection.
func readMessage(ws *websocket.Conn) (*messages.Message, error) {
	_, b, err := ws.ReadMessage()
	if err != nil {
		return nil, err
	}
	msg, err := messages.DeserializeMessage(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}
	return msg, nil
}

// writeMessage writes one message envelope to a websocket connection.
func writeMessage(ws *websocket.Conn, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}
	if err := ws.WriteMessage(websocket.BinaryMessage, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}
	return nil
}

func writeMoveBroadcast(ws *websocket.Conn, move *lobby.MoveEvent) error {
	payload, err := messages.SerializeMoveBroadcast(&messages.MoveBroadcast{
		Player:   move.Player,
		TurnData: move.Data,
	})
	if err != nil {
		return err
	}
	return writeMessage(ws, &messages.Message{
		Type:    messages.MessageTypeMoveBroadcast,
		Payload: payload,
	})
}

func writeGameState(ws *websocket.Conn, state game.State) error {
	payload, err := messages.SerializeGameStateUpdate(&messages.GameStateUpdate{
		Kind:   int8(state.Kind),
		Player: state.Player,
	})
	if err != nil {
		return err
	}
	return writeMessage(ws, &messages.Message{
		Type:    messages.MessageTypeGameState,
		Payload: payload,
	})
}

func writeSessionError(ws *websocket.Conn, code int, message string) {
	payload, err := messages.SerializeSessionError(&messages.SessionError{
		Code:    uint32(code),
		Message: message,
	})
	if err != nil {
		log.Error("failed to serialize session error: %v", err)
		return
	}
	if err := writeMessage(ws, &messages.Message{
		Type:    messages.MessageTypeSessionError,
		Payload: payload,
	}); err != nil {
		log.Error("failed to write session error: %v", err)
	}
}
