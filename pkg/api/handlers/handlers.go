package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/parlorgames/parlor/pkg/api/middleware"
	"github.com/parlorgames/parlor/pkg/game"
	"github.com/parlorgames/parlor/pkg/lobby"
	"github.com/parlorgames/parlor/pkg/log"
	"github.com/parlorgames/parlor/pkg/storage"
)

type CreateGameRequest struct {
	GameType  string   `json:"game_type"`
	PlayerIDs []uint64 `json:"player_ids"`
}

type MakeTurnRequest struct {
	GameType string `json:"game_type"`
	PlayerID uint64 `json:"player_id"`
	TurnData []byte `json:"turn_data"`
}

type MakeTurnResponse struct {
	GameState storage.StateInfo `json:"game_state"`
}

type PlayerGamesResponse struct {
	Games []*storage.GameInfo `json:"games"`
}

// StatusFromError maps storage and engine errors to HTTP status codes.
// Rule rejections are the caller's fault; pool corruption is ours. The
// session transport reuses the same codes inside its error frames.
func StatusFromError(err error) int {
	var (
		notYourTurn  *game.NotYourTurnError
		unauthorized *game.UnauthorizedMoveError
	)
	switch {
	case errors.Is(err, storage.ErrNoSuchGame):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateGame):
		return http.StatusConflict
	case errors.Is(err, storage.ErrDeleteActiveGame),
		errors.Is(err, game.ErrGameIsFinished):
		return http.StatusPreconditionFailed
	case errors.Is(err, lobby.ErrForeignGame),
		errors.As(err, &notYourTurn),
		errors.As(err, &unauthorized):
		return http.StatusForbidden
	case errors.Is(err, lobby.ErrInvalidGameType),
		errors.Is(err, storage.ErrInvalidPlayers),
		game.IsRuleViolation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		log.Error("internal error: %v", err)
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}

func parseGameType(s string) (game.Type, error) {
	gameType, err := game.ParseType(s)
	if err != nil {
		return game.TypeUnspecified, lobby.ErrInvalidGameType
	}
	return gameType, nil
}

func gameIDFromPath(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["gameID"], 10, 64)
}

func HandleCreateGame(gameStorage *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			log.Error("failed to get user from context")
			http.Error(w, "failed to get user from context", http.StatusInternalServerError)
			return
		}

		var req CreateGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}
		gameType, err := parseGameType(req.GameType)
		if err != nil {
			writeError(w, err)
			return
		}

		info, err := gameStorage.CreateGame(gameType, user.ID, req.PlayerIDs)
		if err != nil {
			writeError(w, err)
			return
		}
		log.Info("user %d created %s game %d", user.ID, info.GameType, info.GameID)
		writeJSON(w, info)
	}
}

// HandleMakeTurn applies a single turn synchronously. The streaming
// variants go through the lobby workers instead.
func HandleMakeTurn(gameStorage *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			log.Error("failed to get user from context")
			http.Error(w, "failed to get user from context", http.StatusInternalServerError)
			return
		}

		gameID, err := gameIDFromPath(r)
		if err != nil {
			http.Error(w, "malformed game id", http.StatusBadRequest)
			return
		}
		var req MakeTurnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}
		gameType, err := parseGameType(req.GameType)
		if err != nil {
			writeError(w, err)
			return
		}
		// the asserted player must be the authenticated caller
		if req.PlayerID != user.ID {
			http.Error(w, "player id does not match the authenticated user", http.StatusForbidden)
			return
		}

		state, err := gameStorage.UpdateGame(gameType, gameID, user.ID, req.TurnData)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, MakeTurnResponse{GameState: storage.StateInfoFrom(state)})
	}
}

func HandleDeleteGame(gameStorage *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := gameIDFromPath(r)
		if err != nil {
			http.Error(w, "malformed game id", http.StatusBadRequest)
			return
		}
		gameType, err := parseGameType(r.URL.Query().Get("game_type"))
		if err != nil {
			writeError(w, err)
			return
		}

		if err := gameStorage.DeleteGame(gameType, gameID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleGetGame(gameStorage *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := gameIDFromPath(r)
		if err != nil {
			http.Error(w, "malformed game id", http.StatusBadRequest)
			return
		}
		gameType, err := parseGameType(r.URL.Query().Get("game_type"))
		if err != nil {
			writeError(w, err)
			return
		}

		info, err := gameStorage.Game(gameType, gameID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, info)
	}
}

func HandleGetPlayerGames(gameStorage *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameType, err := parseGameType(r.URL.Query().Get("game_type"))
		if err != nil {
			writeError(w, err)
			return
		}
		player, err := strconv.ParseUint(r.URL.Query().Get("player_id"), 10, 64)
		if err != nil {
			http.Error(w, "malformed player id", http.StatusBadRequest)
			return
		}

		games, err := gameStorage.PlayerGames(gameType, player)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, PlayerGamesResponse{Games: games})
	}
}
