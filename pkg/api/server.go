package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"

	"github.com/parlorgames/parlor/pkg/api/handlers"
	"github.com/parlorgames/parlor/pkg/api/middleware"
	authproviders "github.com/parlorgames/parlor/pkg/auth/providers"
	"github.com/parlorgames/parlor/pkg/log"
	"github.com/parlorgames/parlor/pkg/repositories"
	"github.com/parlorgames/parlor/pkg/storage"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
	// draining flips the health endpoint to 503 during shutdown
	draining atomic.Bool
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port         int
	TLS          *TLSConfig
	AuthProvider authproviders.AuthProvider
	Repository   repositories.Repository
	GameStorage  *storage.Storage
}

// NewAPIServer creates a new http.Server handling the unary game API.
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	s := &APIServer{
		tls: opts.TLS,
	}

	authMiddleware := middleware.NewAuthMiddleware(opts.AuthProvider, opts.Repository)
	requestIDMiddleware := middleware.NewRequestIDMiddleware()

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	games := router.PathPrefix("/games").Subrouter()
	games.Use(requestIDMiddleware, authMiddleware)
	games.HandleFunc("", handlers.HandleCreateGame(opts.GameStorage)).Methods(http.MethodPost)
	games.HandleFunc("", handlers.HandleGetPlayerGames(opts.GameStorage)).Methods(http.MethodGet)
	games.HandleFunc("/{gameID}", handlers.HandleGetGame(opts.GameStorage)).Methods(http.MethodGet)
	games.HandleFunc("/{gameID}", handlers.HandleDeleteGame(opts.GameStorage)).Methods(http.MethodDelete)
	games.HandleFunc("/{gameID}/turns", handlers.HandleMakeTurn(opts.GameStorage)).Methods(http.MethodPost)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}
	return s
}

func (s *APIServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.draining.Load() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Handler exposes the router for tests.
func (s *APIServer) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop marks the server as draining and shuts it down gracefully.
func (s *APIServer) Stop(ctx context.Context) error {
	s.draining.Store(true)
	return s.server.Shutdown(ctx)
}
