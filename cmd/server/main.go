package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/parlorgames/parlor/pkg/api"
	authproviders "github.com/parlorgames/parlor/pkg/auth/providers"
	"github.com/parlorgames/parlor/pkg/config"
	"github.com/parlorgames/parlor/pkg/game"
	"github.com/parlorgames/parlor/pkg/log"
	"github.com/parlorgames/parlor/pkg/queue"
	"github.com/parlorgames/parlor/pkg/repositories"
	"github.com/parlorgames/parlor/pkg/session"
	"github.com/parlorgames/parlor/pkg/storage"
	"github.com/parlorgames/parlor/pkg/workers"
)

const commandQueueCapacity = 1024

func main() {
	configPath := flag.String("config", "", "Path to the config file (optional)")
	flag.Parse()

	var cfg *config.Config
	if *configPath != "" {
		cfg = config.MustLoad(*configPath)
	} else {
		cfg = config.Default()
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repository repositories.Repository
	switch cfg.Database.Driver {
	case "postgres":
		repository = repositories.NewPostgresRepository(ctx, cfg.Database.ConnStr)
	case "sqlite":
		repository, err = repositories.NewSQLiteRepository(ctx, cfg.Database.Path, cfg.Database.Migrations)
		if err != nil {
			panic(fmt.Sprintf("Failed to open sqlite repository: %v", err))
		}
	default:
		panic(fmt.Sprintf("Unknown database driver: %s", cfg.Database.Driver))
	}
	defer repository.Close(context.Background())

	var authProvider authproviders.AuthProvider
	switch cfg.Auth.Provider {
	case "firebase":
		authProvider, err = authproviders.NewFirebaseAuthProvider(ctx, cfg.Auth.FirebaseProjectID, cfg.Auth.FirebaseAPIKey)
		if err != nil {
			panic(fmt.Sprintf("Failed to create firebase auth provider: %v", err))
		}
	case "static":
		log.Warn("using the static auth provider, tokens are trusted as-is")
		authProvider = authproviders.NewStaticAuthProvider()
	default:
		panic(fmt.Sprintf("Unknown auth provider: %s", cfg.Auth.Provider))
	}

	gameStorage := storage.NewStorage()

	commandQueues := map[game.Type]queue.Queue{
		game.TypeTicTacToe: queue.NewInMemoryQueue(commandQueueCapacity),
		game.TypeChess:     queue.NewInMemoryQueue(commandQueueCapacity),
	}
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}
	for gameType, commandQueue := range commandQueues {
		worker := workers.NewLobbyWorker(workers.NewLobbyWorkerOptions{
			GameType:     gameType,
			GameStorage:  gameStorage,
			CommandQueue: commandQueue,
		})
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Start(workerCtx)
		}()
	}

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:         cfg.API.Port,
		AuthProvider: authProvider,
		Repository:   repository,
		GameStorage:  gameStorage,
	})
	go apiServer.Start()

	sessionServer := session.NewSessionServer(session.NewSessionServerOptions{
		Port:          cfg.API.SessionPort,
		AuthProvider:  authProvider,
		Repository:    repository,
		GameStorage:   gameStorage,
		CommandQueues: commandQueues,
	})
	go sessionServer.Start()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server: %v", err)
	}
	if err := sessionServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop session server: %v", err)
	}

	// workers drain their queues before exiting
	cancelWorkers()
	wg.Wait()
	log.Info("Shutdown complete")
}
