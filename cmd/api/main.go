package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/workspace-service/internal/api/http"
	"github.com/spec-kit/workspace-service/internal/api/http/handlers"
	"github.com/spec-kit/workspace-service/internal/api/ws"
	"github.com/spec-kit/workspace-service/internal/auth"
	"github.com/spec-kit/workspace-service/internal/config"
	"github.com/spec-kit/workspace-service/internal/events"
	"github.com/spec-kit/workspace-service/internal/observability"
	"github.com/spec-kit/workspace-service/internal/persistence"
	"github.com/spec-kit/workspace-service/internal/repository"
	"github.com/spec-kit/workspace-service/internal/service"
	"github.com/spec-kit/workspace-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	todoRepo := repository.NewTodoRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	issuer := auth.NewIssuer(cfg.Auth)
	sessions := auth.NewSessionStore()
	gate := auth.NewGate(issuer, sessions)
	transport := auth.NewCookieTransport(cfg.Auth.SecureCookies)
	authMiddleware := auth.NewMiddleware(gate, transport)
	bridge := auth.NewChannelBridge(gate)

	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(userRepo, issuer, sessions, cfg.Auth.BcryptCost)
	todoService := service.NewTodoService(todoRepo, userRepo, dispatcher)
	noteService := service.NewNoteService(noteRepo, userRepo, dispatcher)
	chatService := service.NewChatService(messageRepo, userRepo, cfg.Chat.HistoryLimit)

	hub := ws.NewHub(redis.Client, cfg.Chat.RedisChannel, logger)
	go hub.Run(ctx)
	worker.StartChatAnnouncer(dispatcher, chatService, hub, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Auth:           handlers.NewAuthHandler(authService, transport),
		Todos:          handlers.NewTodosHandler(todoService),
		Notes:          handlers.NewNotesHandler(noteService),
		Chat:           ws.NewChatHandler(bridge, chatService, hub, logger),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
