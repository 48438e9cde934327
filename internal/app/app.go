package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nonprofit-ops/internal/config"
	"nonprofit-ops/internal/database"
	"nonprofit-ops/internal/handler"
	"nonprofit-ops/internal/middleware"
	"nonprofit-ops/internal/repository"
	"nonprofit-ops/internal/router"
	"nonprofit-ops/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	hostRepo := repository.NewHostRepository(pool)
	collectionRepo := repository.NewCollectionRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	suggestionRepo := repository.NewSuggestionRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	softDeleteRepo := repository.NewSoftDeleteRepository(pool)
	auditRepo := repository.NewDeletionAuditRepository(pool)
	slog.Info("database ready")

	authService, err := service.NewAuthService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, userRepo, tokenRepo)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	if cfg.SeedAdminPassword != "" {
		if err := authService.SeedAdmin(context.Background(), cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed admin account: %w", err)
		}
	}
	authMiddleware := middleware.NewAuthMiddleware(authService)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go authService.StartTokenCleanup(cleanupCtx, time.Hour)

	deletionService := service.NewDeletionService(softDeleteRepo, auditRepo, cfg.HistoryPageLimit)
	service.RegisterDefaultRules(deletionService, hostRepo, collectionRepo, projectRepo, suggestionRepo)

	hostService := service.NewHostService(hostRepo, deletionService)
	collectionService := service.NewCollectionService(collectionRepo, deletionService)
	projectService := service.NewProjectService(projectRepo, taskRepo, deletionService)
	suggestionService := service.NewSuggestionService(suggestionRepo, deletionService)
	messageService := service.NewMessageService(messageRepo, deletionService)

	appRouter := router.New(cfg, db, authMiddleware, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Host:       handler.NewHostHandler(hostService),
		Collection: handler.NewCollectionHandler(collectionService),
		Project:    handler.NewProjectHandler(projectService),
		Suggestion: handler.NewSuggestionHandler(suggestionService),
		Message:    handler.NewMessageHandler(messageService),
		Deletion:   handler.NewDeletionHandler(deletionService, cfg.BulkDeleteMaxIDs),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			cleanupCancel,
			db.Close,
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := a.server.Shutdown(ctx)

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
