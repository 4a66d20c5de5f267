package main

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

	"github.com/Dosada05/soccer-cup/brackets"
	"github.com/Dosada05/soccer-cup/config"
	"github.com/Dosada05/soccer-cup/db"
	_ "github.com/Dosada05/soccer-cup/docs"
	"github.com/Dosada05/soccer-cup/handlers"
	"github.com/Dosada05/soccer-cup/repositories"
	api "github.com/Dosada05/soccer-cup/routes"
	"github.com/Dosada05/soccer-cup/services"
	"github.com/Dosada05/soccer-cup/storage"
	"github.com/go-chi/chi/v5"
)

// @title Soccer Cup API
// @version 1.0
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 30*time.Second)
	err = db.ApplySchema(schemaCtx, dbConn)
	cancelSchema()
	if err != nil {
		logger.Error("failed to apply database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// Хранилище бэкапов (Cloudflare R2) необязательно
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(context.Background(), storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		}, logger)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2.BucketName))
	} else {
		logger.Warn("R2 is not configured, tournament backups are disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	txManager := repositories.NewPostgresTxManager(dbConn, logger)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(cfg.AdminPasswordHash)
	if cfg.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is empty, organiser login is disabled")
	}
	tournamentService := services.NewTournamentService(tournamentRepo, groupRepo, teamRepo, logger)
	groupService := services.NewGroupService(tournamentRepo, groupRepo, teamRepo)
	teamService := services.NewTeamService(tournamentRepo, groupRepo, teamRepo)
	playerService := services.NewPlayerService(teamRepo, playerRepo, logger)
	searchService := services.NewSearchService(tournamentRepo, playerRepo)
	standingsService := services.NewStandingsService(tournamentRepo, groupRepo, teamRepo, matchRepo, logger)
	fixtureService := services.NewFixtureService(txManager, tournamentRepo, groupRepo, teamRepo, matchRepo, services.ScheduleDefaults{
		Fields:           cfg.Schedule.Fields,
		SlotDuration:     cfg.Schedule.SlotDuration,
		MatchesPerDay:    cfg.Schedule.MatchesPerDay,
		FirstKickoffHour: cfg.Schedule.FirstKickoffHour,
	}, wsHub, logger)
	knockoutService := services.NewKnockoutService(txManager, tournamentRepo, groupRepo, teamRepo, matchRepo, cfg.KnockoutDateOffset, wsHub, logger)
	matchService := services.NewMatchService(txManager, tournamentRepo, groupRepo, teamRepo, matchRepo, wsHub, logger)
	dashboardService := services.NewDashboardService(tournamentRepo, teamRepo, matchRepo, playerRepo)
	backupService := services.NewBackupService(tournamentRepo, groupRepo, teamRepo, matchRepo, playerRepo, uploader, logger)
	logger.Info("Services initialized")

	// Периодический бэкап активных турниров
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	var backupScheduler *services.BackupScheduler
	if uploader != nil && cfg.BackupInterval > 0 {
		backupScheduler, err = services.NewBackupScheduler(backupService, cfg.BackupInterval, logger)
		if err != nil {
			logger.Error("failed to create backup scheduler", slog.Any("error", err))
			os.Exit(1)
		}
		if err := backupScheduler.Start(appCtx); err != nil {
			logger.Error("failed to start backup scheduler", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Tournament: handlers.NewTournamentHandler(tournamentService, matchService),
		Group:      handlers.NewGroupHandler(groupService, fixtureService),
		Team:       handlers.NewTeamHandler(teamService),
		Player:     handlers.NewPlayerHandler(playerService),
		Match:      handlers.NewMatchHandler(matchService),
		Knockout:   handlers.NewKnockoutHandler(knockoutService),
		Standings:  handlers.NewStandingsHandler(standingsService),
		Dashboard:  handlers.NewDashboardHandler(dashboardService),
		Search:     handlers.NewSearchHandler(searchService),
		Backup:     handlers.NewBackupHandler(backupService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.CORSAllowedOrigins),
	}, api.Options{
		JWTSecret:      []byte(cfg.JWTSecretKey),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			exitCode = 1
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			exitCode = 1
		} else {
			logger.Info("server shutdown complete")
		}
	}

	cancelApp()
	if backupScheduler != nil {
		if err := backupScheduler.Shutdown(); err != nil {
			logger.Error("failed to stop backup scheduler", slog.Any("error", err))
		}
	}
	logger.Info("application exited")
	if exitCode != 0 {
		// os.Exit пропускает defer, поэтому закрываем БД явно.
		dbConn.Close()
		os.Exit(exitCode)
	}
}
