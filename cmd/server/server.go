package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"parley-server/services/chat-api/internal/config"
	"parley-server/services/chat-api/internal/domain/attachment"
	"parley-server/services/chat-api/internal/domain/codeconv"
	"parley-server/services/chat-api/internal/domain/message"
	"parley-server/services/chat-api/internal/domain/persona"
	"parley-server/services/chat-api/internal/domain/pin"
	"parley-server/services/chat-api/internal/domain/preferences"
	"parley-server/services/chat-api/internal/domain/profile"
	"parley-server/services/chat-api/internal/domain/project"
	"parley-server/services/chat-api/internal/domain/share"
	"parley-server/services/chat-api/internal/domain/summary"
	"parley-server/services/chat-api/internal/domain/thread"
	"parley-server/services/chat-api/internal/domain/user"
	"parley-server/services/chat-api/internal/infrastructure/auth"
	"parley-server/services/chat-api/internal/infrastructure/crontab"
	"parley-server/services/chat-api/internal/infrastructure/database"
	"parley-server/services/chat-api/internal/infrastructure/logger"
	"parley-server/services/chat-api/internal/infrastructure/observability"
	"parley-server/services/chat-api/internal/infrastructure/repository/attachmentrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/codeconvrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/messagerepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/personarepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/pinrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/preferencesrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/profilerepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/projectrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/sharerepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/summaryrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/threadrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/userrepo"
	"parley-server/services/chat-api/internal/infrastructure/storageclient"
	"parley-server/services/chat-api/internal/infrastructure/summarizer"
	"parley-server/services/chat-api/internal/interfaces/httpserver"
	"parley-server/services/chat-api/internal/interfaces/httpserver/handlers"
)

// @title Chat API
// @version 1.0
// @description Chat persistence and sharing service with threads, messages, attachments and provider settings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DatabaseURL: cfg.DatabaseURL,
		ReplicaURL:  cfg.DatabaseReplicaURL,
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	presets, err := config.LoadPersonaPresets(cfg.PersonaPresetsPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("load persona presets")
	}

	storage := storageclient.NewClient(cfg)
	summaryGenerator := summarizer.NewClient(cfg)

	attachmentService := attachment.NewService(attachmentrepo.NewRepository(db), storage, log)
	hydrator := attachment.NewHydrator(storage, log)
	threadRepo := threadrepo.NewRepository(db)
	threadService := thread.NewService(threadRepo, log)
	messageService := message.NewService(messagerepo.NewRepository(db), threadRepo, attachmentrepo.NewRepository(db), hydrator, log)
	shareService := share.NewService(sharerepo.NewRepository(db), messageService, log)

	// A nil client means no summarizer backend is configured. Leave the
	// interface nil so generation reports not implemented.
	var generator summary.Generator
	if summaryGenerator != nil {
		generator = summaryGenerator
	}
	summaryService := summary.NewService(summaryrepo.NewRepository(db), messageService, generator, log)
	userService := user.NewService(userrepo.NewRepository(db), log)

	services := handlers.Services{
		Threads:     threadService,
		Messages:    messageService,
		Shares:      shareService,
		Projects:    project.NewService(projectrepo.NewRepository(db), log),
		Personas:    persona.NewService(personarepo.NewRepository(db), presets, log),
		Pins:        pin.NewService(pinrepo.NewRepository(db), log),
		Summaries:   summaryService,
		CodeConvs:   codeconv.NewService(codeconvrepo.NewRepository(db), log),
		Attachments: attachmentService,
		Profiles:    profile.NewService(profilerepo.NewRepository(db), log),
		Preferences: preferences.NewService(preferencesrepo.NewRepository(db), log),
	}

	authValidator, err := auth.NewValidator(ctx, cfg, userService, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	if cfg.CronEnabled {
		cron := crontab.NewCrontab(cfg, shareService)
		go func() {
			if err := cron.Run(ctx); err != nil {
				log.Error().Err(err).Msg("crontab stopped with error")
			}
		}()
	}

	httpServer := httpserver.New(cfg, log, db, services, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
