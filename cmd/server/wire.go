//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
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
	"parley-server/services/chat-api/internal/infrastructure/database"
	"parley-server/services/chat-api/internal/infrastructure/logger"
	"parley-server/services/chat-api/internal/infrastructure/repository"
	"parley-server/services/chat-api/internal/infrastructure/storageclient"
	"parley-server/services/chat-api/internal/infrastructure/summarizer"
	"parley-server/services/chat-api/internal/interfaces/httpserver"
	"parley-server/services/chat-api/internal/interfaces/httpserver/handlers"
)

var serviceSet = wire.NewSet(
	repository.Provider,
	storageclient.NewClient,
	wire.Bind(new(attachment.StorageRemover), new(*storageclient.Client)),
	wire.Bind(new(attachment.ContentFetcher), new(*storageclient.Client)),
	summarizer.NewClient,
	wire.Bind(new(summary.Generator), new(*summarizer.Client)),
	attachment.NewService,
	attachment.NewHydrator,
	thread.NewService,
	message.NewService,
	share.NewService,
	project.NewService,
	newPersonaService,
	pin.NewService,
	summary.NewService,
	codeconv.NewService,
	profile.NewService,
	preferences.NewService,
	user.NewService,
	wire.Struct(new(handlers.Services), "*"),
)

// BuildApplication demonstrates how to assemble the chat service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		newAuthValidator,
		serviceSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DatabaseURL: cfg.DatabaseURL,
		ReplicaURL:  cfg.DatabaseReplicaURL,
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    gormlogger.Warn,
	}
}

func newGormDB(cfg database.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, users *user.Service, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, users, log)
}

func newPersonaService(repo persona.Repository, cfg *config.Config, log zerolog.Logger) (*persona.Service, error) {
	presets, err := config.LoadPersonaPresets(cfg.PersonaPresetsPath, log)
	if err != nil {
		return nil, err
	}
	return persona.NewService(repo, presets, log), nil
}
