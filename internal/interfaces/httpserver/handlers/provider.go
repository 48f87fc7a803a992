package handlers

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

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
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Thread     *ThreadHandler
	Message    *MessageHandler
	Share      *ShareHandler
	Project    *ProjectHandler
	Persona    *PersonaHandler
	Pin        *PinHandler
	Summary    *SummaryHandler
	CodeConv   *CodeConversionHandler
	Attachment *AttachmentHandler
	User       *UserHandler
	Settings   *SettingsHandler
}

// Services bundles the domain services the handlers depend on.
type Services struct {
	Threads     *thread.Service
	Messages    *message.Service
	Shares      *share.Service
	Projects    *project.Service
	Personas    *persona.Service
	Pins        *pin.Service
	Summaries   *summary.Service
	CodeConvs   *codeconv.Service
	Attachments *attachment.Service
	Profiles    *profile.Service
	Preferences *preferences.Service
}

// NewProvider constructs the handler provider.
func NewProvider(db *gorm.DB, cfg *config.Config, services Services, log zerolog.Logger) *Provider {
	return &Provider{
		Thread:     NewThreadHandler(services.Threads, log),
		Message:    NewMessageHandler(services.Messages, log),
		Share:      NewShareHandler(services.Shares, log),
		Project:    NewProjectHandler(services.Projects, services.Threads, log),
		Persona:    NewPersonaHandler(services.Personas, log),
		Pin:        NewPinHandler(services.Pins, log),
		Summary:    NewSummaryHandler(services.Summaries, log),
		CodeConv:   NewCodeConversionHandler(services.CodeConvs, log),
		Attachment: NewAttachmentHandler(services.Attachments, log),
		User:       NewUserHandler(services.Profiles, services.Preferences, log),
		Settings:   NewSettingsHandler(db, cfg, services.Preferences, log),
	}
}
