package persona

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// ThreadPersona is a named system-prompt configuration attached to a
// thread. At most one persona exists per (thread, user).
type ThreadPersona struct {
	ID           string
	ThreadID     string
	UserID       string
	Name         string
	SystemPrompt string
	CreatedAt    time.Time
}

// Preset is a reusable persona template loaded from configuration.
type Preset struct {
	Name         string `yaml:"name"`
	SystemPrompt string `yaml:"system_prompt"`
}

// Repository persists thread personas.
type Repository interface {
	// Replace removes any persona for (threadID, userID) and inserts
	// the new one in a single transaction.
	Replace(ctx context.Context, persona *ThreadPersona) error
	FindByThreadAndUser(ctx context.Context, threadID, userID string) (*ThreadPersona, error)
	DeleteByThreadAndUser(ctx context.Context, threadID, userID string) error
}

// Service implements persona operations.
type Service struct {
	repo    Repository
	presets []Preset
	log     zerolog.Logger
}

// NewService creates a persona service. Presets may be nil.
func NewService(repo Repository, presets []Preset, log zerolog.Logger) *Service {
	return &Service{repo: repo, presets: presets, log: log.With().Str("component", "persona_service").Logger()}
}

// Presets returns the configured persona templates.
func (s *Service) Presets() []Preset {
	return s.presets
}

// Get returns the caller's persona for a thread, or nil when none is set.
func (s *Service) Get(ctx context.Context, threadID string) (*ThreadPersona, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	found, err := s.repo.FindByThreadAndUser(ctx, threadID, userID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return found, nil
}

// Set installs a persona for the thread, replacing any prior one. The
// final state after a successful call is exactly one persona row for
// the (thread, user) pair.
func (s *Service) Set(ctx context.Context, threadID, name, systemPrompt string) (*ThreadPersona, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	installed := &ThreadPersona{
		ID:           uuid.NewString(),
		ThreadID:     threadID,
		UserID:       userID,
		Name:         strings.TrimSpace(name),
		SystemPrompt: systemPrompt,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Replace(ctx, installed); err != nil {
		return nil, err
	}
	return installed, nil
}

// Clear removes the caller's persona for a thread.
func (s *Service) Clear(ctx context.Context, threadID string) error {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteByThreadAndUser(ctx, threadID, userID)
}
