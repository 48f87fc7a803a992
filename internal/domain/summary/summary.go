package summary

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/domain/message"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// MessageSummary is a stored condensation of a thread's messages.
type MessageSummary struct {
	ID        string
	ThreadID  string
	UserID    string
	Summary   string
	Model     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository persists message summaries.
type Repository interface {
	Upsert(ctx context.Context, summary *MessageSummary) error
	FindByThread(ctx context.Context, threadID string) (*MessageSummary, error)
	DeleteByThread(ctx context.Context, threadID string) error
}

// Generator produces a summary for conversation content.
type Generator interface {
	Summarize(ctx context.Context, content string) (text string, model string, err error)
}

// Service implements summary storage and generation.
type Service struct {
	repo      Repository
	messages  *message.Service
	generator Generator
	log       zerolog.Logger
}

// NewService creates a summary service. generator may be nil when no
// summarizer endpoint is configured.
func NewService(repo Repository, messages *message.Service, generator Generator, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		messages:  messages,
		generator: generator,
		log:       log.With().Str("component", "summary_service").Logger(),
	}
}

// Get returns the thread's summary, or nil when none exists.
func (s *Service) Get(ctx context.Context, threadID string) (*MessageSummary, error) {
	found, err := s.repo.FindByThread(ctx, threadID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return found, nil
}

// Set stores a caller-supplied summary for the thread.
func (s *Service) Set(ctx context.Context, threadID, text string) (*MessageSummary, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.upsert(ctx, threadID, userID, strings.TrimSpace(text), "")
}

// Generate summarizes the thread's current messages through the
// configured generator and stores the result.
func (s *Service) Generate(ctx context.Context, threadID string) (*MessageSummary, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotImplemented,
			"no summarizer configured",
			nil,
			"summary-generator-missing",
		)
	}

	msgs, err := s.messages.ListByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	var builder strings.Builder
	for _, msg := range msgs {
		if msg.Content == "" {
			continue
		}
		builder.WriteString(string(msg.Role))
		builder.WriteString(": ")
		builder.WriteString(msg.Content)
		builder.WriteString("\n")
	}

	text, model, err := s.generator.Summarize(ctx, builder.String())
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeExternal,
			"summarizer call failed",
			err,
			"summary-generate-failed",
		)
	}
	return s.upsert(ctx, threadID, userID, text, model)
}

// Delete removes the thread's summary.
func (s *Service) Delete(ctx context.Context, threadID string) error {
	if _, err := domain.ResolveCurrentUser(ctx); err != nil {
		return err
	}
	return s.repo.DeleteByThread(ctx, threadID)
}

func (s *Service) upsert(ctx context.Context, threadID, userID, text, model string) (*MessageSummary, error) {
	now := time.Now().UTC()
	stored := &MessageSummary{
		ID:        uuid.NewString(),
		ThreadID:  threadID,
		UserID:    userID,
		Summary:   text,
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}
