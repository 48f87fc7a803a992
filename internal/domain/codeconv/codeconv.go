package codeconv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// CodeConversion records one source-to-target language conversion a
// user performed, optionally tied to the thread it happened in.
type CodeConversion struct {
	ID             string
	UserID         string
	ThreadID       *string
	SourceLanguage string
	TargetLanguage string
	InputCode      string
	OutputCode     string
	CreatedAt      time.Time
}

// Repository persists code conversions.
type Repository interface {
	Insert(ctx context.Context, conversion *CodeConversion) error
	FindByID(ctx context.Context, id string) (*CodeConversion, error)
	ListByUser(ctx context.Context, userID string) ([]*CodeConversion, error)
	Delete(ctx context.Context, id string) error
}

// Service implements code conversion history operations.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService creates a code conversion service.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "codeconv_service").Logger()}
}

// Record stores a completed conversion for the current user.
func (s *Service) Record(ctx context.Context, threadID *string, sourceLang, targetLang, input, output string) (*CodeConversion, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	recorded := &CodeConversion{
		ID:             uuid.NewString(),
		UserID:         userID,
		ThreadID:       threadID,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		InputCode:      input,
		OutputCode:     output,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, recorded); err != nil {
		return nil, err
	}
	return recorded, nil
}

// Get returns one conversion, or nil when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*CodeConversion, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return found, nil
}

// ListMine returns the current user's conversion history.
func (s *Service) ListMine(ctx context.Context) ([]*CodeConversion, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes an owned conversion.
func (s *Service) Delete(ctx context.Context, id string) error {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return err
	}
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil
		}
		return err
	}
	if found.UserID != userID {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden,
			"code conversion is owned by another user",
			nil,
			"codeconv-not-owned",
		)
	}
	return s.repo.Delete(ctx, id)
}
