package pin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// PinnedMessage marks a message a user wants quick access to. A user
// can pin a given message at most once.
type PinnedMessage struct {
	ID        string
	UserID    string
	ThreadID  string
	MessageID string
	CreatedAt time.Time
}

// Repository persists pinned messages.
type Repository interface {
	Insert(ctx context.Context, pinned *PinnedMessage) error
	ListByUser(ctx context.Context, userID string) ([]*PinnedMessage, error)
	ListByThreadAndUser(ctx context.Context, threadID, userID string) ([]*PinnedMessage, error)
	DeleteByMessageAndUser(ctx context.Context, messageID, userID string) error
}

// Service implements pin operations.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService creates a pin service.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "pin_service").Logger()}
}

// Pin records a pinned message for the current user. Pinning an
// already-pinned message is a no-op.
func (s *Service) Pin(ctx context.Context, threadID, messageID string) (*PinnedMessage, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	pinned := &PinnedMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		ThreadID:  threadID,
		MessageID: messageID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, pinned); err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			return pinned, nil
		}
		return nil, err
	}
	return pinned, nil
}

// Unpin removes the current user's pin on a message.
func (s *Service) Unpin(ctx context.Context, messageID string) error {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteByMessageAndUser(ctx, messageID, userID)
}

// ListMine returns all of the current user's pins.
func (s *Service) ListMine(ctx context.Context) ([]*PinnedMessage, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// ListByThread returns the current user's pins within one thread.
func (s *Service) ListByThread(ctx context.Context, threadID string) ([]*PinnedMessage, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByThreadAndUser(ctx, threadID, userID)
}
