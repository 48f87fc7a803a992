package preferences

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// UserPreferences is an opaque JSON document of client settings keyed
// by the user id. The backing table is optional infrastructure; when
// it is missing, reads return nil and writes succeed silently, and the
// client falls back to local storage.
type UserPreferences struct {
	UserID      string
	Preferences map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Repository persists user preferences. Implementations translate an
// undefined_table condition into ErrorTypeNotImplemented so the
// service can treat the table as absent.
type Repository interface {
	Upsert(ctx context.Context, prefs *UserPreferences) error
	FindByUser(ctx context.Context, userID string) (*UserPreferences, error)
}

// Service implements preferences operations.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService creates a preferences service.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "preferences_service").Logger()}
}

// Get returns the current user's preferences. A missing row and a
// missing table both yield nil.
func (s *Service) Get(ctx context.Context) (*UserPreferences, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	found, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, nil
		}
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotImplemented) {
			s.log.Debug().Str("user_id", userID).Msg("preferences table absent, returning empty")
			return nil, nil
		}
		return nil, err
	}
	return found, nil
}

// Save upserts the current user's preferences. When the table is
// absent, the write succeeds silently.
func (s *Service) Save(ctx context.Context, prefs map[string]any) (*UserPreferences, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	saved := &UserPreferences{
		UserID:      userID,
		Preferences: prefs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Upsert(ctx, saved); err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotImplemented) {
			s.log.Debug().Str("user_id", userID).Msg("preferences table absent, write skipped")
			return saved, nil
		}
		return nil, err
	}
	return saved, nil
}
