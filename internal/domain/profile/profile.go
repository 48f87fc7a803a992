package profile

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// UserProfile holds display information keyed by the user id.
type UserProfile struct {
	UserID      string
	DisplayName string
	Bio         string
	AvatarURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Repository persists user profiles.
type Repository interface {
	Upsert(ctx context.Context, profile *UserProfile) error
	FindByUser(ctx context.Context, userID string) (*UserProfile, error)
}

// Service implements profile operations.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService creates a profile service.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "profile_service").Logger()}
}

// Get returns the current user's profile, or nil when none exists yet.
func (s *Service) Get(ctx context.Context) (*UserProfile, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	found, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return found, nil
}

// Save upserts the current user's profile.
func (s *Service) Save(ctx context.Context, displayName, bio, avatarURL string) (*UserProfile, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	saved := &UserProfile{
		UserID:      userID,
		DisplayName: strings.TrimSpace(displayName),
		Bio:         bio,
		AvatarURL:   strings.TrimSpace(avatarURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Upsert(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}
