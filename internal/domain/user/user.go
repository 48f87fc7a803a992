package user

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
)

// User mirrors the identity provider subject locally so owned rows can
// join against a stable record.
type User struct {
	Subject   string
	Email     string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository persists users.
type Repository interface {
	Upsert(ctx context.Context, u *User) error
	FindBySubject(ctx context.Context, subject string) (*User, error)
}

// Service ensures a local user row for each authenticated principal.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService creates a user service.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "user_service").Logger()}
}

// EnsureFromPrincipal upserts the principal's user row. Called from
// the auth middleware on each authenticated request; failures are
// logged and do not block the request.
func (s *Service) EnsureFromPrincipal(ctx context.Context, principal domain.Principal) {
	now := time.Now().UTC()
	err := s.repo.Upsert(ctx, &User{
		Subject:   principal.ID,
		Email:     principal.Email,
		Username:  principal.Username,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("subject", principal.ID).Msg("failed to ensure user row")
	}
}
