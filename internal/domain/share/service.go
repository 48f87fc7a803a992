package share

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

// CreateParams carries the payload for creating a share.
type CreateParams struct {
	ThreadID    string
	Title       string
	Description string
	IsPublic    bool
	Password    string
	ExpiresAt   *time.Time
}

// UpdateParams carries a partial share update. Nil fields are left
// unchanged; Clear flags reset the optional columns.
type UpdateParams struct {
	Title         *string
	Description   *string
	IsPublic      *bool
	Password      *string
	ClearPassword bool
	ExpiresAt     *time.Time
	ClearExpiry   bool
}

// Service implements share creation, owner management and the
// server-mediated public access path.
type Service struct {
	repo     Repository
	messages *message.Service
	log      zerolog.Logger
}

// NewService creates a share service.
func NewService(repo Repository, messages *message.Service, log zerolog.Logger) *Service {
	return &Service{repo: repo, messages: messages, log: log.With().Str("component", "share_service").Logger()}
}

// Create generates a token and persists the share for the current user.
func (s *Service) Create(ctx context.Context, params CreateParams) (*SharedThread, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	token, err := GenerateToken()
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"failed to generate share token",
			err,
			"share-token-generate-failed",
		)
	}

	now := time.Now().UTC()
	shared := &SharedThread{
		ID:          uuid.NewString(),
		ThreadID:    params.ThreadID,
		UserID:      userID,
		Token:       token,
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		IsPublic:    params.IsPublic,
		ExpiresAt:   params.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if params.Password != "" {
		hash := HashPassword(params.Password)
		shared.PasswordHash = &hash
	}

	if err := s.repo.Create(ctx, shared); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("share_id", shared.ID).
		Str("thread_id", shared.ThreadID).
		Msg("created shared thread")
	return shared, nil
}

// ListMine returns the current user's shares.
func (s *Service) ListMine(ctx context.Context) ([]*SharedThread, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// Update applies a partial update to an owned share.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*SharedThread, error) {
	owned, err := s.loadOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		owned.Title = strings.TrimSpace(*params.Title)
	}
	if params.Description != nil {
		owned.Description = strings.TrimSpace(*params.Description)
	}
	if params.IsPublic != nil {
		owned.IsPublic = *params.IsPublic
	}
	if params.ClearPassword {
		owned.PasswordHash = nil
	} else if params.Password != nil && *params.Password != "" {
		hash := HashPassword(*params.Password)
		owned.PasswordHash = &hash
	}
	if params.ClearExpiry {
		owned.ExpiresAt = nil
	} else if params.ExpiresAt != nil {
		owned.ExpiresAt = params.ExpiresAt
	}
	owned.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, owned); err != nil {
		return nil, err
	}
	return owned, nil
}

// Delete removes an owned share.
func (s *Service) Delete(ctx context.Context, id string) error {
	owned, err := s.loadOwned(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, owned.ID)
}

// ResolveByToken is the public access path: it checks revocation,
// expiry, visibility and the password gate, then counts the view.
func (s *Service) ResolveByToken(ctx context.Context, token, password string) (*SharedThread, error) {
	shared, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if shared.Revoked() || shared.Expired(now) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			"shared thread has expired",
			nil,
			"share-expired",
		)
	}
	if !shared.IsPublic {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden,
			"shared thread is not public",
			nil,
			"share-not-public",
		)
	}
	if shared.PasswordHash != nil {
		if password == "" {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerDomain,
				platformerrors.ErrorTypeUnauthorized,
				"password required",
				nil,
				"share-password-required",
			)
		}
		if !VerifyPassword(password, *shared.PasswordHash) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerDomain,
				platformerrors.ErrorTypeUnauthorized,
				"invalid password",
				nil,
				"share-password-invalid",
			)
		}
	}

	if err := s.repo.IncrementViewCount(ctx, shared.ID); err != nil {
		s.log.Warn().Err(err).Str("share_id", shared.ID).Msg("failed to increment view count")
	}
	return shared, nil
}

// MessagesByToken returns the shared thread's messages after the same
// gating as ResolveByToken.
func (s *Service) MessagesByToken(ctx context.Context, token, password string) ([]*message.Message, error) {
	shared, err := s.ResolveByToken(ctx, token, password)
	if err != nil {
		return nil, err
	}
	return s.messages.ListByThread(ctx, shared.ThreadID)
}

// RevokeExpired marks all past-expiry shares revoked. Invoked by the
// scheduled job.
func (s *Service) RevokeExpired(ctx context.Context) (int64, error) {
	revoked, err := s.repo.RevokeExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if revoked > 0 {
		s.log.Info().Int64("revoked", revoked).Msg("revoked expired shares")
	}
	return revoked, nil
}

func (s *Service) loadOwned(ctx context.Context, id string) (*SharedThread, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found.UserID != userID {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden,
			"share is owned by another user",
			nil,
			"share-not-owned",
		)
	}
	return found, nil
}
