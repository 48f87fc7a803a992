package thread

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/domain/query"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Service implements the thread operation contracts on top of Repository.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService creates a thread service.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "thread_service").Logger()}
}

// List returns the caller's threads ordered by most recent activity.
// Archived threads are excluded unless includeArchived is set.
func (s *Service) List(ctx context.Context, includeArchived bool, pagination *query.Pagination) ([]*Thread, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByFilter(ctx, Filter{
		UserID:          &userID,
		IncludeArchived: includeArchived,
	}, pagination)
}

// ListByProject returns the caller's threads belonging to a project.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]*Thread, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByFilter(ctx, Filter{
		UserID:          &userID,
		ProjectID:       &projectID,
		IncludeArchived: true,
	}, nil)
}

// Get returns a thread by id, or nil when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*Thread, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return found, nil
}

// Create creates a thread owned by the current user.
func (s *Service) Create(ctx context.Context, title string, projectID *string) (*Thread, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := &Thread{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         strings.TrimSpace(title),
		ProjectID:     projectID,
		CreatedAt:     now,
		UpdatedAt:     now,
		LastMessageAt: now,
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Rename updates a thread's title.
func (s *Service) Rename(ctx context.Context, id, title string) (*Thread, error) {
	owned, err := s.loadOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	owned.Title = strings.TrimSpace(title)
	owned.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, owned); err != nil {
		return nil, err
	}
	return owned, nil
}

// SetArchived flips the archived flag and touches the update timestamp.
func (s *Service) SetArchived(ctx context.Context, id string, archived bool) (*Thread, error) {
	owned, err := s.loadOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	owned.Archived = archived
	owned.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, owned); err != nil {
		return nil, err
	}
	return owned, nil
}

// MoveToProject assigns the thread to a project. A nil project id
// clears the assignment.
func (s *Service) MoveToProject(ctx context.Context, id string, projectID *string) (*Thread, error) {
	owned, err := s.loadOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	owned.ProjectID = projectID
	owned.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, owned); err != nil {
		return nil, err
	}
	return owned, nil
}

// Delete removes one thread owned by the current user.
func (s *Service) Delete(ctx context.Context, id string) error {
	owned, err := s.loadOwned(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, owned.ID)
}

// DeleteAll removes every thread owned by the current user.
func (s *Service) DeleteAll(ctx context.Context) error {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("deleting all threads for user")
	return s.repo.DeleteAllByUser(ctx, userID)
}

// loadOwned fetches a thread and verifies the caller owns it.
func (s *Service) loadOwned(ctx context.Context, id string) (*Thread, error) {
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
			"thread is owned by another user",
			nil,
			"thread-not-owned",
		)
	}
	return found, nil
}
