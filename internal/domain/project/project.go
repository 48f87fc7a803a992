package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Project groups threads under a user-defined label.
type Project struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Repository persists projects.
type Repository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	ListByUser(ctx context.Context, userID string) ([]*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
}

// Service implements owner-scoped project operations.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService creates a project service.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "project_service").Logger()}
}

// ListMine returns the current user's projects.
func (s *Service) ListMine(ctx context.Context) ([]*Project, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// Get returns one project, or nil when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return found, nil
}

// Create stores a new project for the current user.
func (s *Service) Create(ctx context.Context, name, description, color string) (*Project, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := &Project{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update rewrites a project's fields.
func (s *Service) Update(ctx context.Context, id, name, description, color string) (*Project, error) {
	owned, err := s.loadOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	owned.Name = strings.TrimSpace(name)
	owned.Description = strings.TrimSpace(description)
	owned.Color = color
	owned.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, owned); err != nil {
		return nil, err
	}
	return owned, nil
}

// Delete removes a project. Threads keep existing with their project
// reference cleared at the store level.
func (s *Service) Delete(ctx context.Context, id string) error {
	owned, err := s.loadOwned(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, owned.ID)
}

func (s *Service) loadOwned(ctx context.Context, id string) (*Project, error) {
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
			"project is owned by another user",
			nil,
			"project-not-owned",
		)
	}
	return found, nil
}
