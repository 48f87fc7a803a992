package projectrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "parley-server/services/chat-api/internal/domain/project"

	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Repository persists projects.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a project repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Create inserts the project record.
func (r *Repository) Create(ctx context.Context, p *domain.Project) error {
	entity := entities.NewSchemaProject(p)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create project",
			err,
			"project-create-db-error",
		)
	}
	return nil
}

// FindByID fetches one project.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	var entity entities.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("project not found: %s", id),
				nil,
				"project-find-by-id-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch project",
			err,
			"project-find-by-id-db-error",
		)
	}
	return entity.EtoD(), nil
}

// ListByUser fetches a user's projects.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Project, error) {
	var rows []entities.Project
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list projects",
			err,
			"project-list-db-error",
		)
	}

	projects := make([]*domain.Project, len(rows))
	for i := range rows {
		projects[i] = rows[i].EtoD()
	}
	return projects, nil
}

// Update saves the full project row.
func (r *Repository) Update(ctx context.Context, p *domain.Project) error {
	entity := entities.NewSchemaProject(p)
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update project",
			err,
			"project-update-db-error",
		)
	}
	return nil
}

// Delete removes one project. Member threads keep existing with their
// project reference nulled at the store level.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&entities.Project{}, "id = ?", id).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete project",
			err,
			"project-delete-db-error",
		)
	}
	return nil
}
