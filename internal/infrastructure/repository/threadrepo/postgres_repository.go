package threadrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "parley-server/services/chat-api/internal/domain/thread"

	"parley-server/services/chat-api/internal/domain/query"
	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/infrastructure/repository/pgerr"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Repository persists threads.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a thread repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Create inserts the thread record. Duplicate ids surface as a
// CONFLICT so callers can tolerate concurrent creators.
func (r *Repository) Create(ctx context.Context, t *domain.Thread) error {
	entity := entities.NewSchemaThread(t)

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				fmt.Sprintf("thread already exists: %s", t.ID),
				err,
				"thread-create-conflict",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create thread",
			err,
			"thread-create-db-error",
		)
	}
	return nil
}

// FindByID fetches one thread.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Thread, error) {
	var entity entities.Thread
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("thread not found: %s", id),
				nil,
				"thread-find-by-id-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch thread",
			err,
			"thread-find-by-id-db-error",
		)
	}
	return entity.EtoD(), nil
}

// FindByFilter fetches threads matching the filter, ordered by most
// recent activity first.
func (r *Repository) FindByFilter(ctx context.Context, filter domain.Filter, pagination *query.Pagination) ([]*domain.Thread, error) {
	tx := r.db.WithContext(ctx).Model(&entities.Thread{})

	if filter.ID != nil {
		tx = tx.Where("id = ?", *filter.ID)
	}
	if filter.UserID != nil {
		tx = tx.Where("user_id = ?", *filter.UserID)
	}
	if filter.ProjectID != nil {
		tx = tx.Where("project_id = ?", *filter.ProjectID)
	}
	if !filter.IncludeArchived {
		tx = tx.Where("archived = ?", false)
	}

	tx = tx.Order("last_message_at DESC")
	if pagination != nil {
		tx = tx.Offset(pagination.Offset()).Limit(pagination.PageSize)
	}

	var rows []entities.Thread
	if err := tx.Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find threads",
			err,
			"thread-find-by-filter-db-error",
		)
	}

	threads := make([]*domain.Thread, len(rows))
	for i := range rows {
		threads[i] = rows[i].EtoD()
	}
	return threads, nil
}

// Update saves the full thread row.
func (r *Repository) Update(ctx context.Context, t *domain.Thread) error {
	entity := entities.NewSchemaThread(t)
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update thread",
			err,
			"thread-update-db-error",
		)
	}
	return nil
}

// Delete removes one thread. Messages and attachments cascade at the
// store level.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&entities.Thread{}, "id = ?", id).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete thread",
			err,
			"thread-delete-db-error",
		)
	}
	return nil
}

// DeleteAllByUser removes every thread owned by the user.
func (r *Repository) DeleteAllByUser(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Delete(&entities.Thread{}, "user_id = ?", userID).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete user threads",
			err,
			"thread-delete-all-db-error",
		)
	}
	return nil
}

// TouchLastMessageAt bumps the thread's activity timestamp.
func (r *Repository) TouchLastMessageAt(ctx context.Context, id string, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&entities.Thread{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_message_at": at,
			"updated_at":      at,
		}).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to touch thread activity",
			err,
			"thread-touch-db-error",
		)
	}
	return nil
}
