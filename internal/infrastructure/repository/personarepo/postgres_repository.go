package personarepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "parley-server/services/chat-api/internal/domain/persona"

	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Repository persists thread personas.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a persona repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Replace swaps the persona assigned to a thread. Runs delete plus
// insert in one transaction so a thread never carries two personas.
func (r *Repository) Replace(ctx context.Context, p *domain.ThreadPersona) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("thread_id = ? AND user_id = ?", p.ThreadID, p.UserID).
			Delete(&entities.ThreadPersona{}).Error; err != nil {
			return err
		}
		return tx.Create(entities.NewSchemaThreadPersona(p)).Error
	})
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to replace thread persona",
			err,
			"persona-replace-db-error",
		)
	}
	return nil
}

// FindByThreadAndUser fetches the persona assigned to a thread.
func (r *Repository) FindByThreadAndUser(ctx context.Context, threadID, userID string) (*domain.ThreadPersona, error) {
	var entity entities.ThreadPersona
	err := r.db.WithContext(ctx).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"thread persona not found",
				nil,
				"persona-find-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch thread persona",
			err,
			"persona-find-db-error",
		)
	}
	return entity.EtoD(), nil
}

// DeleteByThreadAndUser clears the persona assigned to a thread.
func (r *Repository) DeleteByThreadAndUser(ctx context.Context, threadID, userID string) error {
	err := r.db.WithContext(ctx).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		Delete(&entities.ThreadPersona{}).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete thread persona",
			err,
			"persona-delete-db-error",
		)
	}
	return nil
}
