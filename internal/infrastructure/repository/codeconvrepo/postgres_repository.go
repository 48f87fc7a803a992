package codeconvrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "parley-server/services/chat-api/internal/domain/codeconv"

	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Repository persists code conversion records.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a code conversion repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Insert stores one conversion record.
func (r *Repository) Insert(ctx context.Context, c *domain.CodeConversion) error {
	entity := entities.NewSchemaCodeConversion(c)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to insert code conversion",
			err,
			"codeconv-insert-db-error",
		)
	}
	return nil
}

// FindByID fetches one conversion record.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.CodeConversion, error) {
	var entity entities.CodeConversion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("code conversion not found: %s", id),
				nil,
				"codeconv-find-by-id-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch code conversion",
			err,
			"codeconv-find-by-id-db-error",
		)
	}
	return entity.EtoD(), nil
}

// ListByUser fetches a user's conversion history, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.CodeConversion, error) {
	var rows []entities.CodeConversion
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list code conversions",
			err,
			"codeconv-list-db-error",
		)
	}

	conversions := make([]*domain.CodeConversion, len(rows))
	for i := range rows {
		conversions[i] = rows[i].EtoD()
	}
	return conversions, nil
}

// Delete removes one conversion record.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&entities.CodeConversion{}, "id = ?", id).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete code conversion",
			err,
			"codeconv-delete-db-error",
		)
	}
	return nil
}
