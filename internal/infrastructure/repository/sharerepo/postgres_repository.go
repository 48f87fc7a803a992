package sharerepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "parley-server/services/chat-api/internal/domain/share"

	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/infrastructure/repository/pgerr"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Repository persists shared threads.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a share repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Create inserts the share record. A colliding token surfaces as a
// CONFLICT; the caller regenerates.
func (r *Repository) Create(ctx context.Context, shared *domain.SharedThread) error {
	entity := entities.NewSchemaSharedThread(shared)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"share token already exists",
				err,
				"share-create-conflict",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create share",
			err,
			"share-create-db-error",
		)
	}
	return nil
}

// FindByID fetches one share.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.SharedThread, error) {
	return r.findOne(ctx, "id = ?", id, fmt.Sprintf("share not found: %s", id))
}

// FindByToken fetches one share by its public token.
func (r *Repository) FindByToken(ctx context.Context, token string) (*domain.SharedThread, error) {
	return r.findOne(ctx, "token = ?", token, "share not found")
}

// ListByUser fetches a user's shares, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.SharedThread, error) {
	var rows []entities.SharedThread
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list shares",
			err,
			"share-list-db-error",
		)
	}

	shares := make([]*domain.SharedThread, len(rows))
	for i := range rows {
		shares[i] = rows[i].EtoD()
	}
	return shares, nil
}

// Update saves the full share row.
func (r *Repository) Update(ctx context.Context, shared *domain.SharedThread) error {
	entity := entities.NewSchemaSharedThread(shared)
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update share",
			err,
			"share-update-db-error",
		)
	}
	return nil
}

// Delete removes one share.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&entities.SharedThread{}, "id = ?", id).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete share",
			err,
			"share-delete-db-error",
		)
	}
	return nil
}

// IncrementViewCount bumps the view counter atomically.
func (r *Repository) IncrementViewCount(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Model(&entities.SharedThread{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to increment view count",
			err,
			"share-increment-views-db-error",
		)
	}
	return nil
}

// RevokeExpired marks every past-expiry share revoked and returns how
// many rows changed.
func (r *Repository) RevokeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.SharedThread{}).
		Where("expires_at IS NOT NULL").
		Where("expires_at < ?", now).
		Where("revoked_at IS NULL").
		Update("revoked_at", now)
	if result.Error != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to revoke expired shares",
			result.Error,
			"share-revoke-expired-db-error",
		)
	}
	return result.RowsAffected, nil
}

func (r *Repository) findOne(ctx context.Context, cond string, arg any, notFoundMsg string) (*domain.SharedThread, error) {
	var entity entities.SharedThread
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				notFoundMsg,
				nil,
				"share-find-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch share",
			err,
			"share-find-db-error",
		)
	}
	return entity.EtoD(), nil
}
