package attachmentrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "parley-server/services/chat-api/internal/domain/attachment"

	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Repository persists file attachments.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an attachment repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Insert stores one attachment row.
func (r *Repository) Insert(ctx context.Context, att *domain.FileAttachment) error {
	entity := entities.NewSchemaFileAttachment(att)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to insert attachment",
			err,
			"attachment-insert-db-error",
		)
	}
	return nil
}

// FindByID fetches one attachment.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.FileAttachment, error) {
	var entity entities.FileAttachment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("attachment not found: %s", id),
				nil,
				"attachment-find-by-id-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch attachment",
			err,
			"attachment-find-by-id-db-error",
		)
	}
	return entity.EtoD(), nil
}

// ListByMessage fetches attachments referencing a message.
func (r *Repository) ListByMessage(ctx context.Context, messageID string) ([]*domain.FileAttachment, error) {
	return r.list(ctx, "message_id = ?", messageID)
}

// ListByThread fetches attachments belonging to a thread.
func (r *Repository) ListByThread(ctx context.Context, threadID string) ([]*domain.FileAttachment, error) {
	return r.list(ctx, "thread_id = ?", threadID)
}

// ListByUser fetches attachments owned by a user.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.FileAttachment, error) {
	return r.list(ctx, "user_id = ?", userID)
}

// Delete removes one attachment row.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&entities.FileAttachment{}, "id = ?", id).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete attachment",
			err,
			"attachment-delete-db-error",
		)
	}
	return nil
}

func (r *Repository) list(ctx context.Context, cond string, arg any) ([]*domain.FileAttachment, error) {
	var rows []entities.FileAttachment
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list attachments",
			err,
			"attachment-list-db-error",
		)
	}

	attachments := make([]*domain.FileAttachment, len(rows))
	for i := range rows {
		attachments[i] = rows[i].EtoD()
	}
	return attachments, nil
}
