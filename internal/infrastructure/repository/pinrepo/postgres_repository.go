package pinrepo

import (
	"context"

	"gorm.io/gorm"

	domain "parley-server/services/chat-api/internal/domain/pin"

	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/infrastructure/repository/pgerr"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Repository persists pinned messages.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a pin repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Insert stores a pin. A second pin of the same message by the same
// user hits the unique index and surfaces as a conflict.
func (r *Repository) Insert(ctx context.Context, p *domain.PinnedMessage) error {
	entity := entities.NewSchemaPinnedMessage(p)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"message already pinned",
				err,
				"pin-insert-conflict",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to insert pin",
			err,
			"pin-insert-db-error",
		)
	}
	return nil
}

// ListByUser fetches all of a user's pins, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.PinnedMessage, error) {
	return r.list(ctx, "user_id = ?", userID)
}

// ListByThreadAndUser fetches a user's pins inside one thread.
func (r *Repository) ListByThreadAndUser(ctx context.Context, threadID, userID string) ([]*domain.PinnedMessage, error) {
	return r.list(ctx, "thread_id = ? AND user_id = ?", threadID, userID)
}

// DeleteByMessageAndUser removes the pin for one message.
func (r *Repository) DeleteByMessageAndUser(ctx context.Context, messageID, userID string) error {
	err := r.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Delete(&entities.PinnedMessage{}).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete pin",
			err,
			"pin-delete-db-error",
		)
	}
	return nil
}

func (r *Repository) list(ctx context.Context, cond string, args ...any) ([]*domain.PinnedMessage, error) {
	var rows []entities.PinnedMessage
	err := r.db.WithContext(ctx).
		Where(cond, args...).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list pins",
			err,
			"pin-list-db-error",
		)
	}

	pins := make([]*domain.PinnedMessage, len(rows))
	for i := range rows {
		pins[i] = rows[i].EtoD()
	}
	return pins, nil
}
