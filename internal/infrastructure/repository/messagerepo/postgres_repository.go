package messagerepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "parley-server/services/chat-api/internal/domain/message"

	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Repository persists messages.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a message repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Upsert inserts the message or replaces the row with the same id.
// Retried submissions land on the conflict branch and stay one row.
func (r *Repository) Upsert(ctx context.Context, msg *domain.Message) error {
	entity := entities.NewSchemaMessage(msg)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"thread_id":  entity.ThreadID,
				"user_id":    entity.UserID,
				"role":       entity.Role,
				"content":    entity.Content,
				"parts":      entity.Parts,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(entity).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to upsert message",
			err,
			"message-upsert-db-error",
		)
	}
	return nil
}

// FindByID fetches one message.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	var entity entities.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("message not found: %s", id),
				nil,
				"message-find-by-id-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch message",
			err,
			"message-find-by-id-db-error",
		)
	}
	return entity.EtoD(), nil
}

// ListByThread fetches a thread's messages ordered by creation time
// ascending.
func (r *Repository) ListByThread(ctx context.Context, threadID string) ([]*domain.Message, error) {
	var rows []entities.Message
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"message-list-db-error",
		)
	}

	msgs := make([]*domain.Message, len(rows))
	for i := range rows {
		msgs[i] = rows[i].EtoD()
	}
	return msgs, nil
}

// UpdateContent rewrites one message's content.
func (r *Repository) UpdateContent(ctx context.Context, id, content string) error {
	err := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update message content",
			err,
			"message-update-content-db-error",
		)
	}
	return nil
}

// DeleteTrailing removes the thread's messages past the cutoff,
// comparing on the authoritative creation timestamp.
func (r *Repository) DeleteTrailing(ctx context.Context, threadID string, cutoff time.Time, inclusive bool) (int64, error) {
	comparison := "created_at > ?"
	if inclusive {
		comparison = "created_at >= ?"
	}

	result := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Where(comparison, cutoff).
		Delete(&entities.Message{})
	if result.Error != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete trailing messages",
			result.Error,
			"message-delete-trailing-db-error",
		)
	}
	return result.RowsAffected, nil
}
