package summaryrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "parley-server/services/chat-api/internal/domain/summary"

	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Repository persists per-thread message summaries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a summary repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Upsert writes the summary for a thread, replacing any previous one.
func (r *Repository) Upsert(ctx context.Context, s *domain.MessageSummary) error {
	entity := entities.NewSchemaMessageSummary(s)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "thread_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"summary":    entity.Summary,
				"model":      entity.Model,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(entity).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to upsert summary",
			err,
			"summary-upsert-db-error",
		)
	}
	return nil
}

// FindByThread fetches the summary stored for a thread.
func (r *Repository) FindByThread(ctx context.Context, threadID string) (*domain.MessageSummary, error) {
	var entity entities.MessageSummary
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"summary not found",
				nil,
				"summary-find-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch summary",
			err,
			"summary-find-db-error",
		)
	}
	return entity.EtoD(), nil
}

// DeleteByThread removes the thread's summary if one exists.
func (r *Repository) DeleteByThread(ctx context.Context, threadID string) error {
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Delete(&entities.MessageSummary{}).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete summary",
			err,
			"summary-delete-db-error",
		)
	}
	return nil
}
