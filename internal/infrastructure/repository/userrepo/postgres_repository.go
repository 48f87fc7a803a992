package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "parley-server/services/chat-api/internal/domain/user"

	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Repository persists user records keyed by token subject.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a user repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Upsert writes the user row, refreshing contact fields on repeat logins.
func (r *Repository) Upsert(ctx context.Context, u *domain.User) error {
	entity := entities.NewSchemaUser(u)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "subject"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"email":      entity.Email,
				"username":   entity.Username,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(entity).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to upsert user",
			err,
			"user-upsert-db-error",
		)
	}
	return nil
}

// FindBySubject fetches a user by token subject.
func (r *Repository) FindBySubject(ctx context.Context, subject string) (*domain.User, error) {
	var entity entities.User
	err := r.db.WithContext(ctx).
		Where("subject = ?", subject).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"user not found",
				nil,
				"user-find-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch user",
			err,
			"user-find-db-error",
		)
	}
	return entity.EtoD(), nil
}
