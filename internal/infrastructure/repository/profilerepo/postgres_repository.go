package profilerepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "parley-server/services/chat-api/internal/domain/profile"

	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Repository persists user profiles.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a profile repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Upsert writes the profile row keyed by user id.
func (r *Repository) Upsert(ctx context.Context, p *domain.UserProfile) error {
	entity := entities.NewSchemaUserProfile(p)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"display_name": entity.DisplayName,
				"bio":          entity.Bio,
				"avatar_url":   entity.AvatarURL,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).
		Create(entity).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to upsert profile",
			err,
			"profile-upsert-db-error",
		)
	}
	return nil
}

// FindByUser fetches the profile for one user.
func (r *Repository) FindByUser(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var entity entities.UserProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"profile not found",
				nil,
				"profile-find-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch profile",
			err,
			"profile-find-db-error",
		)
	}
	return entity.EtoD(), nil
}
