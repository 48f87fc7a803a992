package preferencesrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "parley-server/services/chat-api/internal/domain/preferences"

	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/infrastructure/repository/pgerr"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Repository persists user preference documents. The backing table is
// optional per deployment, so an undefined-table error is reported as
// not-implemented rather than a database failure.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a preferences repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Upsert writes the preference document keyed by user id.
func (r *Repository) Upsert(ctx context.Context, p *domain.UserPreferences) error {
	entity := entities.NewSchemaUserPreferences(p)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"preferences": entity.Preferences,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).
		Create(entity).Error
	if err != nil {
		if pgerr.IsUndefinedTable(err) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotImplemented,
				"preferences storage not provisioned",
				err,
				"preferences-upsert-not-provisioned",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to upsert preferences",
			err,
			"preferences-upsert-db-error",
		)
	}
	return nil
}

// FindByUser fetches the preference document for one user.
func (r *Repository) FindByUser(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	var entity entities.UserPreferences
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"preferences not found",
				nil,
				"preferences-find-not-found",
			)
		}
		if pgerr.IsUndefinedTable(err) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotImplemented,
				"preferences storage not provisioned",
				err,
				"preferences-find-not-provisioned",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch preferences",
			err,
			"preferences-find-db-error",
		)
	}
	return entity.EtoD(), nil
}
