package keystore

import (
	"context"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parley-server/services/chat-api/internal/application/settings"
	"parley-server/services/chat-api/internal/infrastructure/database/entities"
	"parley-server/services/chat-api/internal/utils/crypto"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Store keeps one user's provider API keys in the database, sealed
// with AES-GCM. It caches decrypted keys in memory after the first
// load and tracks the loading lifecycle the settings controller polls.
type Store struct {
	db     *gorm.DB
	secret string
	userID string

	mu          sync.RWMutex
	keys        map[settings.Provider]string
	loading     bool
	initialized bool
	err         error
}

// NewStore builds a key store scoped to one user.
func NewStore(db *gorm.DB, secret, userID string) *Store {
	return &Store{
		db:     db,
		secret: secret,
		userID: userID,
		keys:   make(map[settings.Provider]string),
	}
}

var _ settings.KeyStore = (*Store)(nil)

// seal encrypts one provider key under the store secret.
func (s *Store) seal(key string) (string, error) {
	return crypto.EncryptString(s.secret, key)
}

// open decrypts a stored ciphertext back to the provider key.
func (s *Store) open(ciphertext string) (string, error) {
	return crypto.DecryptString(s.secret, ciphertext)
}

// LoadKeys reads and decrypts every stored key for the user. Safe to
// call again after initialization; it re-reads the table.
func (s *Store) LoadKeys(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	var rows []entities.ProviderAPIKey
	err := s.db.WithContext(ctx).
		Where("user_id = ?", s.userID).
		Find(&rows).Error
	if err != nil {
		loadErr := platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeDatabaseError,
			"failed to load provider keys",
			err,
			"keystore-load-db-error",
		)
		s.mu.Lock()
		s.loading = false
		s.err = loadErr
		s.mu.Unlock()
		return loadErr
	}

	keys := make(map[settings.Provider]string, len(rows))
	for _, row := range rows {
		plain, decErr := s.open(row.Ciphertext)
		if decErr != nil {
			loadErr := platformerrors.NewError(
				ctx,
				platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeInternal,
				"failed to decrypt provider key",
				decErr,
				"keystore-decrypt-error",
			)
			s.mu.Lock()
			s.loading = false
			s.err = loadErr
			s.mu.Unlock()
			return loadErr
		}
		keys[settings.Provider(row.Provider)] = plain
	}

	s.mu.Lock()
	s.keys = keys
	s.loading = false
	s.initialized = true
	s.mu.Unlock()
	return nil
}

// GetKey returns the cached key for a provider, empty when unset.
func (s *Store) GetKey(ctx context.Context, provider settings.Provider) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[provider], nil
}

// SetKey seals and persists one provider key, then updates the cache.
func (s *Store) SetKey(ctx context.Context, provider settings.Provider, key string) error {
	ciphertext, err := s.seal(key)
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal,
			"failed to encrypt provider key",
			err,
			"keystore-encrypt-error",
		)
	}

	entity := entities.ProviderAPIKey{
		UserID:     s.userID,
		Provider:   string(provider),
		Ciphertext: ciphertext,
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "provider"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"ciphertext": ciphertext,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(&entity).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeDatabaseError,
			"failed to store provider key",
			err,
			"keystore-set-db-error",
		)
	}

	s.mu.Lock()
	s.keys[provider] = key
	s.mu.Unlock()
	return nil
}

// RemoveKey deletes one provider key from storage and cache.
func (s *Store) RemoveKey(ctx context.Context, provider settings.Provider) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", s.userID, string(provider)).
		Delete(&entities.ProviderAPIKey{}).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeDatabaseError,
			"failed to remove provider key",
			err,
			"keystore-remove-db-error",
		)
	}

	s.mu.Lock()
	delete(s.keys, provider)
	s.mu.Unlock()
	return nil
}

// GetAllKeys returns a copy of the cached key map. Before the first
// load completes this is whatever has been cached so far, which is what
// a forced display shows.
func (s *Store) GetAllKeys(ctx context.Context) (map[settings.Provider]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[settings.Provider]string, len(s.keys))
	for provider, key := range s.keys {
		out[provider] = key
	}
	return out, nil
}

// IsLoading reports whether a load is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// HasInitialized reports whether a load has completed successfully.
func (s *Store) HasInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Err returns the last load error, if any.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
