package keystore

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/application/settings"
	"parley-server/services/chat-api/internal/domain/preferences"
)

const favoritesPreferenceKey = "favorite_models"

// Favorites prunes model favorites whose provider no longer has an API
// key. Favorites live in the user's preference document as a list of
// "provider/model" strings.
type Favorites struct {
	prefs *preferences.Service
	store *Store
	log   zerolog.Logger
}

// NewFavorites builds the favorites cleanup collaborator.
func NewFavorites(prefs *preferences.Service, store *Store, log zerolog.Logger) *Favorites {
	return &Favorites{prefs: prefs, store: store, log: log}
}

var _ settings.FavoritesStore = (*Favorites)(nil)

// CleanupFavoritesForRemovedProviders drops favorites referencing
// providers without a stored key.
func (f *Favorites) CleanupFavoritesForRemovedProviders(ctx context.Context) error {
	prefs, err := f.prefs.Get(ctx)
	if err != nil {
		return err
	}
	if prefs == nil {
		return nil
	}

	raw, ok := prefs.Preferences[favoritesPreferenceKey].([]any)
	if !ok || len(raw) == 0 {
		return nil
	}

	keys, err := f.store.GetAllKeys(ctx)
	if err != nil {
		return err
	}

	kept := make([]any, 0, len(raw))
	removed := 0
	for _, entry := range raw {
		favorite, ok := entry.(string)
		if !ok {
			continue
		}
		provider, _, found := strings.Cut(favorite, "/")
		if found && keys[settings.Provider(provider)] == "" {
			removed++
			continue
		}
		kept = append(kept, favorite)
	}
	if removed == 0 {
		return nil
	}

	prefs.Preferences[favoritesPreferenceKey] = kept
	if _, err := f.prefs.Save(ctx, prefs.Preferences); err != nil {
		return err
	}

	f.log.Info().Int("removed", removed).Msg("pruned favorites for providers without keys")
	return nil
}
