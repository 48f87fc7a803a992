package settings

import "context"

// Provider identifies an upstream model provider whose API key the
// settings form manages.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderGoogle     Provider = "google"
	ProviderOpenRouter Provider = "openrouter"
)

// Providers returns the managed providers in display order.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderGoogle, ProviderOpenRouter}
}

// KeyStore is the external key storage collaborator. Implementations
// synchronize their own state; the controller adds no locking around
// them.
type KeyStore interface {
	// LoadKeys populates the store. Idempotent; safe to call when
	// already initialized.
	LoadKeys(ctx context.Context) error
	GetKey(ctx context.Context, provider Provider) (string, error)
	SetKey(ctx context.Context, provider Provider, key string) error
	RemoveKey(ctx context.Context, provider Provider) error
	GetAllKeys(ctx context.Context) (map[Provider]string, error)
	IsLoading() bool
	HasInitialized() bool
	Err() error
}

// FavoritesStore is the model-favorites collaborator notified when a
// provider key disappears.
type FavoritesStore interface {
	CleanupFavoritesForRemovedProviders(ctx context.Context) error
}
