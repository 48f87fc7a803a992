package settings

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// State names one node of the settings form lifecycle.
type State string

const (
	// StateLoading is the initial state while the key store loads.
	StateLoading State = "loading"
	// StateForceLoadOffered still loads, but the user may force it.
	StateForceLoadOffered State = "force_load_offered"
	// StateError terminal state when the store load failed.
	StateError State = "error"
	// StateReady fields are editable.
	StateReady State = "ready"
)

// Options tunes the controller's timers.
type Options struct {
	// ForceLoadOfferDelay is how long loading may run before a manual
	// force-load action is offered.
	ForceLoadOfferDelay time.Duration
	// ForceDisplayDelay is how long loading may run before the form is
	// displayed regardless of store state.
	ForceDisplayDelay time.Duration
	// ReconcileDelay is the pause between saving and re-reading the
	// store to pick up store-side normalization.
	ReconcileDelay time.Duration
}

// DefaultOptions returns the production timer values.
func DefaultOptions() Options {
	return Options{
		ForceLoadOfferDelay: 3 * time.Second,
		ForceDisplayDelay:   7 * time.Second,
		ReconcileDelay:      500 * time.Millisecond,
	}
}

// Controller drives the settings form state machine over an injected
// key store and favorites store. Transitions:
//
//	Loading -> ForceLoadOffered   (offer timer fires, still loading)
//	Loading -> Error              (store load failed)
//	Loading -> Ready              (store load finished)
//	ForceLoadOffered -> Ready     (load finishes, force action, or display timer)
//
// The timers govern presentation only; they never cancel the
// underlying store load.
type Controller struct {
	store     KeyStore
	favorites FavoritesStore
	opts      Options
	log       zerolog.Logger

	mu         sync.Mutex
	state      State
	stateErr   error
	fields     map[Provider]string
	lastStored map[Provider]string

	offerTimer *time.Timer
	forceTimer *time.Timer
}

// NewController creates a controller in the Loading state.
func NewController(store KeyStore, favorites FavoritesStore, opts Options, log zerolog.Logger) *Controller {
	if opts.ForceLoadOfferDelay <= 0 {
		opts.ForceLoadOfferDelay = DefaultOptions().ForceLoadOfferDelay
	}
	if opts.ForceDisplayDelay <= opts.ForceLoadOfferDelay {
		opts.ForceDisplayDelay = opts.ForceLoadOfferDelay + 4*time.Second
	}
	if opts.ReconcileDelay <= 0 {
		opts.ReconcileDelay = DefaultOptions().ReconcileDelay
	}
	return &Controller{
		store:      store,
		favorites:  favorites,
		opts:       opts,
		log:        log.With().Str("component", "settings_controller").Logger(),
		state:      StateLoading,
		fields:     make(map[Provider]string),
		lastStored: make(map[Provider]string),
	}
}

// Start triggers the store load when it has not initialized yet and
// arms the watchdog timers. It returns immediately; the load continues
// in the background.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.offerTimer = time.AfterFunc(c.opts.ForceLoadOfferDelay, c.offerForceLoad)
	c.forceTimer = time.AfterFunc(c.opts.ForceDisplayDelay, c.forceDisplay)
	c.mu.Unlock()

	if c.store.HasInitialized() {
		c.finishLoad(ctx)
		return
	}

	go func() {
		if err := c.store.LoadKeys(ctx); err != nil {
			c.mu.Lock()
			if c.state == StateLoading || c.state == StateForceLoadOffered {
				c.state = StateError
				c.stateErr = err
			}
			c.mu.Unlock()
			c.log.Error().Err(err).Msg("key store load failed")
			return
		}
		c.finishLoad(ctx)
	}()
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the load error, set only in StateError.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateErr
}

// Field returns the editable value for a provider.
func (c *Controller) Field(provider Provider) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields[provider]
}

// SetField updates the editable value for a provider.
func (c *Controller) SetField(provider Provider, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields[provider] = value
}

// ForceLoad is the manual escape hatch offered after the first
// watchdog. It displays whatever the store currently holds.
func (c *Controller) ForceLoad(ctx context.Context) {
	c.mu.Lock()
	offered := c.state == StateForceLoadOffered
	c.mu.Unlock()
	if !offered {
		return
	}
	c.log.Info().Msg("force load requested")
	c.finishLoad(ctx)
}

// Save trims and persists each non-empty field concurrently, then
// re-reads the store after a bounded delay to reconcile any store-side
// normalization. On failure, fields revert to the last known store
// values.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	pending := make(map[Provider]string)
	for _, provider := range Providers() {
		trimmed := strings.TrimSpace(c.fields[provider])
		if trimmed != "" {
			pending[provider] = trimmed
		}
	}
	c.mu.Unlock()

	group, groupCtx := errgroup.WithContext(ctx)
	for provider, key := range pending {
		group.Go(func() error {
			return c.store.SetKey(groupCtx, provider, key)
		})
	}
	if err := group.Wait(); err != nil {
		c.log.Error().Err(err).Msg("saving provider keys failed, reverting fields")
		c.revertFields()
		return err
	}

	select {
	case <-time.After(c.opts.ReconcileDelay):
	case <-ctx.Done():
	}

	stored, err := c.store.GetAllKeys(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("re-reading provider keys failed, reverting fields")
		c.revertFields()
		return err
	}
	c.adoptStored(stored)
	return nil
}

// ClearKey removes a provider's key, clears the field immediately and
// prunes favorites that depended on the removed provider.
func (c *Controller) ClearKey(ctx context.Context, provider Provider) error {
	if err := c.store.RemoveKey(ctx, provider); err != nil {
		return err
	}

	c.mu.Lock()
	c.fields[provider] = ""
	c.lastStored[provider] = ""
	c.mu.Unlock()

	if c.favorites != nil {
		if err := c.favorites.CleanupFavoritesForRemovedProviders(ctx); err != nil {
			c.log.Warn().Err(err).Str("provider", string(provider)).Msg("favorites cleanup failed")
		}
	}
	return nil
}

// Stop disarms the watchdog timers.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.offerTimer != nil {
		c.offerTimer.Stop()
	}
	if c.forceTimer != nil {
		c.forceTimer.Stop()
	}
}

// finishLoad copies the store's keys into the editable fields and
// enters Ready.
func (c *Controller) finishLoad(ctx context.Context) {
	stored, err := c.store.GetAllKeys(ctx)
	if err != nil {
		c.mu.Lock()
		if c.state == StateLoading || c.state == StateForceLoadOffered {
			c.state = StateError
			c.stateErr = err
		}
		c.mu.Unlock()
		c.log.Error().Err(err).Msg("reading provider keys failed")
		return
	}
	c.adoptStored(stored)
	c.mu.Lock()
	if c.state != StateError {
		c.state = StateReady
	}
	if c.offerTimer != nil {
		c.offerTimer.Stop()
	}
	if c.forceTimer != nil {
		c.forceTimer.Stop()
	}
	c.mu.Unlock()
}

// offerForceLoad fires on the first watchdog.
func (c *Controller) offerForceLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLoading {
		c.state = StateForceLoadOffered
		c.log.Warn().Msg("key store still loading, offering force load")
	}
}

// forceDisplay fires on the second watchdog and shows the form with
// whatever the store holds.
func (c *Controller) forceDisplay() {
	c.mu.Lock()
	loading := c.state == StateLoading || c.state == StateForceLoadOffered
	c.mu.Unlock()
	if !loading {
		return
	}
	c.log.Warn().Msg("key store load exceeded display deadline, forcing display")
	c.finishLoad(context.Background())
}

func (c *Controller) adoptStored(stored map[Provider]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, provider := range Providers() {
		value := stored[provider]
		c.fields[provider] = value
		c.lastStored[provider] = value
	}
}

func (c *Controller) revertFields() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for provider, value := range c.lastStored {
		c.fields[provider] = value
	}
}
