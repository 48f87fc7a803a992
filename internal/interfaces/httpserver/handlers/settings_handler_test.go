package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/application/settings"
	"parley-server/services/chat-api/internal/config"
	"parley-server/services/chat-api/internal/domain"
)

// stubKeyStore is an in-memory settings.KeyStore whose load can be
// gated or failed to drive the controller lifecycle.
type stubKeyStore struct {
	mu          sync.Mutex
	keys        map[settings.Provider]string
	initialized bool
	loadErr     error
	loadGate    chan struct{}
}

func newStubKeyStore() *stubKeyStore {
	return &stubKeyStore{keys: make(map[settings.Provider]string)}
}

func (s *stubKeyStore) LoadKeys(ctx context.Context) error {
	if s.loadGate != nil {
		select {
		case <-s.loadGate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}
	s.initialized = true
	return nil
}

func (s *stubKeyStore) GetKey(ctx context.Context, provider settings.Provider) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[provider], nil
}

func (s *stubKeyStore) SetKey(ctx context.Context, provider settings.Provider, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[provider] = key
	return nil
}

func (s *stubKeyStore) RemoveKey(ctx context.Context, provider settings.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, provider)
	return nil
}

func (s *stubKeyStore) GetAllKeys(ctx context.Context) (map[settings.Provider]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[settings.Provider]string, len(s.keys))
	for k, v := range s.keys {
		out[k] = v
	}
	return out, nil
}

func (s *stubKeyStore) IsLoading() bool { return false }

func (s *stubKeyStore) HasInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

func (s *stubKeyStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *stubKeyStore) clearLoadErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = nil
}

// settingsHarness wires a SettingsHandler to a stub store and records
// every controller the handler builds.
type settingsHarness struct {
	handler *SettingsHandler
	engine  *gin.Engine

	mu          sync.Mutex
	controllers []*settings.Controller
}

func newSettingsHarness(store *stubKeyStore) *settingsHarness {
	gin.SetMode(gin.TestMode)
	h := NewSettingsHandler(nil, &config.Config{}, nil, zerolog.Nop())

	harness := &settingsHarness{handler: h}
	h.newController = func(userID string) *settings.Controller {
		ctrl := settings.NewController(store, nil, settings.Options{
			ForceLoadOfferDelay: 20 * time.Millisecond,
			ForceDisplayDelay:   60 * time.Millisecond,
			ReconcileDelay:      time.Millisecond,
		}, zerolog.Nop())
		harness.mu.Lock()
		harness.controllers = append(harness.controllers, ctrl)
		harness.mu.Unlock()
		return ctrl
	}

	engine := gin.New()
	engine.GET("/v1/settings/keys", h.Get)
	harness.engine = engine
	return harness
}

func (h *settingsHarness) get(ctx context.Context) SettingsPayload {
	req := httptest.NewRequest(http.MethodGet, "/v1/settings/keys", nil)
	req = req.WithContext(domain.WithPrincipal(ctx, domain.Principal{ID: "user-1"}))
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)

	var payload SettingsPayload
	_ = json.Unmarshal(w.Body.Bytes(), &payload)
	return payload
}

func (h *settingsHarness) built() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.controllers)
}

func (h *settingsHarness) controller(i int) *settings.Controller {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.controllers[i]
}

func waitForControllerState(t *testing.T, c *settings.Controller, want settings.State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.State() == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %q, still %q", want, c.State())
}

func TestSettingsGet_LoadSurvivesRequestEnd(t *testing.T) {
	store := newStubKeyStore()
	store.loadGate = make(chan struct{})
	store.keys[settings.ProviderOpenAI] = "sk-existing-key"
	harness := newSettingsHarness(store)

	// The request context ends as soon as the response is written,
	// while the store load is still blocked.
	reqCtx, cancel := context.WithCancel(context.Background())
	payload := harness.get(reqCtx)
	cancel()
	if payload.State != string(settings.StateLoading) {
		t.Fatalf("expected first response in %q, got %q", settings.StateLoading, payload.State)
	}

	close(store.loadGate)
	waitForControllerState(t, harness.controller(0), settings.StateReady)
	if harness.built() != 1 {
		t.Fatalf("expected the single cached controller to finish loading, built %d", harness.built())
	}

	payload = harness.get(context.Background())
	if payload.State != string(settings.StateReady) {
		t.Fatalf("expected %q after load, got %q", settings.StateReady, payload.State)
	}
	if got := payload.Fields[string(settings.ProviderOpenAI)]; got != "****-key" {
		t.Fatalf("expected masked key, got %q", got)
	}
}

func TestSettingsGet_RebuildsControllerAfterLoadError(t *testing.T) {
	store := newStubKeyStore()
	store.loadErr = context.DeadlineExceeded
	harness := newSettingsHarness(store)

	harness.get(context.Background())
	waitForControllerState(t, harness.controller(0), settings.StateError)

	// The store recovers; the next request must not be stuck on the
	// errored controller.
	store.clearLoadErr()
	payload := harness.get(context.Background())
	if harness.built() != 2 {
		t.Fatalf("expected a fresh controller after an errored load, built %d", harness.built())
	}
	if payload.State == string(settings.StateError) {
		t.Fatal("expected retry instead of a cached error state")
	}

	waitForControllerState(t, harness.controller(1), settings.StateReady)
}
