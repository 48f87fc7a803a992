package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"parley-server/services/chat-api/internal/application/settings"
	"parley-server/services/chat-api/internal/config"
	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/domain/preferences"
	"parley-server/services/chat-api/internal/infrastructure/keystore"
	"parley-server/services/chat-api/internal/interfaces/httpserver/requests"
	"parley-server/services/chat-api/internal/interfaces/httpserver/responses"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// SettingsHandler exposes the provider API key settings form. Each
// user gets one long-lived controller driving the form state machine;
// controllers are created lazily on first access.
type SettingsHandler struct {
	db          *gorm.DB
	cfg         *config.Config
	preferences *preferences.Service
	validate    *validator.Validate
	log         zerolog.Logger

	mu          sync.Mutex
	controllers map[string]*settings.Controller

	// newController builds a controller for one user; replaced in tests.
	newController func(userID string) *settings.Controller
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(db *gorm.DB, cfg *config.Config, prefs *preferences.Service, log zerolog.Logger) *SettingsHandler {
	h := &SettingsHandler{
		db:          db,
		cfg:         cfg,
		preferences: prefs,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		log:         log.With().Str("handler", "settings").Logger(),
		controllers: make(map[string]*settings.Controller),
	}
	h.newController = func(userID string) *settings.Controller {
		store := keystore.NewStore(h.db, h.cfg.APIKeySecret, userID)
		favorites := keystore.NewFavorites(h.preferences, store, h.log)
		return settings.NewController(store, favorites, settings.Options{
			ForceLoadOfferDelay: h.cfg.SettingsForceLoadOfferDelay,
			ForceDisplayDelay:   h.cfg.SettingsForceDisplayDelay,
			ReconcileDelay:      h.cfg.SettingsReconcileDelay,
		}, h.log)
	}
	return h
}

// SettingsPayload reports the form state and masked key fields.
type SettingsPayload struct {
	State  string            `json:"state"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields"`
}

func (h *SettingsHandler) controllerFor(c *gin.Context) (*settings.Controller, bool) {
	userID, err := domain.ResolveCurrentUser(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "authentication required")
		return nil, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if ctrl, ok := h.controllers[userID]; ok {
		if ctrl.State() != settings.StateError {
			return ctrl, true
		}
		// A failed load should not wedge the form forever. Drop the
		// errored controller and retry with a fresh one.
		ctrl.Stop()
		delete(h.controllers, userID)
	}

	ctrl := h.newController(userID)
	// The controller outlives this request; the background load must
	// not be cancelled when gin finishes the response.
	ctrl.Start(context.WithoutCancel(c.Request.Context()))
	h.controllers[userID] = ctrl
	return ctrl, true
}

func (h *SettingsHandler) payload(ctrl *settings.Controller) SettingsPayload {
	fields := make(map[string]string, len(settings.Providers()))
	for _, provider := range settings.Providers() {
		fields[string(provider)] = maskKey(ctrl.Field(provider))
	}

	payload := SettingsPayload{
		State:  string(ctrl.State()),
		Fields: fields,
	}
	if err := ctrl.Err(); err != nil {
		payload.Error = err.Error()
	}
	return payload
}

// Get handles GET /v1/settings/keys
// @Summary Get the settings form state and masked provider keys
// @Tags Settings
// @Produce json
// @Success 200 {object} handlers.SettingsPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/settings/keys [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	ctrl, ok := h.controllerFor(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.payload(ctrl))
}

// Save handles PUT /v1/settings/keys
// @Summary Save provider API keys
// @Description Persists non-empty keys concurrently and reconciles against the store
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body requests.SaveSettingsRequest true "Keys"
// @Success 200 {object} handlers.SettingsPayload
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/settings/keys [put]
func (h *SettingsHandler) Save(c *gin.Context) {
	var req requests.SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid settings payload", "settings-save-bad-request")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "provider keys must be at least 8 characters", "settings-save-invalid-key")
		return
	}

	ctrl, ok := h.controllerFor(c)
	if !ok {
		return
	}

	if req.OpenAIKey != "" {
		ctrl.SetField(settings.ProviderOpenAI, req.OpenAIKey)
	}
	if req.GoogleKey != "" {
		ctrl.SetField(settings.ProviderGoogle, req.GoogleKey)
	}
	if req.OpenRouterKey != "" {
		ctrl.SetField(settings.ProviderOpenRouter, req.OpenRouterKey)
	}

	if err := ctrl.Save(c.Request.Context()); err != nil {
		responses.HandleError(c, err, "failed to save provider keys")
		return
	}

	c.JSON(http.StatusOK, h.payload(ctrl))
}

// ForceLoad handles POST /v1/settings/keys/force-load
// @Summary Force the settings form out of a slow load
// @Tags Settings
// @Produce json
// @Success 200 {object} handlers.SettingsPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/settings/keys/force-load [post]
func (h *SettingsHandler) ForceLoad(c *gin.Context) {
	ctrl, ok := h.controllerFor(c)
	if !ok {
		return
	}

	ctrl.ForceLoad(c.Request.Context())
	c.JSON(http.StatusOK, h.payload(ctrl))
}

// ClearKey handles DELETE /v1/settings/keys/:provider
// @Summary Remove one provider key
// @Description Clears the stored key and prunes favorites that depended on it
// @Tags Settings
// @Produce json
// @Param provider path string true "Provider" Enums(openai, google, openrouter)
// @Success 200 {object} handlers.SettingsPayload
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/settings/keys/{provider} [delete]
func (h *SettingsHandler) ClearKey(c *gin.Context) {
	provider := settings.Provider(c.Param("provider"))
	if !validProvider(provider) {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "unknown provider", "settings-clear-unknown-provider")
		return
	}

	ctrl, ok := h.controllerFor(c)
	if !ok {
		return
	}

	if err := ctrl.ClearKey(c.Request.Context(), provider); err != nil {
		responses.HandleError(c, err, "failed to clear provider key")
		return
	}

	c.JSON(http.StatusOK, h.payload(ctrl))
}

func validProvider(provider settings.Provider) bool {
	for _, known := range settings.Providers() {
		if provider == known {
			return true
		}
	}
	return false
}

// maskKey hides all but the last four characters of a key.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
