package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain/preferences"
	"parley-server/services/chat-api/internal/domain/profile"
	"parley-server/services/chat-api/internal/interfaces/httpserver/requests"
	"parley-server/services/chat-api/internal/interfaces/httpserver/responses"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// UserHandler exposes HTTP entrypoints for the user profile and
// preference document.
type UserHandler struct {
	profiles    *profile.Service
	preferences *preferences.Service
	log         zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(profiles *profile.Service, prefs *preferences.Service, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		profiles:    profiles,
		preferences: prefs,
		log:         log.With().Str("handler", "user").Logger(),
	}
}

// GetProfile handles GET /v1/me/profile
// @Summary Get the current user's profile
// @Tags Users
// @Produce json
// @Success 200 {object} responses.ProfilePayload
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/me/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to get profile")
		return
	}
	if p == nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, "profile not set", "profile-get-not-found")
		return
	}

	c.JSON(http.StatusOK, responses.FromProfile(p))
}

// SaveProfile handles PUT /v1/me/profile
// @Summary Save the current user's profile
// @Tags Users
// @Accept json
// @Produce json
// @Param request body requests.SaveProfileRequest true "Profile"
// @Success 200 {object} responses.ProfilePayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/me/profile [put]
func (h *UserHandler) SaveProfile(c *gin.Context) {
	var req requests.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid profile payload", "profile-save-bad-request")
		return
	}

	p, err := h.profiles.Save(c.Request.Context(), req.DisplayName, req.Bio, req.AvatarURL)
	if err != nil {
		responses.HandleError(c, err, "failed to save profile")
		return
	}

	c.JSON(http.StatusOK, responses.FromProfile(p))
}

// GetPreferences handles GET /v1/me/preferences
// @Summary Get the current user's preference document
// @Description Returns an empty document when none is stored or the store is absent
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/me/preferences [get]
func (h *UserHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.preferences.Get(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to get preferences")
		return
	}
	if prefs == nil {
		c.JSON(http.StatusOK, gin.H{"preferences": gin.H{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs.Preferences})
}

// SavePreferences handles PUT /v1/me/preferences
// @Summary Save the current user's preference document
// @Tags Users
// @Accept json
// @Produce json
// @Param request body requests.SavePreferencesRequest true "Preferences"
// @Success 200 {object} map[string]any
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/me/preferences [put]
func (h *UserHandler) SavePreferences(c *gin.Context) {
	var req requests.SavePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "preferences are required", "preferences-save-bad-request")
		return
	}

	saved, err := h.preferences.Save(c.Request.Context(), req.Preferences)
	if err != nil {
		responses.HandleError(c, err, "failed to save preferences")
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": saved.Preferences})
}
