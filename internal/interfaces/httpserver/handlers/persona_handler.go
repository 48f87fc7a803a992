package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain/persona"
	"parley-server/services/chat-api/internal/interfaces/httpserver/requests"
	"parley-server/services/chat-api/internal/interfaces/httpserver/responses"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// PersonaHandler exposes HTTP entrypoints for thread personas.
type PersonaHandler struct {
	service *persona.Service
	log     zerolog.Logger
}

// NewPersonaHandler constructs the handler.
func NewPersonaHandler(service *persona.Service, log zerolog.Logger) *PersonaHandler {
	return &PersonaHandler{
		service: service,
		log:     log.With().Str("handler", "persona").Logger(),
	}
}

// Presets handles GET /v1/personas/presets
// @Summary List persona presets
// @Tags Personas
// @Produce json
// @Success 200 {array} persona.Preset
// @Router /v1/personas/presets [get]
func (h *PersonaHandler) Presets(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Presets())
}

// Get handles GET /v1/threads/:thread_id/persona
// @Summary Get the persona assigned to a thread
// @Tags Personas
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Success 200 {object} responses.PersonaPayload
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/persona [get]
func (h *PersonaHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("thread_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get persona")
		return
	}
	if p == nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, "no persona assigned", "persona-get-not-found")
		return
	}

	c.JSON(http.StatusOK, responses.FromPersona(p))
}

// Set handles PUT /v1/threads/:thread_id/persona
// @Summary Assign a persona to a thread
// @Description Replaces any previously assigned persona
// @Tags Personas
// @Accept json
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Param request body requests.SetPersonaRequest true "Persona"
// @Success 200 {object} responses.PersonaPayload
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/persona [put]
func (h *PersonaHandler) Set(c *gin.Context) {
	var req requests.SetPersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "name and system_prompt are required", "persona-set-bad-request")
		return
	}

	p, err := h.service.Set(c.Request.Context(), c.Param("thread_id"), req.Name, req.SystemPrompt)
	if err != nil {
		responses.HandleError(c, err, "failed to set persona")
		return
	}

	c.JSON(http.StatusOK, responses.FromPersona(p))
}

// Clear handles DELETE /v1/threads/:thread_id/persona
// @Summary Clear the persona assigned to a thread
// @Tags Personas
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Success 200 {object} responses.StatusPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/persona [delete]
func (h *PersonaHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), c.Param("thread_id")); err != nil {
		responses.HandleError(c, err, "failed to clear persona")
		return
	}

	c.JSON(http.StatusOK, responses.StatusPayload{Status: "cleared"})
}
