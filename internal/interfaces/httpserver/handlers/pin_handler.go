package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain/pin"
	"parley-server/services/chat-api/internal/interfaces/httpserver/requests"
	"parley-server/services/chat-api/internal/interfaces/httpserver/responses"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// PinHandler exposes HTTP entrypoints for pinned messages.
type PinHandler struct {
	service *pin.Service
	log     zerolog.Logger
}

// NewPinHandler constructs the handler.
func NewPinHandler(service *pin.Service, log zerolog.Logger) *PinHandler {
	return &PinHandler{
		service: service,
		log:     log.With().Str("handler", "pin").Logger(),
	}
}

// List handles GET /v1/pins
// @Summary List the current user's pinned messages
// @Tags Pins
// @Produce json
// @Param thread_id query string false "Filter by thread"
// @Success 200 {array} responses.PinPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/pins [get]
func (h *PinHandler) List(c *gin.Context) {
	var pins []*pin.PinnedMessage
	var err error

	if threadID := c.Query("thread_id"); threadID != "" {
		pins, err = h.service.ListByThread(c.Request.Context(), threadID)
	} else {
		pins, err = h.service.ListMine(c.Request.Context())
	}
	if err != nil {
		responses.HandleError(c, err, "failed to list pins")
		return
	}

	c.JSON(http.StatusOK, responses.FromPins(pins))
}

// Create handles POST /v1/pins
// @Summary Pin a message
// @Description Pinning an already pinned message succeeds without a new row
// @Tags Pins
// @Accept json
// @Produce json
// @Param request body requests.PinMessageRequest true "Pin"
// @Success 201 {object} responses.PinPayload
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/pins [post]
func (h *PinHandler) Create(c *gin.Context) {
	var req requests.PinMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "thread_id and message_id are required", "pin-create-bad-request")
		return
	}

	p, err := h.service.Pin(c.Request.Context(), req.ThreadID, req.MessageID)
	if err != nil {
		responses.HandleError(c, err, "failed to pin message")
		return
	}

	c.JSON(http.StatusCreated, responses.FromPin(p))
}

// Delete handles DELETE /v1/pins/:message_id
// @Summary Unpin a message
// @Tags Pins
// @Produce json
// @Param message_id path string true "Message ID"
// @Success 200 {object} responses.StatusPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/pins/{message_id} [delete]
func (h *PinHandler) Delete(c *gin.Context) {
	if err := h.service.Unpin(c.Request.Context(), c.Param("message_id")); err != nil {
		responses.HandleError(c, err, "failed to unpin message")
		return
	}

	c.JSON(http.StatusOK, responses.StatusPayload{Status: "unpinned"})
}
