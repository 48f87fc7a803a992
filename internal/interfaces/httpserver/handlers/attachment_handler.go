package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain/attachment"
	"parley-server/services/chat-api/internal/interfaces/httpserver/responses"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// AttachmentHandler exposes HTTP entrypoints for file attachments.
type AttachmentHandler struct {
	service *attachment.Service
	log     zerolog.Logger
}

// NewAttachmentHandler constructs the handler.
func NewAttachmentHandler(service *attachment.Service, log zerolog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		service: service,
		log:     log.With().Str("handler", "attachment").Logger(),
	}
}

// List handles GET /v1/attachments
// @Summary List the current user's attachments
// @Tags Attachments
// @Produce json
// @Param thread_id query string false "Filter by thread"
// @Success 200 {array} responses.AttachmentPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/attachments [get]
func (h *AttachmentHandler) List(c *gin.Context) {
	var attachments []*attachment.FileAttachment
	var err error

	if threadID := c.Query("thread_id"); threadID != "" {
		attachments, err = h.service.ListByThread(c.Request.Context(), threadID)
	} else {
		attachments, err = h.service.ListMine(c.Request.Context())
	}
	if err != nil {
		responses.HandleError(c, err, "failed to list attachments")
		return
	}

	c.JSON(http.StatusOK, responses.FromAttachments(attachments))
}

// Get handles GET /v1/attachments/:attachment_id
// @Summary Get one attachment
// @Tags Attachments
// @Produce json
// @Param attachment_id path string true "Attachment ID"
// @Success 200 {object} responses.AttachmentPayload
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/attachments/{attachment_id} [get]
func (h *AttachmentHandler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), c.Param("attachment_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get attachment")
		return
	}
	if a == nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, "attachment not found", "attachment-get-not-found")
		return
	}

	c.JSON(http.StatusOK, responses.FromAttachment(a))
}

// Delete handles DELETE /v1/attachments/:attachment_id
// @Summary Delete an attachment and its stored object
// @Tags Attachments
// @Produce json
// @Param attachment_id path string true "Attachment ID"
// @Success 200 {object} responses.StatusPayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /v1/attachments/{attachment_id} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("attachment_id")); err != nil {
		responses.HandleError(c, err, "failed to delete attachment")
		return
	}

	c.JSON(http.StatusOK, responses.StatusPayload{Status: "deleted"})
}
