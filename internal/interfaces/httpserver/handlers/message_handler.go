package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain/attachment"
	"parley-server/services/chat-api/internal/domain/message"
	"parley-server/services/chat-api/internal/interfaces/httpserver/requests"
	"parley-server/services/chat-api/internal/interfaces/httpserver/responses"
	"parley-server/services/chat-api/internal/utils/platformerrors"
	"parley-server/services/chat-api/internal/utils/ptr"
)

// MessageHandler exposes HTTP entrypoints for thread messages.
type MessageHandler struct {
	service *message.Service
	log     zerolog.Logger
}

// NewMessageHandler constructs the handler.
func NewMessageHandler(service *message.Service, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		service: service,
		log:     log.With().Str("handler", "message").Logger(),
	}
}

// List handles GET /v1/threads/:thread_id/messages
// @Summary List thread messages
// @Description Lists messages oldest first with attachment content hydrated
// @Tags Messages
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Success 200 {array} responses.MessagePayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.service.ListByThread(c.Request.Context(), c.Param("thread_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to list messages")
		return
	}

	c.JSON(http.StatusOK, responses.FromMessages(messages))
}

// Create handles POST /v1/threads/:thread_id/messages
// @Summary Append a message to a thread
// @Description Creates the thread on first write and upserts by message id
// @Tags Messages
// @Accept json
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Param request body requests.CreateMessageRequest true "Message"
// @Success 201 {object} responses.MessagePayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/messages [post]
func (h *MessageHandler) Create(c *gin.Context) {
	var req requests.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid message payload", "message-create-bad-request")
		return
	}

	parts := make([]message.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		switch message.PartType(p.Type) {
		case message.PartTypeReasoning:
			parts = append(parts, message.ReasoningPart(p.Reasoning))
		default:
			parts = append(parts, message.TextPart(p.Text))
		}
	}

	uploads := make([]attachment.Upload, len(req.Uploads))
	for i, u := range req.Uploads {
		uploads[i] = attachment.Upload{
			FileName:     u.FileName,
			FileType:     u.FileType,
			FileSize:     u.FileSize,
			URL:          u.URL,
			ThumbnailURL: ptr.Deref(u.ThumbnailURL),
			TextContent:  ptr.Deref(u.TextContent),
		}
	}

	m, err := h.service.Create(c.Request.Context(), message.CreateParams{
		ID:       req.ID,
		ThreadID: c.Param("thread_id"),
		Role:     message.Role(req.Role),
		Content:  req.Content,
		Parts:    parts,
		Uploads:  uploads,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to create message")
		return
	}

	c.JSON(http.StatusCreated, responses.FromMessage(m))
}

// UpdateContent handles PATCH /v1/messages/:message_id
// @Summary Update message content
// @Description Owners may edit their messages; thread owners may edit assistant messages
// @Tags Messages
// @Accept json
// @Produce json
// @Param message_id path string true "Message ID"
// @Param request body requests.UpdateMessageRequest true "Content"
// @Success 200 {object} responses.StatusPayload
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /v1/messages/{message_id} [patch]
func (h *MessageHandler) UpdateContent(c *gin.Context) {
	var req requests.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "content is required", "message-update-bad-request")
		return
	}

	outcome, err := h.service.UpdateContent(c.Request.Context(), c.Param("message_id"), req.Content)
	if err != nil {
		responses.HandleError(c, err, "failed to update message")
		return
	}
	if outcome.PermissionDenied {
		responses.HandleNewError(c, platformerrors.ErrorTypeForbidden, "not allowed to edit this message", "message-update-denied")
		return
	}
	if outcome.VerificationMismatch {
		responses.HandleNewError(c, platformerrors.ErrorTypeConflict, "message content did not persist", "message-update-mismatch")
		return
	}

	c.JSON(http.StatusOK, responses.StatusPayload{Status: "updated"})
}

// DeleteTrailing handles POST /v1/threads/:thread_id/messages/delete-trailing
// @Summary Delete messages after a cutoff
// @Tags Messages
// @Accept json
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Param request body requests.DeleteTrailingRequest true "Cutoff"
// @Success 200 {object} responses.DeletedPayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/messages/delete-trailing [post]
func (h *MessageHandler) DeleteTrailing(c *gin.Context) {
	var req requests.DeleteTrailingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "cutoff is required", "message-delete-trailing-bad-request")
		return
	}

	deleted, err := h.service.DeleteTrailing(c.Request.Context(), c.Param("thread_id"), req.Cutoff, req.Inclusive)
	if err != nil {
		responses.HandleError(c, err, "failed to delete messages")
		return
	}

	c.JSON(http.StatusOK, responses.DeletedPayload{Deleted: deleted})
}
