package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain/summary"
	"parley-server/services/chat-api/internal/interfaces/httpserver/requests"
	"parley-server/services/chat-api/internal/interfaces/httpserver/responses"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// SummaryHandler exposes HTTP entrypoints for thread summaries.
type SummaryHandler struct {
	service *summary.Service
	log     zerolog.Logger
}

// NewSummaryHandler constructs the handler.
func NewSummaryHandler(service *summary.Service, log zerolog.Logger) *SummaryHandler {
	return &SummaryHandler{
		service: service,
		log:     log.With().Str("handler", "summary").Logger(),
	}
}

// Get handles GET /v1/threads/:thread_id/summary
// @Summary Get the stored summary of a thread
// @Tags Summaries
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Success 200 {object} responses.SummaryPayload
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/summary [get]
func (h *SummaryHandler) Get(c *gin.Context) {
	s, err := h.service.Get(c.Request.Context(), c.Param("thread_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get summary")
		return
	}
	if s == nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, "no summary stored", "summary-get-not-found")
		return
	}

	c.JSON(http.StatusOK, responses.FromSummary(s))
}

// Set handles PUT /v1/threads/:thread_id/summary
// @Summary Store a summary verbatim
// @Tags Summaries
// @Accept json
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Param request body requests.SetSummaryRequest true "Summary"
// @Success 200 {object} responses.SummaryPayload
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/summary [put]
func (h *SummaryHandler) Set(c *gin.Context) {
	var req requests.SetSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "summary is required", "summary-set-bad-request")
		return
	}

	s, err := h.service.Set(c.Request.Context(), c.Param("thread_id"), req.Summary)
	if err != nil {
		responses.HandleError(c, err, "failed to store summary")
		return
	}

	c.JSON(http.StatusOK, responses.FromSummary(s))
}

// Generate handles POST /v1/threads/:thread_id/summary
// @Summary Generate a summary from the thread transcript
// @Tags Summaries
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Success 200 {object} responses.SummaryPayload
// @Failure 501 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/summary [post]
func (h *SummaryHandler) Generate(c *gin.Context) {
	s, err := h.service.Generate(c.Request.Context(), c.Param("thread_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to generate summary")
		return
	}

	c.JSON(http.StatusOK, responses.FromSummary(s))
}

// Delete handles DELETE /v1/threads/:thread_id/summary
// @Summary Delete the stored summary of a thread
// @Tags Summaries
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Success 200 {object} responses.StatusPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/summary [delete]
func (h *SummaryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("thread_id")); err != nil {
		responses.HandleError(c, err, "failed to delete summary")
		return
	}

	c.JSON(http.StatusOK, responses.StatusPayload{Status: "deleted"})
}
