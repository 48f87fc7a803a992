package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain/codeconv"
	"parley-server/services/chat-api/internal/interfaces/httpserver/requests"
	"parley-server/services/chat-api/internal/interfaces/httpserver/responses"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// CodeConversionHandler exposes HTTP entrypoints for the code
// conversion history.
type CodeConversionHandler struct {
	service *codeconv.Service
	log     zerolog.Logger
}

// NewCodeConversionHandler constructs the handler.
func NewCodeConversionHandler(service *codeconv.Service, log zerolog.Logger) *CodeConversionHandler {
	return &CodeConversionHandler{
		service: service,
		log:     log.With().Str("handler", "codeconv").Logger(),
	}
}

// List handles GET /v1/code-conversions
// @Summary List the current user's code conversions
// @Tags CodeConversions
// @Produce json
// @Success 200 {array} responses.CodeConversionPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/code-conversions [get]
func (h *CodeConversionHandler) List(c *gin.Context) {
	conversions, err := h.service.ListMine(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list code conversions")
		return
	}

	c.JSON(http.StatusOK, responses.FromCodeConversions(conversions))
}

// Get handles GET /v1/code-conversions/:conversion_id
// @Summary Get one code conversion
// @Tags CodeConversions
// @Produce json
// @Param conversion_id path string true "Conversion ID"
// @Success 200 {object} responses.CodeConversionPayload
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/code-conversions/{conversion_id} [get]
func (h *CodeConversionHandler) Get(c *gin.Context) {
	conversion, err := h.service.Get(c.Request.Context(), c.Param("conversion_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get code conversion")
		return
	}
	if conversion == nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, "code conversion not found", "codeconv-get-not-found")
		return
	}

	c.JSON(http.StatusOK, responses.FromCodeConversion(conversion))
}

// Create handles POST /v1/code-conversions
// @Summary Record a code conversion
// @Tags CodeConversions
// @Accept json
// @Produce json
// @Param request body requests.RecordConversionRequest true "Conversion"
// @Success 201 {object} responses.CodeConversionPayload
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/code-conversions [post]
func (h *CodeConversionHandler) Create(c *gin.Context) {
	var req requests.RecordConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid conversion payload", "codeconv-create-bad-request")
		return
	}

	conversion, err := h.service.Record(
		c.Request.Context(),
		req.ThreadID,
		req.SourceLanguage,
		req.TargetLanguage,
		req.InputCode,
		req.OutputCode,
	)
	if err != nil {
		responses.HandleError(c, err, "failed to record code conversion")
		return
	}

	c.JSON(http.StatusCreated, responses.FromCodeConversion(conversion))
}

// Delete handles DELETE /v1/code-conversions/:conversion_id
// @Summary Delete a code conversion
// @Tags CodeConversions
// @Produce json
// @Param conversion_id path string true "Conversion ID"
// @Success 200 {object} responses.StatusPayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /v1/code-conversions/{conversion_id} [delete]
func (h *CodeConversionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("conversion_id")); err != nil {
		responses.HandleError(c, err, "failed to delete code conversion")
		return
	}

	c.JSON(http.StatusOK, responses.StatusPayload{Status: "deleted"})
}
