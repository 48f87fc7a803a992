package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain/share"
	"parley-server/services/chat-api/internal/infrastructure/metrics"
	"parley-server/services/chat-api/internal/interfaces/httpserver/requests"
	"parley-server/services/chat-api/internal/interfaces/httpserver/responses"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// ShareHandler exposes HTTP entrypoints for thread sharing, both the
// authenticated owner API and the public token API.
type ShareHandler struct {
	service *share.Service
	log     zerolog.Logger
}

// NewShareHandler constructs the handler.
func NewShareHandler(service *share.Service, log zerolog.Logger) *ShareHandler {
	return &ShareHandler{
		service: service,
		log:     log.With().Str("handler", "share").Logger(),
	}
}

// Create handles POST /v1/shares
// @Summary Share a thread
// @Tags Shares
// @Accept json
// @Produce json
// @Param request body requests.CreateShareRequest true "Share"
// @Success 201 {object} responses.SharePayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /v1/shares [post]
func (h *ShareHandler) Create(c *gin.Context) {
	var req requests.CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid share payload", "share-create-bad-request")
		return
	}

	s, err := h.service.Create(c.Request.Context(), share.CreateParams{
		ThreadID:    req.ThreadID,
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Password:    req.Password,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to share thread")
		return
	}

	metrics.RecordShareCreated()
	c.JSON(http.StatusCreated, responses.FromShare(s))
}

// List handles GET /v1/shares
// @Summary List the current user's shares
// @Tags Shares
// @Produce json
// @Success 200 {array} responses.SharePayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/shares [get]
func (h *ShareHandler) List(c *gin.Context) {
	shares, err := h.service.ListMine(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list shares")
		return
	}

	c.JSON(http.StatusOK, responses.FromShares(shares))
}

// Update handles PATCH /v1/shares/:share_id
// @Summary Edit a share
// @Tags Shares
// @Accept json
// @Produce json
// @Param share_id path string true "Share ID"
// @Param request body requests.UpdateShareRequest true "Changes"
// @Success 200 {object} responses.SharePayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /v1/shares/{share_id} [patch]
func (h *ShareHandler) Update(c *gin.Context) {
	var req requests.UpdateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid share payload", "share-update-bad-request")
		return
	}

	s, err := h.service.Update(c.Request.Context(), c.Param("share_id"), share.UpdateParams{
		Title:         req.Title,
		Description:   req.Description,
		IsPublic:      req.IsPublic,
		Password:      req.Password,
		ClearPassword: req.ClearPassword,
		ExpiresAt:     req.ExpiresAt,
		ClearExpiry:   req.ClearExpiry,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to update share")
		return
	}

	c.JSON(http.StatusOK, responses.FromShare(s))
}

// Delete handles DELETE /v1/shares/:share_id
// @Summary Revoke a share
// @Tags Shares
// @Produce json
// @Param share_id path string true "Share ID"
// @Success 200 {object} responses.StatusPayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /v1/shares/{share_id} [delete]
func (h *ShareHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("share_id")); err != nil {
		responses.HandleError(c, err, "failed to delete share")
		return
	}

	c.JSON(http.StatusOK, responses.StatusPayload{Status: "deleted"})
}

// Resolve handles GET /api/shared/:token
// @Summary Resolve a public share
// @Tags Public
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} responses.PublicSharePayload
// @Failure 401 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/shared/{token} [get]
func (h *ShareHandler) Resolve(c *gin.Context) {
	h.resolve(c, "")
}

// ResolveWithPassword handles POST /api/shared/:token
// @Summary Resolve a password-protected public share
// @Tags Public
// @Accept json
// @Produce json
// @Param token path string true "Share token"
// @Param request body requests.PublicShareRequest true "Password"
// @Success 200 {object} responses.PublicSharePayload
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/shared/{token} [post]
func (h *ShareHandler) ResolveWithPassword(c *gin.Context) {
	var req requests.PublicShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid payload", "share-resolve-bad-request")
		return
	}
	h.resolve(c, req.Password)
}

func (h *ShareHandler) resolve(c *gin.Context, password string) {
	s, err := h.service.ResolveByToken(c.Request.Context(), c.Param("token"), password)
	if err != nil {
		metrics.RecordPublicShareRequest(publicOutcome(err))
		responses.HandleError(c, err, "share unavailable")
		return
	}

	metrics.RecordPublicShareRequest("resolved")
	c.JSON(http.StatusOK, responses.FromPublicShare(s))
}

// Messages handles GET /api/shared/:token/messages
// @Summary List messages of a public share
// @Tags Public
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {array} responses.PublicMessagePayload
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/shared/{token}/messages [get]
func (h *ShareHandler) Messages(c *gin.Context) {
	msgs, err := h.service.MessagesByToken(c.Request.Context(), c.Param("token"), c.Query("password"))
	if err != nil {
		metrics.RecordPublicShareRequest(publicOutcome(err))
		responses.HandleError(c, err, "share unavailable")
		return
	}

	metrics.RecordPublicShareRequest("resolved")
	c.JSON(http.StatusOK, responses.FromPublicMessages(msgs))
}

func publicOutcome(err error) string {
	switch {
	case platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound):
		return "not_found"
	case platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden):
		return "forbidden"
	case platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}
