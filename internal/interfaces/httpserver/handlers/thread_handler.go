package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain/query"
	"parley-server/services/chat-api/internal/domain/thread"
	"parley-server/services/chat-api/internal/interfaces/httpserver/requests"
	"parley-server/services/chat-api/internal/interfaces/httpserver/responses"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// ThreadHandler exposes HTTP entrypoints for threads.
type ThreadHandler struct {
	service *thread.Service
	log     zerolog.Logger
}

// NewThreadHandler constructs the handler.
func NewThreadHandler(service *thread.Service, log zerolog.Logger) *ThreadHandler {
	return &ThreadHandler{
		service: service,
		log:     log.With().Str("handler", "thread").Logger(),
	}
}

// List handles GET /v1/threads
// @Summary List threads
// @Description Lists the current user's threads, most recent activity first
// @Tags Threads
// @Produce json
// @Param include_archived query bool false "Include archived threads"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {array} responses.ThreadPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/threads [get]
func (h *ThreadHandler) List(c *gin.Context) {
	includeArchived, _ := strconv.ParseBool(c.Query("include_archived"))
	pagination := paginationFromQuery(c)

	threads, err := h.service.List(c.Request.Context(), includeArchived, pagination)
	if err != nil {
		responses.HandleError(c, err, "failed to list threads")
		return
	}

	c.JSON(http.StatusOK, responses.FromThreads(threads))
}

// Get handles GET /v1/threads/:thread_id
// @Summary Get a thread
// @Tags Threads
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Success 200 {object} responses.ThreadPayload
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id} [get]
func (h *ThreadHandler) Get(c *gin.Context) {
	t, err := h.service.Get(c.Request.Context(), c.Param("thread_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get thread")
		return
	}
	if t == nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, "thread not found", "thread-get-not-found")
		return
	}

	c.JSON(http.StatusOK, responses.FromThread(t))
}

// Create handles POST /v1/threads
// @Summary Create a thread
// @Tags Threads
// @Accept json
// @Produce json
// @Param request body requests.CreateThreadRequest true "Thread"
// @Success 201 {object} responses.ThreadPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/threads [post]
func (h *ThreadHandler) Create(c *gin.Context) {
	var req requests.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid thread payload", "thread-create-bad-request")
		return
	}

	t, err := h.service.Create(c.Request.Context(), req.Title, req.ProjectID)
	if err != nil {
		responses.HandleError(c, err, "failed to create thread")
		return
	}

	c.JSON(http.StatusCreated, responses.FromThread(t))
}

// Rename handles PATCH /v1/threads/:thread_id/title
// @Summary Rename a thread
// @Tags Threads
// @Accept json
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Param request body requests.RenameThreadRequest true "Title"
// @Success 200 {object} responses.ThreadPayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/title [patch]
func (h *ThreadHandler) Rename(c *gin.Context) {
	var req requests.RenameThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "title is required", "thread-rename-bad-request")
		return
	}

	t, err := h.service.Rename(c.Request.Context(), c.Param("thread_id"), req.Title)
	if err != nil {
		responses.HandleError(c, err, "failed to rename thread")
		return
	}

	c.JSON(http.StatusOK, responses.FromThread(t))
}

// SetArchived handles PATCH /v1/threads/:thread_id/archive
// @Summary Archive or unarchive a thread
// @Tags Threads
// @Accept json
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Param request body requests.ArchiveThreadRequest true "Archive flag"
// @Success 200 {object} responses.ThreadPayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/archive [patch]
func (h *ThreadHandler) SetArchived(c *gin.Context) {
	var req requests.ArchiveThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid archive payload", "thread-archive-bad-request")
		return
	}

	t, err := h.service.SetArchived(c.Request.Context(), c.Param("thread_id"), req.Archived)
	if err != nil {
		responses.HandleError(c, err, "failed to update thread")
		return
	}

	c.JSON(http.StatusOK, responses.FromThread(t))
}

// Move handles PATCH /v1/threads/:thread_id/project
// @Summary Move a thread to a project
// @Tags Threads
// @Accept json
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Param request body requests.MoveThreadRequest true "Target project"
// @Success 200 {object} responses.ThreadPayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id}/project [patch]
func (h *ThreadHandler) Move(c *gin.Context) {
	var req requests.MoveThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid move payload", "thread-move-bad-request")
		return
	}

	t, err := h.service.MoveToProject(c.Request.Context(), c.Param("thread_id"), req.ProjectID)
	if err != nil {
		responses.HandleError(c, err, "failed to move thread")
		return
	}

	c.JSON(http.StatusOK, responses.FromThread(t))
}

// Delete handles DELETE /v1/threads/:thread_id
// @Summary Delete a thread
// @Tags Threads
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Success 200 {object} responses.StatusPayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /v1/threads/{thread_id} [delete]
func (h *ThreadHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("thread_id")); err != nil {
		responses.HandleError(c, err, "failed to delete thread")
		return
	}

	c.JSON(http.StatusOK, responses.StatusPayload{Status: "deleted"})
}

// DeleteAll handles DELETE /v1/threads
// @Summary Delete all threads of the current user
// @Tags Threads
// @Produce json
// @Success 200 {object} responses.StatusPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/threads [delete]
func (h *ThreadHandler) DeleteAll(c *gin.Context) {
	if err := h.service.DeleteAll(c.Request.Context()); err != nil {
		responses.HandleError(c, err, "failed to delete threads")
		return
	}

	c.JSON(http.StatusOK, responses.StatusPayload{Status: "deleted"})
}

func paginationFromQuery(c *gin.Context) *query.Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	if page == 0 && pageSize == 0 {
		return nil
	}
	return query.NewPagination(page, pageSize)
}
