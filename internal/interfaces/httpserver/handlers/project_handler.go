package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain/project"
	"parley-server/services/chat-api/internal/domain/thread"
	"parley-server/services/chat-api/internal/interfaces/httpserver/requests"
	"parley-server/services/chat-api/internal/interfaces/httpserver/responses"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// ProjectHandler exposes HTTP entrypoints for projects.
type ProjectHandler struct {
	service *project.Service
	threads *thread.Service
	log     zerolog.Logger
}

// NewProjectHandler constructs the handler.
func NewProjectHandler(service *project.Service, threads *thread.Service, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		threads: threads,
		log:     log.With().Str("handler", "project").Logger(),
	}
}

// List handles GET /v1/projects
// @Summary List projects
// @Tags Projects
// @Produce json
// @Success 200 {array} responses.ProjectPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.service.ListMine(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list projects")
		return
	}

	c.JSON(http.StatusOK, responses.FromProjects(projects))
}

// Get handles GET /v1/projects/:project_id
// @Summary Get a project
// @Tags Projects
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} responses.ProjectPayload
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/projects/{project_id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get project")
		return
	}
	if p == nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, "project not found", "project-get-not-found")
		return
	}

	c.JSON(http.StatusOK, responses.FromProject(p))
}

// Threads handles GET /v1/projects/:project_id/threads
// @Summary List threads in a project
// @Tags Projects
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {array} responses.ThreadPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/projects/{project_id}/threads [get]
func (h *ProjectHandler) Threads(c *gin.Context) {
	threads, err := h.threads.ListByProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to list project threads")
		return
	}

	c.JSON(http.StatusOK, responses.FromThreads(threads))
}

// Create handles POST /v1/projects
// @Summary Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body requests.CreateProjectRequest true "Project"
// @Success 201 {object} responses.ProjectPayload
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req requests.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "name is required", "project-create-bad-request")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req.Name, req.Description, req.Color)
	if err != nil {
		responses.HandleError(c, err, "failed to create project")
		return
	}

	c.JSON(http.StatusCreated, responses.FromProject(p))
}

// Update handles PUT /v1/projects/:project_id
// @Summary Update a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param request body requests.UpdateProjectRequest true "Project"
// @Success 200 {object} responses.ProjectPayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /v1/projects/{project_id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req requests.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "name is required", "project-update-bad-request")
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("project_id"), req.Name, req.Description, req.Color)
	if err != nil {
		responses.HandleError(c, err, "failed to update project")
		return
	}

	c.JSON(http.StatusOK, responses.FromProject(p))
}

// Delete handles DELETE /v1/projects/:project_id
// @Summary Delete a project
// @Tags Projects
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} responses.StatusPayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /v1/projects/{project_id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("project_id")); err != nil {
		responses.HandleError(c, err, "failed to delete project")
		return
	}

	c.JSON(http.StatusOK, responses.StatusPayload{Status: "deleted"})
}
