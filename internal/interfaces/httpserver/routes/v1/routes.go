package v1

import (
	"github.com/gin-gonic/gin"

	"parley-server/services/chat-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")

	registerThreadRoutes(group, r.handlers)
	registerShareRoutes(group, r.handlers.Share)
	registerProjectRoutes(group, r.handlers.Project)
	registerPinRoutes(group, r.handlers.Pin)
	registerCodeConversionRoutes(group, r.handlers.CodeConv)
	registerAttachmentRoutes(group, r.handlers.Attachment)
	registerUserRoutes(group, r.handlers.User)
	registerSettingsRoutes(group, r.handlers.Settings)
}

func registerThreadRoutes(group *gin.RouterGroup, h *handlers.Provider) {
	group.GET("/threads", h.Thread.List)
	group.POST("/threads", h.Thread.Create)
	group.DELETE("/threads", h.Thread.DeleteAll)
	group.GET("/threads/:thread_id", h.Thread.Get)
	group.DELETE("/threads/:thread_id", h.Thread.Delete)
	group.PATCH("/threads/:thread_id/title", h.Thread.Rename)
	group.PATCH("/threads/:thread_id/archive", h.Thread.SetArchived)
	group.PATCH("/threads/:thread_id/project", h.Thread.Move)

	group.GET("/threads/:thread_id/messages", h.Message.List)
	group.POST("/threads/:thread_id/messages", h.Message.Create)
	group.POST("/threads/:thread_id/messages/delete-trailing", h.Message.DeleteTrailing)
	group.PATCH("/messages/:message_id", h.Message.UpdateContent)

	group.GET("/threads/:thread_id/persona", h.Persona.Get)
	group.PUT("/threads/:thread_id/persona", h.Persona.Set)
	group.DELETE("/threads/:thread_id/persona", h.Persona.Clear)
	group.GET("/personas/presets", h.Persona.Presets)

	group.GET("/threads/:thread_id/summary", h.Summary.Get)
	group.PUT("/threads/:thread_id/summary", h.Summary.Set)
	group.POST("/threads/:thread_id/summary", h.Summary.Generate)
	group.DELETE("/threads/:thread_id/summary", h.Summary.Delete)
}

func registerShareRoutes(group *gin.RouterGroup, h *handlers.ShareHandler) {
	group.GET("/shares", h.List)
	group.POST("/shares", h.Create)
	group.PATCH("/shares/:share_id", h.Update)
	group.DELETE("/shares/:share_id", h.Delete)
}

func registerProjectRoutes(group *gin.RouterGroup, h *handlers.ProjectHandler) {
	group.GET("/projects", h.List)
	group.POST("/projects", h.Create)
	group.GET("/projects/:project_id", h.Get)
	group.PUT("/projects/:project_id", h.Update)
	group.DELETE("/projects/:project_id", h.Delete)
	group.GET("/projects/:project_id/threads", h.Threads)
}

func registerPinRoutes(group *gin.RouterGroup, h *handlers.PinHandler) {
	group.GET("/pins", h.List)
	group.POST("/pins", h.Create)
	group.DELETE("/pins/:message_id", h.Delete)
}

func registerCodeConversionRoutes(group *gin.RouterGroup, h *handlers.CodeConversionHandler) {
	group.GET("/code-conversions", h.List)
	group.POST("/code-conversions", h.Create)
	group.GET("/code-conversions/:conversion_id", h.Get)
	group.DELETE("/code-conversions/:conversion_id", h.Delete)
}

func registerAttachmentRoutes(group *gin.RouterGroup, h *handlers.AttachmentHandler) {
	group.GET("/attachments", h.List)
	group.GET("/attachments/:attachment_id", h.Get)
	group.DELETE("/attachments/:attachment_id", h.Delete)
}

func registerUserRoutes(group *gin.RouterGroup, h *handlers.UserHandler) {
	group.GET("/me/profile", h.GetProfile)
	group.PUT("/me/profile", h.SaveProfile)
	group.GET("/me/preferences", h.GetPreferences)
	group.PUT("/me/preferences", h.SavePreferences)
}

func registerSettingsRoutes(group *gin.RouterGroup, h *handlers.SettingsHandler) {
	group.GET("/settings/keys", h.Get)
	group.PUT("/settings/keys", h.Save)
	group.POST("/settings/keys/force-load", h.ForceLoad)
	group.DELETE("/settings/keys/:provider", h.ClearKey)
}
