package routes

import (
	"github.com/gin-gonic/gin"

	"parley-server/services/chat-api/internal/interfaces/httpserver/handlers"
	"parley-server/services/chat-api/internal/interfaces/httpserver/middlewares"
	v1 "parley-server/services/chat-api/internal/interfaces/httpserver/routes/v1"
)

// publicShareRateLimit caps unauthenticated share lookups per client
// per minute.
const publicShareRateLimit = 60

// Provider coordinates all route registrations.
type Provider struct {
	V1       *v1.Routes
	handlers *handlers.Provider
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{
		V1:       v1.NewRoutes(handlerProvider),
		handlers: handlerProvider,
	}
}

// Register attaches the authenticated routes to the gin engine.
func (p *Provider) Register(engine *gin.Engine) {
	p.V1.Register(engine)
}

// RegisterPublic attaches the unauthenticated share routes, rate
// limited per client.
func (p *Provider) RegisterPublic(engine *gin.Engine) {
	shared := engine.Group("/api/shared", middlewares.RateLimit(publicShareRateLimit))
	shared.GET("/:token", p.handlers.Share.Resolve)
	shared.POST("/:token", p.handlers.Share.ResolveWithPassword)
	shared.GET("/:token/messages", p.handlers.Share.Messages)
}
