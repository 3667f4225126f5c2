package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/jioni/internal/container"
	handlers "github.com/oksasatya/jioni/internal/interface/http"
	"github.com/oksasatya/jioni/internal/interface/middleware"
	"github.com/oksasatya/jioni/pkg/helpers"
)

// TicketModule wires the marketplace routes.
// Public: GET /api/tickets, POST /api/tickets, GET /api/tickets/search, GET /api/stats
// Gated when Enforce is set: verify, purchase and the pending queue.

type TicketModule struct {
	Handler *handlers.TicketHandler
	JWT     *helpers.JWTManager
	Enforce bool
}

func NewTicketModule(h *handlers.TicketHandler, jwt *helpers.JWTManager, enforce bool) *TicketModule {
	return &TicketModule{Handler: h, JWT: jwt, Enforce: enforce}
}

func (m *TicketModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	createLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/tickets", browseLimiter, m.Handler.Available)
	rg.POST("/tickets", createLimiter, m.Handler.Create)
	rg.GET("/tickets/search", searchLimiter, m.Handler.Search)
	rg.GET("/stats", browseLimiter, m.Handler.Stats)

	// Verification, purchase and the pending queue require a bearer
	// token when enforcement is on.
	ops := rg.Group("/")
	if m.Enforce {
		ops.Use(middleware.RequireToken(m.JWT))
		ops.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByEmail(), nil))
	} else {
		ops.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil))
	}
	{
		ops.POST("/tickets/:id/verify", m.Handler.Verify)
		ops.POST("/tickets/:id/purchase", m.Handler.Purchase)
		ops.GET("/pending-verifications", m.Handler.Pending)
	}
}
