package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/internal/adapter/dto/common"
	"github.com/johnquangdev/interview-assistant/pkg/config"
	"github.com/johnquangdev/interview-assistant/pkg/middleware"
)

// HealthCheck pings one optional backend
type HealthCheck func(ctx context.Context) error

// Counter reports a live count for the health endpoint
type Counter interface {
	Count() int
}

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Interview   *Interview
	Handoffs    *Handoffs
	Transcripts *Transcripts
	FAQ         *FAQ
	Realtime    *Realtime
}

// Router holds all handlers
type Router struct {
	cfg         *config.Config
	handlers    Handlers
	connections Counter
	sessions    Counter
	checks      map[string]HealthCheck
	logger      *zap.Logger
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, handlers Handlers, connections, sessions Counter, checks map[string]HealthCheck) *Router {
	return &Router{
		cfg:         cfg,
		handlers:    handlers,
		connections: connections,
		sessions:    sessions,
		checks:      checks,
		logger:      handlers.Interview.logger,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler(rt.logger)

	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/ws/:client_id", rt.handlers.Realtime.Connect)

	// API v1 group
	v1 := e.Group("/v1")
	rt.setupInterviewRoutes(v1)
	rt.setupHandoffRoutes(v1)
	rt.setupTranscriptRoutes(v1)
	rt.setupAnalyticsRoutes(v1)
	v1.POST("/faq", rt.handlers.FAQ.Ask)
}

// setupInterviewRoutes configures interview session routes
func (rt *Router) setupInterviewRoutes(g *echo.Group) {
	h := rt.handlers.Interview
	interviews := g.Group("/interviews")
	interviews.POST("", h.StartInterview)

	requireID := middleware.RequireSessionID()
	interviews.GET("/:id", h.GetInterview, requireID)
	interviews.POST("/:id/answers", h.SubmitAnswer, requireID)
	interviews.POST("/:id/handoff/resolve", h.ResolveHandoff, requireID)
	interviews.GET("/:id/summary", h.GetSummary, requireID)
	interviews.GET("/:id/transcript", rt.handlers.Transcripts.GetTranscript, requireID)
}

func (rt *Router) setupHandoffRoutes(g *echo.Group) {
	g.GET("/handoffs/pending", rt.handlers.Handoffs.ListPending)
}

func (rt *Router) setupTranscriptRoutes(g *echo.Group) {
	g.GET("/transcripts", rt.handlers.Transcripts.ListTranscripts)
}

func (rt *Router) setupAnalyticsRoutes(g *echo.Group) {
	g.GET("/analytics/overview", rt.handlers.Interview.GetAnalytics)
}

// healthCheck returns health status. A failing optional backend degrades the
// status but still answers 200 so the realtime path stays routable.
func (rt *Router) healthCheck(c echo.Context) error {
	resp := common.HealthResponse{
		Status:      "ok",
		Environment: rt.cfg.Server.Environment,
	}
	if rt.connections != nil {
		resp.Connections = rt.connections.Count()
	}
	if rt.sessions != nil {
		resp.Sessions = rt.sessions.Count()
	}

	if len(rt.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		resp.Components = make(map[string]string, len(rt.checks))
		for name, check := range rt.checks {
			if err := check(ctx); err != nil {
				resp.Components[name] = err.Error()
				resp.Status = "degraded"
				continue
			}
			resp.Components[name] = "ok"
		}
	}

	return c.JSON(http.StatusOK, resp)
}
