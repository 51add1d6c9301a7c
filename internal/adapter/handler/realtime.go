package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/errors"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/realtime"
	"github.com/johnquangdev/interview-assistant/pkg/config"
)

// Realtime upgrades observers to websocket connections
type Realtime struct {
	registry *realtime.Registry
	upgrader websocket.Upgrader
	cfg      config.RealtimeConfig
	logger   *zap.Logger
}

// NewRealtimeHandler creates a websocket handler. An empty origin list accepts any origin.
func NewRealtimeHandler(registry *realtime.Registry, cfg config.RealtimeConfig, allowedOrigins []string, logger *zap.Logger) *Realtime {
	return &Realtime{
		registry: registry,
		cfg:      cfg,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// Connect handles GET /ws/:client_id
// @Summary      Observer websocket
// @Description  Upgrades to a websocket. Send {"action":"join","room":"interview_<id>"} to observe a session.
// @Tags         Realtime
// @Param        client_id  path  string  true  "Client connection id"
// @Success      101
// @Failure      400  {object}  common.ErrorResponse  "Upgrade failed"
// @Router       /ws/{client_id} [get]
func (h *Realtime) Connect(c echo.Context) error {
	clientID := strings.TrimSpace(c.Param("client_id"))
	if clientID == "" || len(clientID) > 128 {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("client_id must be 1-128 characters"))
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already wrote the HTTP error
		h.logger.Warn("realtime.upgrade.failed", zap.String("connection_id", clientID), zap.Error(err))
		return nil
	}

	conn := h.registry.Register(clientID)
	h.logger.Info("realtime.connected",
		zap.String("connection_id", conn.ID()),
		zap.Int("connections", h.registry.Count()),
	)

	realtime.NewClient(ws, conn, h.registry, h.cfg, h.logger).Serve()

	h.logger.Info("realtime.disconnected", zap.String("connection_id", conn.ID()))
	return nil
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimSuffix(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.TrimSuffix(origin, "/")]
		return ok
	}
}
