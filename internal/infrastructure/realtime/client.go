package realtime

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/pkg/config"
)

// Client frame actions
const (
	ActionJoin  = "join"
	ActionLeave = "leave"
)

type wsConn interface {
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	ReadMessage() (messageType int, p []byte, err error)
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// ClientMessage is the only frame an observer may send
type ClientMessage struct {
	Action string `json:"action"`
	Room   string `json:"room"`
}

// Client pumps frames between one websocket and its registry connection
type Client struct {
	ws       wsConn
	conn     *Connection
	registry *Registry
	cfg      config.RealtimeConfig
	logger   *zap.Logger
}

// NewClient binds a websocket to a registered connection
func NewClient(ws wsConn, conn *Connection, registry *Registry, cfg config.RealtimeConfig, logger *zap.Logger) *Client {
	return &Client{
		ws:       ws,
		conn:     conn,
		registry: registry,
		cfg:      cfg,
		logger:   logger.With(zap.String("connection_id", conn.ID())),
	}
}

// Serve runs the write pump in its own goroutine and the read pump on the
// caller's. It returns once the connection is gone and deregistered.
func (c *Client) Serve() {
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writePump()
	}()

	c.readPump()

	c.registry.remove(c.conn)
	<-writerDone
	_ = c.ws.Close()
}

func (c *Client) readPump() {
	if c.cfg.MaxMessageBytes > 0 {
		c.ws.SetReadLimit(c.cfg.MaxMessageBytes)
	}
	_ = c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("realtime.read.failed", zap.Error(err))
			}
			return
		}
		if c.conn.Closed() {
			return
		}
		if err := c.handle(data); err != nil {
			c.logger.Warn("realtime.protocol.violation", zap.Error(err))
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseProtocolError, "protocol violation"),
				time.Now().Add(c.cfg.WriteTimeout))
			return
		}
	}
}

func (c *Client) handle(data []byte) error {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("malformed frame: %w", err)
	}
	room := strings.TrimSpace(msg.Room)
	if room == "" {
		return fmt.Errorf("missing room")
	}

	switch msg.Action {
	case ActionJoin:
		if err := c.registry.Join(c.conn.ID(), room); err != nil {
			return err
		}
		c.logger.Debug("realtime.room.joined", zap.String("room", room))
	case ActionLeave:
		if err := c.registry.Leave(c.conn.ID(), room); err != nil {
			return err
		}
		c.logger.Debug("realtime.room.left", zap.String("room", room))
	default:
		return fmt.Errorf("unknown action %q", msg.Action)
	}
	return nil
}

func (c *Client) writePump() {
	pingInterval := c.cfg.PongTimeout * 9 / 10
	if pingInterval <= 0 {
		pingInterval = 54 * time.Second
	}
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.conn.Done():
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(c.cfg.WriteTimeout))
			_ = c.ws.Close()
			return
		case frame := <-c.conn.Messages():
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Warn("realtime.write.failed", zap.Error(err))
				c.conn.Close()
				_ = c.ws.Close()
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.cfg.WriteTimeout)); err != nil {
				c.logger.Warn("realtime.ping.failed", zap.Error(err))
				c.conn.Close()
				_ = c.ws.Close()
				return
			}
		}
	}
}
