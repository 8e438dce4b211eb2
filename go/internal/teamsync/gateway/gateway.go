package gateway

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/timesync/go/internal/teamsync"
)

// Config holds WebSocket transport settings.
type Config struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBufferSize  int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConfig returns the default WebSocket transport settings.
func DefaultConfig() Config {
	return Config{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  4096,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBufferSize:  256,
		CheckOrigin: func(r *http.Request) bool {
			// Allow all origins; restrict at the proxy in production
			return true
		},
	}
}

// Gateway is the process-local WebSocket binding of the team sync protocol.
// It upgrades connections at a fixed path, registers them, and feeds inbound
// frames to the protocol handler until the transport closes.
type Gateway struct {
	registry *teamsync.Registry
	handler  *teamsync.Handler
	upgrader websocket.Upgrader
	config   Config
}

// New creates a gateway over the given registry and protocol handler.
func New(registry *teamsync.Registry, handler *teamsync.Handler, config Config) *Gateway {
	return &Gateway{
		registry: registry,
		handler:  handler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config: config,
	}
}

// ServeHTTP upgrades the request and runs the connection's read/write pumps.
// A request without a websocket upgrade header is rejected with 426.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !websocket.IsWebSocketUpgrade(r) {
		http.Error(w, "Expected Upgrade: websocket", http.StatusUpgradeRequired)
		return
	}

	ws, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return
	}

	client := &client{
		ws:   ws,
		send: make(chan []byte, g.config.SendBufferSize),
	}
	conn := g.registry.Register(client)

	log.Info().
		Str("connection_id", conn.ID()).
		Str("remote_addr", r.RemoteAddr).
		Msg("WebSocket connection established")

	go g.writePump(client, conn)
	go g.readPump(client, conn)
}

// errSendBufferFull is reported to the router when a recipient's outbound
// buffer is saturated; the frame is dropped for that recipient only.
var errSendBufferFull = errors.New("send buffer full")

// client adapts one gorilla connection to the registry's Socket interface.
// All writes go through the send channel so the write pump is the only
// goroutine touching the underlying connection's write side.
type client struct {
	ws   *websocket.Conn
	send chan []byte
}

func (c *client) WriteMessage(data []byte) error {
	select {
	case c.send <- data:
		return nil
	default:
		return errSendBufferFull
	}
}

func (g *Gateway) readPump(c *client, conn *teamsync.Conn) {
	defer func() {
		g.handler.HandleClose(conn)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(g.config.MaxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(g.config.ReadTimeout))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(g.config.ReadTimeout))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("connection_id", conn.ID()).Msg("unexpected WebSocket close")
			}
			return
		}
		g.handler.HandleMessage(conn, data)
		c.ws.SetReadDeadline(time.Now().Add(g.config.ReadTimeout))
	}
}

func (g *Gateway) writePump(c *client, conn *teamsync.Conn) {
	ticker := time.NewTicker(g.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case data := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(g.config.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn().Err(err).Str("connection_id", conn.ID()).Msg("failed to write to WebSocket")
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(g.config.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
