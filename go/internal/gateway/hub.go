package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// HubConfig holds configuration for websocket connections
type HubConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBuffer      int
	CheckOrigin     func(r *http.Request) bool
}

func DefaultHubConfig() HubConfig {
	return HubConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBuffer:      256,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// Hub fans market events out to every connected websocket client
type Hub struct {
	clients  map[*client]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	config   HubConfig

	broadcastCh chan *MarketEvent
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	hub  *Hub
	once sync.Once
}

func NewHub(config HubConfig) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan *MarketEvent, 1000),
	}
}

// Start processes broadcasts until ctx is done, then disconnects every client
func (h *Hub) Start(ctx context.Context) {
	log.Info().Msg("market hub started")
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			log.Info().Msg("market hub shutting down")
			return
		case event := <-h.broadcastCh:
			h.handleBroadcast(event)
		}
	}
}

// Broadcast queues an event for every client. It never blocks.
func (h *Hub) Broadcast(event *MarketEvent) bool {
	select {
	case h.broadcastCh <- event:
		return true
	default:
		log.Warn().Str("event_id", event.ID).Msg("broadcast channel full, dropping message")
		return false
	}
}

// ServeHTTP upgrades the request to a market feed connection
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error
		log.Error().Err(err).Msg("failed to upgrade websocket connection")
		return
	}

	c := &client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, h.config.SendBuffer),
		done: make(chan struct{}),
		hub:  h,
	}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	log.Info().
		Str("connection_id", c.id).
		Int("total_connections", total).
		Msg("websocket client connected")
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		c.once.Do(func() { close(c.done) })
		log.Info().Str("connection_id", c.id).Msg("websocket client disconnected")
	}
}

func (h *Hub) handleBroadcast(event *MarketEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- data:
		default:
			log.Warn().Str("connection_id", c.id).Msg("client send buffer full, closing connection")
			h.unregister(c)
			c.conn.Close()
		}
	}

	log.Debug().
		Str("event_type", event.Type).
		Int("connections", len(targets)).
		Msg("event broadcasted")
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		h.unregister(c)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.hub.unregister(c)
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().Err(err).Str("connection_id", c.id).Msg("failed to write message to websocket")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only services control frames; the feed is one-way.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("connection_id", c.id).Msg("unexpected websocket close error")
			}
			return
		}
	}
}
