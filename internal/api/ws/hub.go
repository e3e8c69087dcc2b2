package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bcssewl/optivise-installer/internal/domain/status"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/logging"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	sendBuffer  = 8
	readLimit   = 4 << 10
	eventStatus = "status"
	eventPong   = "pong"
	eventError  = "error"
)

// Snapshotter produces the current status of every host
type Snapshotter interface {
	All() []status.AppStatus
}

// StreamMetrics observes stream activity
type StreamMetrics interface {
	IncStreamClients()
	DecStreamClients()
	IncStreamMessages()
	SetAppStatus(app string, hostInstalled, manifestInstalled bool)
}

// Event is a server to client message
type Event struct {
	Type      string             `json:"type"`
	Reason    string             `json:"reason,omitempty"`
	Apps      []status.AppStatus `json:"apps,omitempty"`
	Message   string             `json:"message,omitempty"`
	Timestamp int64              `json:"timestamp"`
}

// Command is a client to server message
type Command struct {
	Type string `json:"type"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan Event
}

// Hub pushes status snapshots to connected clients
type Hub struct {
	snapshots Snapshotter
	metrics   StreamMetrics
	logger    *logging.Logger
	upgrader  websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub creates a hub. allowOrigin vets browser origins; requests without
// an Origin header are always accepted.
func NewHub(snapshots Snapshotter, allowOrigin func(origin string) bool, logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	h := &Hub{
		snapshots: snapshots,
		logger:    logger.Named("stream"),
		clients:   make(map[string]*client),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowOrigin == nil || allowOrigin(origin)
		},
	}
	return h
}

// WithMetrics attaches stream metrics
func (h *Hub) WithMetrics(m StreamMetrics) *Hub {
	h.metrics = m
	return h
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleConnection upgrades the request and serves one client until it disconnects
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Event, sendBuffer),
	}
	h.register(cl)
	go h.writePump(cl)

	h.deliver(cl, h.snapshot("connect"))
	h.readPump(cl)
}

// Publish sends a fresh snapshot to every client
func (h *Hub) Publish(reason string) {
	ev := h.snapshot(reason)

	var slow []*client
	h.mu.RLock()
	for _, cl := range h.clients {
		select {
		case cl.send <- ev:
		default:
			slow = append(slow, cl)
		}
	}
	h.mu.RUnlock()

	for _, cl := range slow {
		h.logger.Warn("dropping slow stream client", zap.String("client_id", cl.id))
		h.unregister(cl)
	}
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.Unlock()

	for _, cl := range clients {
		h.unregister(cl)
	}
}

func (h *Hub) snapshot(reason string) Event {
	apps := h.snapshots.All()
	if h.metrics != nil {
		for _, s := range apps {
			h.metrics.SetAppStatus(s.App.String(), s.OfficeInstalled, s.ManifestInstalled)
		}
	}
	return Event{
		Type:      eventStatus,
		Reason:    reason,
		Apps:      apps,
		Timestamp: time.Now().Unix(),
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.IncStreamClients()
	}
	h.logger.Debug("stream client connected", zap.String("client_id", cl.id))
}

// unregister removes cl and closes its send channel exactly once
func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	_, ok := h.clients[cl.id]
	if ok {
		delete(h.clients, cl.id)
		close(cl.send)
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	if h.metrics != nil {
		h.metrics.DecStreamClients()
	}
	h.logger.Debug("stream client disconnected", zap.String("client_id", cl.id))
}

// deliver queues ev for a single client if it is still connected
func (h *Hub) deliver(cl *client, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[cl.id]; !ok {
		return
	}
	select {
	case cl.send <- ev:
	default:
	}
}

func (h *Hub) readPump(cl *client) {
	defer func() {
		h.unregister(cl)
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(readLimit)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd Command
		if err := cl.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("stream read error", zap.String("client_id", cl.id), zap.Error(err))
			}
			return
		}

		switch cmd.Type {
		case "refresh":
			h.deliver(cl, h.snapshot("refresh"))
		case "ping":
			h.deliver(cl, Event{Type: eventPong, Timestamp: time.Now().Unix()})
		default:
			h.deliver(cl, Event{Type: eventError, Message: "unknown message type", Timestamp: time.Now().Unix()})
		}
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := cl.conn.WriteJSON(ev); err != nil {
				return
			}
			if h.metrics != nil && ev.Type == eventStatus {
				h.metrics.IncStreamMessages()
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
