package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ringsizer/storefront/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// refreshRequest is the only message a client sends: it asks for one state holder to be
// reloaded from the remote. The result arrives as a regular event.
type refreshRequest struct {
	Type string `json:"type"`
}

type eventClient struct {
	conn    *websocket.Conn
	session *service.Session
	userID  int64

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// push drops the message when the client is gone or too slow to keep up.
func (c *eventClient) push(msg []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		zap.L().Warn("dropping event for slow client", zap.Int64("userID", c.userID))
	}
}

func (c *eventClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

type EventsHandler struct {
	sessions SessionRegistry

	clients    map[*eventClient]bool
	register   chan *eventClient
	unregister chan *eventClient
	done       chan struct{}
}

func NewEventsHandler(sessions SessionRegistry) *EventsHandler {
	return &EventsHandler{
		sessions:   sessions,
		clients:    make(map[*eventClient]bool),
		register:   make(chan *eventClient),
		unregister: make(chan *eventClient),
		done:       make(chan struct{}),
	}
}

// Run tracks connected clients until ctx is done, then closes them all.
func (h *EventsHandler) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if h.clients[client] {
				delete(h.clients, client)
				client.close()
			}
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				delete(h.clients, client)
				client.close()
			}
			return
		}
	}
}

// HandleEvents godoc
// @Summary      Stream state changes of the caller's session
// @Description  Pushes cart, cart_status, favorites, sizes, products and gold events as JSON.
// @Description  Send {"type": "<event type>"} to have that state reloaded.
// @Tags         events
// @Param        token    query      string  false  "session token when headers cannot be set"
// @Success      101      {string}   string  "Switching Protocols to WebSocket"
// @Failure      401      {object}   response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *EventsHandler) HandleEvents(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &eventClient{
		conn:    conn,
		session: s,
		userID:  s.Credential.UserID,
		send:    make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	cancel := s.Subscribe(func(e service.Event) {
		msg, err := json.Marshal(e)
		if err != nil {
			zap.L().Error("failed to encode event", zap.String("type", e.Type), zap.Error(err))
			return
		}
		client.push(msg)
	})

	go client.writePump()
	go client.readPump(h, cancel)
}

func (c *eventClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump serves refresh requests until the connection ends. Refreshes run beside the
// read loop so a disconnect is noticed, and cancels them, while a remote call is pending.
func (c *eventClient) readPump(h *EventsHandler, unsubscribe func()) {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		unsubscribe()
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("websocket closed unexpectedly", zap.Int64("userID", c.userID), zap.Error(err))
			}
			return
		}

		var req refreshRequest
		if err := json.Unmarshal(message, &req); err != nil {
			c.pushError("malformed message")
			continue
		}

		go func(eventType string) {
			if err := refresh(ctx, c.session, eventType); err != nil && ctx.Err() == nil {
				c.pushError(service.Describe(err))
			}
		}(req.Type)
	}
}

func (c *eventClient) pushError(message string) {
	msg, _ := json.Marshal(service.Event{Type: "error", Data: message})
	c.push(msg)
}

// refresh reloads the state holder behind an event type. Unknown types are ignored.
func refresh(ctx context.Context, s *service.Session, eventType string) error {
	switch eventType {
	case service.EventCart, service.EventCartStatus:
		return s.Cart.Load(ctx)
	case service.EventFavorites, service.EventSizes:
		return s.UserData.Load(ctx)
	case service.EventProducts:
		return s.Catalog.Load(ctx)
	case service.EventGold:
		return s.Gold.Load(ctx)
	}
	return nil
}
