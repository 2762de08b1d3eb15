package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"b2bmarket/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Feed is a live query that pushes state changes once started.
type Feed interface {
	Start()
	Stop()
}

// FeedOpener builds a named feed for the connection's account. push is
// called with every frame the feed produces.
type FeedOpener func(ctx context.Context, name string, push func(v interface{})) (Feed, error)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one WebSocket connection. An account may hold several.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	open   FeedOpener
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	feeds  map[string]Feed
	closed bool
}

func NewClient(userID string, conn *websocket.Conn, open FeedOpener) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		open:   open,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		feeds:  make(map[string]Feed),
	}
}

// shutdown stops every feed. Send is never closed; writers select on done.
func (c *Client) shutdown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	feeds := c.feeds
	c.feeds = make(map[string]Feed)
	c.mu.Unlock()

	close(c.done)
	c.cancel()
	for _, f := range feeds {
		f.Stop()
	}
}

// Manager tracks every active connection by account.
type Manager struct {
	clients    map[string]map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	stopped    chan struct{}
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		stopped:    make(chan struct{}),
	}
}

// Start runs the manager's loop until ctx is done, then closes every
// connection.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if m.clients[client.UserID] == nil {
					m.clients[client.UserID] = make(map[string]*Client)
				}
				m.clients[client.UserID][client.ID] = client
				m.mutex.Unlock()
				logger.Debug("WebSocket: client %s registered for %s", client.ID, client.UserID)

			case client := <-m.Unregister:
				m.remove(client)
				client.shutdown()
				logger.Debug("WebSocket: client %s unregistered for %s", client.ID, client.UserID)

			case <-ctx.Done():
				close(m.stopped)
				m.mutex.Lock()
				all := m.clients
				m.clients = make(map[string]map[string]*Client)
				m.mutex.Unlock()
				for _, conns := range all {
					for _, client := range conns {
						client.shutdown()
						client.Conn.Close()
					}
				}
				return
			}
		}
	}()
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	conns, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	delete(conns, client.ID)
	if len(conns) == 0 {
		delete(m.clients, client.UserID)
	}
}

// ConnectionCount reports open connections for one account.
func (m *Manager) ConnectionCount(userID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients[userID])
}

// DisconnectUser closes every connection held by userID. The read pumps
// notice and unregister.
func (m *Manager) DisconnectUser(userID string) {
	m.mutex.RLock()
	conns := make([]*Client, 0, len(m.clients[userID]))
	for _, client := range m.clients[userID] {
		conns = append(conns, client)
	}
	m.mutex.RUnlock()

	for _, client := range conns {
		client.shutdown()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "signed out")
		client.Conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		client.Conn.Close()
	}
	if len(conns) > 0 {
		logger.Info("WebSocket: closed %d connection(s) for %s", len(conns), userID)
	}
}

// Serve upgrades the request and runs the connection until it closes.
func (m *Manager) Serve(w http.ResponseWriter, r *http.Request, userID string, open FeedOpener) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := NewClient(userID, conn, open)
	select {
	case m.Register <- client:
	case <-m.stopped:
		conn.Close()
		return nil
	}

	go client.WritePump()
	go client.ReadPump(m)
	return nil
}

// ReadPump reads client messages until the connection fails.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		select {
		case m.Unregister <- c:
		case <-m.stopped:
			c.shutdown()
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket: read error for %s: %v", c.UserID, err)
			}
			break
		}
		m.HandleClientMessage(c, message)
	}
}

// WritePump drains Send onto the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("WebSocket: write error for %s: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}
