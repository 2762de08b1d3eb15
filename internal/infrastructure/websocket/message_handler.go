package websocket

import (
	"encoding/json"
	stderrors "errors"
	"time"

	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
)

// Client actions.
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
	ActionPing        = "ping"
)

// Server frame types. Feed snapshots carry their own type.
const (
	MessageTypeSubscribed   = "subscribed"
	MessageTypeUnsubscribed = "unsubscribed"
	MessageTypeError        = "error"
	MessageTypePong         = "pong"
)

// ClientMessage is what a browser sends.
type ClientMessage struct {
	Action string `json:"action"`
	Feed   string `json:"feed,omitempty"`
}

// WSMessage is a control frame sent to the browser.
type WSMessage struct {
	Type      string `json:"type"`
	Feed      string `json:"feed,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

// HandleClientMessage processes one incoming frame.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(messageBytes, &msg); err != nil {
		logger.Debug("WebSocket: bad frame from %s: %v", client.UserID, err)
		m.sendErrorToClient(client, "", errors.CodeValidation, "Invalid message format")
		return
	}

	switch msg.Action {
	case ActionPing:
		m.sendToClient(client, WSMessage{Type: MessageTypePong})

	case ActionSubscribe:
		m.handleSubscribe(client, msg.Feed)

	case ActionUnsubscribe:
		client.unsubscribe(msg.Feed)
		m.sendToClient(client, WSMessage{Type: MessageTypeUnsubscribed, Feed: msg.Feed})

	default:
		m.sendErrorToClient(client, msg.Feed, errors.CodeValidation, "Unknown action")
	}
}

func (m *Manager) handleSubscribe(client *Client, name string) {
	if name == "" {
		m.sendErrorToClient(client, "", errors.CodeValidation, "feed is required")
		return
	}

	ack := func() { m.sendToClient(client, WSMessage{Type: MessageTypeSubscribed, Feed: name}) }
	if err := client.subscribe(name, ack); err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			m.sendErrorToClient(client, name, appErr.Code, appErr.Message)
			return
		}
		logger.Error("WebSocket: failed to open feed %s for %s: %v", name, client.UserID, err)
		m.sendErrorToClient(client, name, errors.CodeInternal, errors.RemoteFailureMessage)
	}
}

// subscribe starts the named feed after calling ack, so the
// acknowledgement always precedes the first snapshot. A feed that is
// already running is only acknowledged.
func (c *Client) subscribe(name string, ack func()) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if _, ok := c.feeds[name]; ok {
		c.mu.Unlock()
		ack()
		return nil
	}
	c.mu.Unlock()

	feed, err := c.open(c.ctx, name, c.push)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.feeds[name] = feed
	c.mu.Unlock()

	ack()
	feed.Start()
	return nil
}

func (c *Client) unsubscribe(name string) {
	c.mu.Lock()
	feed, ok := c.feeds[name]
	delete(c.feeds, name)
	c.mu.Unlock()

	if ok {
		feed.Stop()
	}
}

// push queues v for the write pump. It blocks while the buffer is full and
// gives up once the client is shut down.
func (c *Client) push(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Error("WebSocket: failed to encode frame for %s: %v", c.UserID, err)
		return
	}
	select {
	case c.Send <- b:
	case <-c.done:
	}
}

func (m *Manager) sendToClient(client *Client, message WSMessage) {
	message.Timestamp = time.Now().UTC().Format(time.RFC3339)
	client.push(message)
}

func (m *Manager) sendErrorToClient(client *Client, feed, code, message string) {
	m.sendToClient(client, WSMessage{
		Type:    MessageTypeError,
		Feed:    feed,
		Code:    code,
		Message: message,
	})
}
