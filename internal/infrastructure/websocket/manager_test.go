package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"b2bmarket/pkg/errors"
)

type fakeFeed struct {
	mu      sync.Mutex
	push    func(v interface{})
	started bool
	stopped bool
}

func (f *fakeFeed) Start() {
	f.mu.Lock()
	f.started = true
	f.mu.Unlock()
	f.push(map[string]interface{}{"type": "snapshot", "feed": "products", "items": []string{"p1"}})
}

func (f *fakeFeed) Stop() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

func (f *fakeFeed) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type opener struct {
	mu    sync.Mutex
	feeds []*fakeFeed
}

func (o *opener) open(ctx context.Context, name string, push func(v interface{})) (Feed, error) {
	if name != "products" {
		return nil, errors.Forbidden("This action is only available to sellers", nil)
	}
	f := &fakeFeed{push: push}
	o.mu.Lock()
	o.feeds = append(o.feeds, f)
	o.mu.Unlock()
	return f, nil
}

func (o *opener) last() *fakeFeed {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.feeds[len(o.feeds)-1]
}

func dial(t *testing.T, m *Manager, o *opener) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, m.Serve(w, r, "u1", o.open))
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &frame))
	return frame
}

func TestSubscribeAcknowledgesBeforeSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager()
	m.Start(ctx)
	o := &opener{}
	conn := dial(t, m, o)

	require.NoError(t, conn.WriteJSON(ClientMessage{Action: ActionSubscribe, Feed: "products"}))

	ack := readFrame(t, conn)
	assert.Equal(t, MessageTypeSubscribed, ack["type"])
	assert.Equal(t, "products", ack["feed"])

	snap := readFrame(t, conn)
	assert.Equal(t, "snapshot", snap["type"])

	require.NoError(t, conn.WriteJSON(ClientMessage{Action: ActionUnsubscribe, Feed: "products"}))
	assert.Equal(t, MessageTypeUnsubscribed, readFrame(t, conn)["type"])
	assert.True(t, o.last().isStopped())
}

func TestSubscribeErrorsAndPing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager()
	m.Start(ctx)
	conn := dial(t, m, &opener{})

	require.NoError(t, conn.WriteJSON(ClientMessage{Action: ActionSubscribe, Feed: "enquiries-received"}))
	frame := readFrame(t, conn)
	assert.Equal(t, MessageTypeError, frame["type"])
	assert.Equal(t, errors.CodeForbidden, frame["code"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	frame = readFrame(t, conn)
	assert.Equal(t, errors.CodeValidation, frame["code"])

	require.NoError(t, conn.WriteJSON(ClientMessage{Action: ActionPing}))
	assert.Equal(t, MessageTypePong, readFrame(t, conn)["type"])
}

func TestDisconnectUserStopsFeeds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager()
	m.Start(ctx)
	o := &opener{}
	conn := dial(t, m, o)

	require.NoError(t, conn.WriteJSON(ClientMessage{Action: ActionSubscribe, Feed: "products"}))
	readFrame(t, conn)
	readFrame(t, conn)
	assert.Equal(t, 1, m.ConnectionCount("u1"))

	m.DisconnectUser("u1")

	assert.True(t, o.last().isStopped())
	assert.Eventually(t, func() bool { return m.ConnectionCount("u1") == 0 }, 2*time.Second, 10*time.Millisecond)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
