package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// envelope frames every message on the socket with its event name.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSClient is the WebSocket implementation of Client.
type WSClient struct {
	url    string
	logger *logrus.Logger

	mu       sync.Mutex
	conn     *websocket.Conn
	handlers map[string][]Handler
}

func NewWSClient(url string, logger *logrus.Logger) *WSClient {
	return &WSClient{
		url:      url,
		logger:   logger,
		handlers: make(map[string][]Handler),
	}
}

// On registers a handler for an inbound event name.
func (c *WSClient) On(event string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], h)
}

// Connect dials the endpoint and starts the read loop. Calling Connect
// on an already connected client is an error; Close first.
func (c *WSClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return fmt.Errorf("transport: already connected to %s", c.url)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("transport: failed to dial %s: %w", c.url, err)
	}
	c.conn = conn

	go c.readLoop(conn)
	return nil
}

// readLoop is the single reader for the connection, so handlers observe
// events in wire-arrival order. A read error ends the loop silently:
// loss of connection is not an error condition here, just the end of
// live updates.
func (c *WSClient) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.logger.WithError(err).Debug("websocket read loop finished")
			return
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.logger.WithError(err).Warn("Dropping unparseable websocket frame")
			continue
		}

		c.mu.Lock()
		handlers := c.handlers[env.Event]
		c.mu.Unlock()

		for _, h := range handlers {
			h(env.Data)
		}
	}
}

// Emit publishes an event on the open connection. Best-effort,
// at-most-once: there is no acknowledgement protocol.
func (c *WSClient) Emit(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("transport: failed to marshal %s payload: %w", event, err)
	}
	frame, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("transport: failed to marshal %s envelope: %w", event, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return fmt.Errorf("transport: failed to write %s event: %w", event, err)
	}
	return nil
}

// Close tears down the connection. The read loop exits on the resulting
// read error. Safe to call when not connected.
func (c *WSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
