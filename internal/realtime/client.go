package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024

	// sendBuffer bounds the per-client queue; a full queue drops frames
	// instead of blocking the broadcaster.
	sendBuffer = 8
)

// InboundEvent is a client-to-server frame: a product creation or deletion
// request from the live products view.
type InboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is one live viewer connection. All writes to the socket go through
// the send queue and WritePump, so the hub never writes concurrently.
type Client struct {
	ID string

	hub    *Hub
	conn   *websocket.Conn
	logger *log.Logger

	sendMu sync.Mutex
	closed bool
	send   chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, logger *log.Logger) *Client {
	return &Client{
		ID:     uuid.NewString(),
		hub:    hub,
		conn:   conn,
		logger: logger,
		send:   make(chan []byte, sendBuffer),
	}
}

// Send queues a frame without blocking. Reports false when the client's
// buffer is full or already released and the frame was dropped. The mutex
// keeps Send ordered against closeSend so a disconnecting client cannot
// make a broadcaster send on a closed channel.
func (c *Client) Send(payload []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// ReadPump consumes inbound events until the connection drops, handing each
// decoded event to handle. It unregisters the client on exit.
func (c *Client) ReadPump(handle func(InboundEvent)) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Printf("realtime: client %s read error: %v", c.ID, err)
			}
			return
		}
		var event InboundEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			c.logger.Printf("realtime: client %s sent malformed event: %v", c.ID, err)
			continue
		}
		handle(event)
	}
}

// WritePump drains the send queue onto the socket and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
