package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/rpsmatch-go/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Read deadline; refreshed on every pong
	pongWait = 60 * time.Second

	// Ping interval, kept under pongWait so a live peer never times out
	pingPeriod = 54 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Conn is a single websocket connection with buffered outbound delivery
type Conn struct {
	id     model.ConnID
	socket *websocket.Conn
	send   chan []byte
	hub    *Hub

	closeOnce sync.Once
}

func newConn(id model.ConnID, socket *websocket.Conn, hub *Hub) *Conn {
	return &Conn{
		id:     id,
		socket: socket,
		send:   make(chan []byte, sendBufferSize),
		hub:    hub,
	}
}

// close releases the socket and the send channel exactly once
func (c *Conn) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.socket.Close()
	})
}

// readPump reads frames from the peer and forwards text frames to the hub.
// Exiting the loop, for any reason, unregisters the connection.
func (c *Conn) readPump() {
	defer c.hub.remove(c)

	_ = c.socket.SetReadDeadline(time.Now().Add(pongWait))
	c.socket.SetPongHandler(func(string) error {
		return c.socket.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read error",
					slog.String("conn_id", string(c.id)),
					slog.String("error", err.Error()),
				)
			}
			return
		}

		if messageType == websocket.TextMessage {
			c.hub.dispatch(c.id, data)
		}
	}
}

// writePump drains the send buffer to the peer and keeps the connection
// alive with periodic pings
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.socket.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.socket.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := c.socket.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

			// Flush anything already queued behind this message
			n := len(c.send)
			for i := 0; i < n; i++ {
				if err := c.socket.WriteMessage(websocket.TextMessage, <-c.send); err != nil {
					return
				}
			}

		case <-ticker.C:
			_ = c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
