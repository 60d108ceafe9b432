package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mcoot/rpsmatch-go/internal/dependencies/identity"
	"github.com/mcoot/rpsmatch-go/internal/model"
	"github.com/mcoot/rpsmatch-go/internal/services/match"
)

// Handler consumes inbound transport events: a message from a connection,
// or the loss of a connection.
type Handler interface {
	HandleMessage(ctx context.Context, conn model.ConnID, data []byte)
	HandleDisconnect(ctx context.Context, conn model.ConnID)
}

// Hub owns all live websocket connections and addresses outbound messages
// by connection id, so the game core never touches a socket directly.
type Hub struct {
	mu       sync.RWMutex
	conns    map[model.ConnID]*Conn
	handler  Handler
	identity identity.Generator
	upgrader websocket.Upgrader
	logger   *slog.Logger
	closed   bool
}

// Ensure Hub satisfies the core's outbound contract
var _ match.Sender = (*Hub)(nil)

// NewHub creates a new Hub
func NewHub(identity identity.Generator, logger *slog.Logger) *Hub {
	return &Hub{
		conns:    make(map[model.ConnID]*Conn),
		identity: identity,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Origin policy is enforced upstream of the game server
				return true
			},
		},
		logger: logger.With(slog.String("component", "ws")),
	}
}

// SetHandler wires the inbound message handler. Must be called before the
// hub accepts connections; the handler itself needs the hub as its Sender,
// hence the two-step construction.
func (h *Hub) SetHandler(handler Handler) {
	h.handler = handler
}

// ServeWS upgrades an HTTP request to a websocket connection and runs its
// read/write pumps
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	socket, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	conn := newConn(model.ConnID(h.identity.NewID()), socket, h)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = socket.Close()
		return
	}
	h.conns[conn.id] = conn
	total := len(h.conns)
	h.mu.Unlock()

	h.logger.Info("client connected",
		slog.String("conn_id", string(conn.id)),
		slog.Int("total_conns", total),
	)

	go conn.writePump()
	go conn.readPump()

	h.Send(conn.id, model.NewConnected())
}

// Send queues a message for a connection. Unknown connection ids and full
// send buffers drop the message; the core treats sends as fire-and-forget.
func (h *Hub) Send(connID model.ConnID, msg model.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal outbound message failed",
			slog.String("type", msg.MessageType()),
			slog.String("error", err.Error()),
		)
		return
	}

	h.mu.RLock()
	conn, ok := h.conns[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case conn.send <- data:
	default:
		h.logger.Warn("send buffer full, message dropped",
			slog.String("conn_id", string(connID)),
			slog.String("type", msg.MessageType()),
		)
	}
}

// dispatch forwards an inbound frame to the handler
func (h *Hub) dispatch(conn model.ConnID, data []byte) {
	if h.handler == nil {
		return
	}
	h.handler.HandleMessage(context.Background(), conn, data)
}

// remove drops a connection from the table and notifies the handler
func (h *Hub) remove(conn *Conn) {
	h.mu.Lock()
	current, ok := h.conns[conn.id]
	if !ok || current != conn {
		h.mu.Unlock()
		return
	}
	delete(h.conns, conn.id)
	total := len(h.conns)
	h.mu.Unlock()

	conn.close()

	h.logger.Info("client disconnected",
		slog.String("conn_id", string(conn.id)),
		slog.Int("total_conns", total),
	)

	if h.handler != nil {
		h.handler.HandleDisconnect(context.Background(), conn.id)
	}
}

// ConnCount returns the number of live connections
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close shuts down all connections
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*Conn, 0, len(h.conns))
	for _, conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[model.ConnID]*Conn)
	h.mu.Unlock()

	for _, conn := range conns {
		conn.close()
	}

	h.logger.Info("websocket hub stopped", slog.Int("disconnected_conns", len(conns)))
}
