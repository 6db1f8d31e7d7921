package hub

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultWriteTimeout is the maximum time allowed for a single push write.
// This prevents one slow or disconnected client from stalling delivery to
// the others. Must be <= the server shutdown timeout for clean shutdown.
const DefaultWriteTimeout = 5 * time.Second

// Hub maintains the live set of streaming clients and fans each update out
// to all of them.
//
// Hub is safe for concurrent use: handlers register and unregister clients
// while the simulator broadcasts. Broadcast iterates over a snapshot of the
// client set, so a concurrent Unregister (for example from a simultaneous
// disconnect) never invalidates the iteration.
type Hub struct {
	writeTimeout time.Duration
	clock        clockwork.Clock
	logger       *slog.Logger

	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new [Hub].
//
// A non-positive writeTimeout falls back to [DefaultWriteTimeout]; a nil
// clock falls back to the real clock and a nil logger to [slog.Default].
func NewHub(writeTimeout time.Duration, clock clockwork.Clock, logger *slog.Logger) *Hub {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		writeTimeout: writeTimeout,
		clock:        clock,
		logger:       logger,
		clients:      make(map[string]*Client),
	}
}

// Register adds a client to the live set, keyed by its connection id.
// Registering an already-registered client is a no-op.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[c.id]; exists {
		return
	}
	h.clients[c.id] = c
	h.logger.Debug("client registered", "client_id", c.id, "total_clients", len(h.clients))
}

// Unregister removes a client from the live set and signals its Done
// channel. Safe to call for a client that was never registered or was
// already removed; the transition is terminal either way.
//
// Unregister blocks until any in-flight write to the client has finished,
// and after it returns the hub never touches the client's sink again. The
// owning handler must call Unregister before returning so a concurrent
// broadcast cannot write to a connection the handler has given back.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if cur, ok := h.clients[c.id]; ok && cur == c {
		delete(h.clients, c.id)
		h.logger.Debug("client unregistered", "client_id", c.id, "total_clients", len(h.clients))
	}
	h.mu.Unlock()

	c.close()
}

// Len returns the number of currently registered clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast delivers payload, framed as one push-protocol message, to every
// currently registered client.
//
// Writes happen sequentially against a snapshot of the client set, each
// bounded by the hub's write timeout. A client whose write fails is
// unregistered within the same pass and receives no retry for the message;
// failures never propagate to the caller. Broadcast returns once the
// attempt against every then-registered client has been made or abandoned.
func (h *Hub) Broadcast(payload []byte) {
	frame := frameMessage(payload)

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		deadline := h.clock.Now().Add(h.writeTimeout)
		if err := c.write(frame, deadline, h.logger); err != nil {
			// a client closed between snapshot and write is routine churn
			if !errors.Is(err, errClientClosed) {
				h.logger.Warn("dropping client after failed write",
					"client_id", c.id,
					"error", err,
				)
			}
			h.Unregister(c)
		}
	}
}

// Send delivers payload as a single framed message to one client, bounded
// by the hub's write timeout.
//
// The serving layer uses Send for the initial snapshot written on connect.
// The client's write lock keeps Send from interleaving with a concurrent
// broadcast frame. Unlike [Hub.Broadcast], the write error is returned so
// the caller can abandon the connection.
func (h *Hub) Send(c *Client, payload []byte) error {
	deadline := h.clock.Now().Add(h.writeTimeout)
	return c.write(frameMessage(payload), deadline, h.logger)
}

// CloseAll unregisters every client, signalling their Done channels.
// Called on process shutdown so no streaming handler is left hanging.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*Client)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	if len(clients) > 0 {
		h.logger.Info("closed all streaming clients", "count", len(clients))
	}
}

// frameMessage wraps payload in the push-protocol wire format.
func frameMessage(payload []byte) []byte {
	return fmt.Appendf(nil, "data: %s\n\n", payload)
}
