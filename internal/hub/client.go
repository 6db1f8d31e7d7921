package hub

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// errClientClosed is returned by write once the client has been closed.
// The sink is never touched after close returns.
var errClientClosed = errors.New("client closed")

// Sink is the byte-stream writer a [Client] pushes frames to.
//
// Sink decouples the hub from the transport layer: the hub never sees an
// http.ResponseWriter or any other framework type, only something it can
// write to, flush, and bound with a write deadline. The serving layer owns
// the underlying connection and adapts it to this interface.
type Sink interface {
	io.Writer

	// Flush pushes buffered bytes to the underlying transport.
	Flush() error

	// SetWriteDeadline bounds the next write. Implementations that cannot
	// enforce deadlines may return an error; the hub degrades gracefully.
	SetWriteDeadline(t time.Time) error
}

// Client represents one open push connection registered with the [Hub].
//
// A Client is created when a streaming consumer connects and is destroyed
// when the transport closes or a write fails. Its lifecycle is strictly
// one-directional: connected on Register, disconnected on Unregister, no
// other states. A reconnecting consumer gets a brand-new Client with a
// fresh connection id.
type Client struct {
	id   string
	sink Sink

	// mu serializes writes to the sink so a broadcast and an initial
	// snapshot write can never interleave on the same connection.
	mu        sync.Mutex
	deadlines bool

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient creates a Client around the given sink with a generated
// connection id.
func NewClient(sink Sink) *Client {
	return &Client{
		id:        uuid.NewString(),
		sink:      sink,
		deadlines: true,
		done:      make(chan struct{}),
	}
}

// ID returns the unique connection identifier.
func (c *Client) ID() string {
	return c.id
}

// Done returns a channel that is closed once the client is unregistered.
//
// The owning connection handler selects on this channel to learn that the
// hub has dropped the client (typically after a failed write) and that the
// transport can be released.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// close marks the client disconnected. Safe to call more than once.
//
// close takes the write lock, so it blocks until any in-flight write to the
// sink has finished, and every write attempted afterwards fails without
// touching the sink. Once close returns the caller may release the
// underlying transport: net/http forbids using a ResponseWriter after the
// handler returns, so the handler's exit path relies on this barrier.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// write sends one pre-framed message to the sink, bounded by deadline.
//
// If the sink rejects write deadlines, the first failure is logged and
// deadlines are skipped for the remaining lifetime of the client, matching
// transports that buffer internally and cannot block (e.g. test recorders).
func (c *Client) write(frame []byte, deadline time.Time, logger *slog.Logger) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// a broadcast snapshot may still hold a client that was closed after
	// the snapshot was taken; its transport is gone, so bail out here
	select {
	case <-c.done:
		return errClientClosed
	default:
	}

	if c.deadlines {
		if err := c.sink.SetWriteDeadline(deadline); err != nil {
			logger.Warn("write deadlines not supported, continuing without",
				"client_id", c.id,
				"error", err,
			)
			c.deadlines = false
		}
	}

	if _, err := c.sink.Write(frame); err != nil {
		return err
	}
	return c.sink.Flush()
}
