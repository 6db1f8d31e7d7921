package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tickerfeed/tickerfeed/internal/hub"
)

// responseSink adapts an http.ResponseWriter to the hub's Sink interface.
//
// http.NewResponseController provides deadline-aware write and flush
// operations, so a slow or disconnected client times out instead of
// blocking a broadcast pass indefinitely.
type responseSink struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

func newResponseSink(w http.ResponseWriter) *responseSink {
	return &responseSink{w: w, rc: http.NewResponseController(w)}
}

func (s *responseSink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *responseSink) Flush() error {
	return s.rc.Flush()
}

func (s *responseSink) SetWriteDeadline(t time.Time) error {
	return s.rc.SetWriteDeadline(t)
}

// handleLive streams price updates via Server-Sent Events.
//
// The handler registers a streaming client with the hub, writes one frame
// per currently stored record, and then suspends for the lifetime of the
// connection. It wakes only when the client disconnects (request context) or
// the hub drops the client (failed write or shutdown); it performs no
// polling of its own.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// check if flushing is supported
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// set SSE headers; caching and intermediary buffering are disabled so
	// frames reach the client as they are written
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	client := hub.NewClient(newResponseSink(w))

	// join the broadcast set before writing the snapshot so no update
	// falls between the two; Unregister blocks until any in-flight
	// broadcast write finishes, so the ResponseWriter is never touched
	// after this handler returns
	s.hub.Register(client)
	defer s.hub.Unregister(client)

	// current state of every record; the per-client write lock keeps
	// these frames from interleaving with a concurrent broadcast
	for _, record := range s.store.GetAll() {
		data, err := json.Marshal(record)
		if err != nil {
			continue
		}
		if err := s.hub.Send(client, data); err != nil {
			return
		}
	}

	s.logger.Debug("stream opened", "client_id", client.ID())
	defer s.logger.Debug("stream closed", "client_id", client.ID())

	select {
	case <-r.Context().Done():
		// request context is derived from the server context via
		// BaseContext, so this fires on both client disconnect AND
		// server shutdown
	case <-client.Done():
		// hub dropped the client after a failed write or CloseAll
	}
}
