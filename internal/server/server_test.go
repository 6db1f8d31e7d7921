package server

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/tickerfeed/tickerfeed/internal/hub"
	"github.com/tickerfeed/tickerfeed/internal/store"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer builds a server around a fresh store and hub.
func newTestServer(assets fstest.MapFS, title string) (*Server, *store.MemoryStore, *hub.Hub) {
	st := store.NewMemoryStore()
	h := hub.NewHub(0, nil, testLogger())
	var fsys fs.FS
	if assets != nil {
		fsys = assets
	}
	srv := NewServer(st, h, 0, fsys, title, testLogger())
	return srv, st, h
}

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"assets/index.html": &fstest.MapFile{
			Data: []byte("<html><title>{{.Title}}</title></html>"),
		},
	}
}

func TestHandleDashboard_ServesIndex(t *testing.T) {
	srv, _, _ := newTestServer(testAssets(), "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.handleDashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Tickerfeed") {
		t.Errorf("body missing default title: %s", rec.Body.String())
	}
}

func TestHandleDashboard_CustomTitleEscaped(t *testing.T) {
	srv, _, _ := newTestServer(testAssets(), `<script>alert("x")</script>`)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.handleDashboard(rec, req)

	body := rec.Body.String()
	if strings.Contains(body, "<script>") {
		t.Errorf("title not escaped: %s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Errorf("escaped title missing: %s", body)
	}
}

func TestHandleDashboard_UnknownPathIs404(t *testing.T) {
	srv, _, _ := newTestServer(testAssets(), "")

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.handleDashboard(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv, _, _ := newTestServer(nil, "")

	ctx, cancel := context.WithCancel(context.Background())
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if srv.httpServer == nil {
		t.Fatal("httpServer not initialized after Start")
	}

	// cancelling the context triggers graceful shutdown; Wait must not
	// return before it completes
	cancel()

	done := make(chan struct{})
	go func() {
		srv.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after shutdown")
	}
}

func TestServer_WaitBlocksUntilCancelled(t *testing.T) {
	srv, _, _ := newTestServer(nil, "")

	ctx, cancel := context.WithCancel(context.Background())
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	done := make(chan struct{})
	go func() {
		srv.Wait()
		close(done)
	}()

	// the server is still running, so Wait must still be blocked
	select {
	case <-done:
		t.Fatal("Wait() returned before shutdown was triggered")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after shutdown")
	}
}

func TestServer_StartFailsOnTakenPort(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	srv := NewServer(store.NewMemoryStore(), hub.NewHub(0, nil, testLogger()), port, nil, "", testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := srv.Start(ctx); err == nil {
		t.Error("Start() on taken port = nil error, want bind failure")
	}
}
