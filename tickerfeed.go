package tickerfeed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tickerfeed/tickerfeed/dashboard"
	"github.com/tickerfeed/tickerfeed/internal/hub"
	"github.com/tickerfeed/tickerfeed/internal/server"
	"github.com/tickerfeed/tickerfeed/internal/simulator"
	"github.com/tickerfeed/tickerfeed/internal/store"
)

const (
	defaultUpdateInterval = 5 * time.Second
	defaultPort           = 8080
)

// Feed is a configured stock feed instance.
//
// Create a Feed with [New], then call [Feed.Start] to begin serving.
// A Feed runs three cooperating pieces: an in-memory record store seeded
// from the configured records, a price simulator that mutates one record
// per tick, and an HTTP server exposing the dashboard, the CRUD API, and
// the live SSE stream.
type Feed struct {
	title          string
	seeds          []store.Record
	updateInterval time.Duration
	port           int
	writeTimeout   time.Duration
	logger         *slog.Logger
	clock          clockwork.Clock
}

// New creates a Feed from the given options.
//
// At least one record must be configured via [WithRecord] or [WithRecords].
// Seed records are validated and normalized up front: symbols and names are
// trimmed, prices are clamped to zero and rounded to two decimals, and
// duplicate symbols are rejected.
//
// Returns an error if any option fails or the configuration is invalid.
func New(opts ...Option) (*Feed, error) {
	cfg := &feedConfig{
		updateInterval: defaultUpdateInterval,
		port:           defaultPort,
		writeTimeout:   hub.DefaultWriteTimeout,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if len(cfg.records) == 0 {
		return nil, fmt.Errorf("at least one record is required")
	}

	seeds := make([]store.Record, 0, len(cfg.records))
	seen := make(map[string]struct{}, len(cfg.records))
	for _, r := range cfg.records {
		rec, err := store.NewRecord(r.Symbol, r.Name, r.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid record %q: %w", r.Symbol, err)
		}
		if _, dup := seen[rec.Symbol]; dup {
			return nil, fmt.Errorf("duplicate record symbol %q", rec.Symbol)
		}
		seen[rec.Symbol] = struct{}{}
		seeds = append(seeds, rec)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := cfg.clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Feed{
		title:          cfg.title,
		seeds:          seeds,
		updateInterval: cfg.updateInterval,
		port:           cfg.port,
		writeTimeout:   cfg.writeTimeout,
		logger:         logger,
		clock:          clock,
	}, nil
}

// Port returns the HTTP port the feed will listen on.
func (f *Feed) Port() int {
	return f.port
}

// UpdateInterval returns the configured simulator tick interval.
func (f *Feed) UpdateInterval() time.Duration {
	return f.updateInterval
}

// Start runs the feed until ctx is cancelled.
//
// It seeds the store, starts the price simulator, and serves HTTP on the
// configured port. Start blocks until ctx is cancelled or the server fails
// to bind, then shuts down the server, stops the simulator, and disconnects
// all streaming clients before returning.
func (f *Feed) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st := store.NewMemoryStore()
	for _, rec := range f.seeds {
		st.Insert(rec)
	}

	h := hub.NewHub(f.writeTimeout, f.clock, f.logger)
	sim := simulator.NewSimulator(st, h, f.updateInterval, f.clock, f.logger)
	srv := server.NewServer(st, h, f.port, dashboard.Assets, f.title, f.logger)

	f.logger.Info("starting feed",
		"port", f.port,
		"records", len(f.seeds),
		"update_interval", f.updateInterval,
		"symbols", strings.Join(symbolList(f.seeds), ","))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sim.Run(ctx)
	}()

	if err := srv.Start(ctx); err != nil {
		cancel()
		wg.Wait()
		h.CloseAll()
		return fmt.Errorf("starting server: %w", err)
	}

	<-ctx.Done()
	wg.Wait()
	h.CloseAll()
	srv.Wait()
	f.logger.Info("feed stopped")
	return nil
}

func symbolList(seeds []store.Record) []string {
	symbols := make([]string, len(seeds))
	for i, rec := range seeds {
		symbols[i] = rec.Symbol
	}
	return symbols
}
