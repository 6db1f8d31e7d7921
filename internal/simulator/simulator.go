package simulator

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tickerfeed/tickerfeed/internal/store"
)

// Broadcaster receives the serialized record produced by each tick.
// Satisfied by the hub; delivery failures stay inside the broadcaster.
type Broadcaster interface {
	Broadcast(payload []byte)
}

// Simulator periodically mutates one random record and hands the result to
// the broadcaster.
//
// On each tick the simulator snapshots the store, picks one record uniformly
// at random, applies a uniform price delta in [-1, +1] (normalization
// reapplies: clamp to >= 0, round to two decimals), commits it via Replace,
// and broadcasts the JSON-encoded record. An empty store makes the tick a
// silent no-op.
//
// Ticks run synchronously inside the loop, so two ticks can never overlap;
// a tick that outlives its interval defers the next one instead of racing
// it. A failure inside one tick is logged and abandoned, never terminating
// the loop.
type Simulator struct {
	store    store.Store
	hub      Broadcaster
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger

	// pick and delta are the tick's randomness, split out so tests can
	// pin the selected record and the applied delta.
	pick  func(n int) int
	delta func() float64
}

// NewSimulator creates a new [Simulator].
//
// The interval must already be validated by the caller (at least one
// second); construction applies it as-is. A nil clock falls back to the
// real clock and a nil logger to [slog.Default].
func NewSimulator(st store.Store, hub Broadcaster, interval time.Duration, clock clockwork.Clock, logger *slog.Logger) *Simulator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Simulator{
		store:    st,
		hub:      hub,
		interval: interval,
		clock:    clock,
		logger:   logger,
		pick:     rng.Intn,
		delta: func() float64 {
			return rng.Float64()*2 - 1
		},
	}
}

// Run executes the update loop until ctx is cancelled.
//
// Run blocks; callers start it in its own goroutine. On cancellation the
// pending timer is stopped and no further ticks fire; an in-flight tick is
// allowed to complete before Run returns.
func (s *Simulator) Run(ctx context.Context) {
	s.logger.Info("simulator started", "interval", s.interval.String())

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("simulator stopped")
			return
		case <-ticker.Chan():
			s.safeTick()
		}
	}
}

// safeTick runs one tick inside an error boundary. Whatever goes wrong in a
// single tick is logged; the loop continues on the next scheduled tick.
func (s *Simulator) safeTick() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tick panic recovered", "panic", r)
		}
	}()

	if err := s.tick(); err != nil {
		s.logger.Error("tick failed", "error", err)
	}
}

// tick performs one mutate-and-broadcast cycle.
func (s *Simulator) tick() error {
	records := s.store.GetAll()
	if len(records) == 0 {
		return nil
	}

	current := records[s.pick(len(records))]
	updated := current.WithPrice(current.Price + s.delta())
	s.store.Replace(updated.Symbol, updated)

	payload, err := json.Marshal(updated)
	if err != nil {
		return err
	}

	s.logger.Debug("price updated",
		"symbol", updated.Symbol,
		"old_price", current.Price,
		"new_price", updated.Price,
	)

	s.hub.Broadcast(payload)
	return nil
}
