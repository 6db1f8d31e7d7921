package simulator

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tickerfeed/tickerfeed/internal/store"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// captureBroadcaster records every payload it is handed.
type captureBroadcaster struct {
	mu       sync.Mutex
	payloads []string
}

func (b *captureBroadcaster) Broadcast(payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.payloads = append(b.payloads, string(payload))
}

func (b *captureBroadcaster) all() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.payloads...)
}

// panicBroadcaster simulates a broadcast failure inside a tick.
type panicBroadcaster struct{}

func (panicBroadcaster) Broadcast([]byte) {
	panic("broadcast blew up")
}

func TestSimulator_TickAppliesDeltaAndBroadcasts(t *testing.T) {
	st := store.NewMemoryStore()
	st.Replace("AAPL", store.Record{Symbol: "AAPL", Name: "Apple", Price: 150.00})

	b := &captureBroadcaster{}
	sim := NewSimulator(st, b, time.Second, clockwork.NewFakeClock(), testLogger())

	// pin the randomness: select the only record, apply +1.23
	sim.pick = func(n int) int { return 0 }
	sim.delta = func() float64 { return 1.23 }

	sim.safeTick()

	got, ok := st.Get("AAPL")
	if !ok {
		t.Fatal("Get(AAPL) = absent after tick")
	}
	if got.Price != 151.23 {
		t.Errorf("price after tick = %v, want 151.23", got.Price)
	}

	payloads := b.all()
	if len(payloads) != 1 {
		t.Fatalf("broadcasts = %d, want 1", len(payloads))
	}
	want := `{"tickerSymbol":"AAPL","companyName":"Apple","price":151.23}`
	if payloads[0] != want {
		t.Errorf("broadcast payload = %s, want %s", payloads[0], want)
	}
}

func TestSimulator_TickClampsPriceAtZero(t *testing.T) {
	st := store.NewMemoryStore()
	st.Replace("PENNY", store.Record{Symbol: "PENNY", Name: "Penny Stock", Price: 0.50})

	b := &captureBroadcaster{}
	sim := NewSimulator(st, b, time.Second, clockwork.NewFakeClock(), testLogger())
	sim.pick = func(n int) int { return 0 }
	sim.delta = func() float64 { return -1.0 }

	sim.safeTick()

	got, _ := st.Get("PENNY")
	if got.Price != 0 {
		t.Errorf("price after tick = %v, want 0", got.Price)
	}
}

func TestSimulator_EmptyStoreTickIsNoOp(t *testing.T) {
	st := store.NewMemoryStore()
	b := &captureBroadcaster{}
	sim := NewSimulator(st, b, time.Second, clockwork.NewFakeClock(), testLogger())

	sim.safeTick()

	if n := len(b.all()); n != 0 {
		t.Errorf("broadcasts = %d on empty store, want 0", n)
	}

	// the loop stays alive: a record added later is picked up by the
	// following tick
	st.Replace("AAPL", store.Record{Symbol: "AAPL", Name: "Apple", Price: 150})
	sim.pick = func(n int) int { return 0 }
	sim.delta = func() float64 { return 0.10 }
	sim.safeTick()

	if n := len(b.all()); n != 1 {
		t.Errorf("broadcasts = %d after record appeared, want 1", n)
	}
}

func TestSimulator_TickSurvivesBroadcastPanic(t *testing.T) {
	st := store.NewMemoryStore()
	st.Replace("AAPL", store.Record{Symbol: "AAPL", Name: "Apple", Price: 150})

	sim := NewSimulator(st, panicBroadcaster{}, time.Second, clockwork.NewFakeClock(), testLogger())
	sim.pick = func(n int) int { return 0 }
	sim.delta = func() float64 { return 0.5 }

	// must not propagate the panic
	sim.safeTick()

	// the store write committed before the broadcast failed
	got, _ := st.Get("AAPL")
	if got.Price != 150.5 {
		t.Errorf("price after panicking tick = %v, want 150.5", got.Price)
	}
}

func TestSimulator_DeltaStaysInRange(t *testing.T) {
	st := store.NewMemoryStore()
	b := &captureBroadcaster{}
	sim := NewSimulator(st, b, time.Second, clockwork.NewFakeClock(), testLogger())

	// default delta source must stay within [-1, +1]
	for i := 0; i < 1000; i++ {
		d := sim.delta()
		if d < -1 || d > 1 {
			t.Fatalf("delta() = %v, want within [-1, 1]", d)
		}
	}
}

func TestSimulator_RunTicksOnClockAndStopsOnCancel(t *testing.T) {
	st := store.NewMemoryStore()
	st.Replace("AAPL", store.Record{Symbol: "AAPL", Name: "Apple", Price: 150})

	b := &captureBroadcaster{}
	clock := clockwork.NewFakeClock()
	sim := NewSimulator(st, b, 5*time.Second, clock, testLogger())
	sim.pick = func(n int) int { return 0 }
	sim.delta = func() float64 { return 0.25 }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sim.Run(ctx)
		close(done)
	}()

	// wait until Run is parked on the ticker, then fire two ticks
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("BlockUntilContext: %v", err)
	}
	clock.Advance(5 * time.Second)
	waitForBroadcasts(t, b, 1)
	clock.Advance(5 * time.Second)
	waitForBroadcasts(t, b, 2)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}

	// two ticks of +0.25 committed in order
	got, _ := st.Get("AAPL")
	if got.Price != 150.5 {
		t.Errorf("price after two ticks = %v, want 150.5", got.Price)
	}
}

// waitForBroadcasts polls until the broadcaster has seen n payloads.
func waitForBroadcasts(t *testing.T, b *captureBroadcaster, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(b.all()) >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d broadcasts, have %d", n, len(b.all()))
}
