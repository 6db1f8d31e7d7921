package tickerfeed

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_RequiresAtLeastOneRecord(t *testing.T) {
	_, err := New(WithLogger(testLogger()))
	if err == nil {
		t.Fatal("New() with no records should return an error")
	}
}

func TestNew_Defaults(t *testing.T) {
	feed, err := New(
		WithRecord(Record{Symbol: "AAPL", Name: "Apple", Price: 150}),
		WithLogger(testLogger()),
	)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if got := feed.Port(); got != 8080 {
		t.Errorf("Port() = %d, want 8080", got)
	}
	if got := feed.UpdateInterval(); got != 5*time.Second {
		t.Errorf("UpdateInterval() = %v, want 5s", got)
	}
}

func TestNew_NormalizesSeedRecords(t *testing.T) {
	feed, err := New(
		WithRecord(Record{Symbol: "  NFLX  ", Name: "  Netflix  ", Price: 450.238}),
		WithLogger(testLogger()),
	)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	rec := feed.seeds[0]
	if rec.Symbol != "NFLX" {
		t.Errorf("seed symbol = %q, want %q", rec.Symbol, "NFLX")
	}
	if rec.Name != "Netflix" {
		t.Errorf("seed name = %q, want %q", rec.Name, "Netflix")
	}
	if rec.Price != 450.24 {
		t.Errorf("seed price = %v, want 450.24", rec.Price)
	}
}

func TestNew_RejectsInvalidSeed(t *testing.T) {
	tests := []struct {
		name   string
		record Record
	}{
		{"empty symbol", Record{Symbol: "", Name: "Apple", Price: 150}},
		{"blank name", Record{Symbol: "AAPL", Name: "   ", Price: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(WithRecord(tt.record), WithLogger(testLogger()))
			if err == nil {
				t.Error("New() should reject invalid seed record")
			}
		})
	}
}

func TestNew_RejectsDuplicateSymbols(t *testing.T) {
	_, err := New(
		WithRecords(
			Record{Symbol: "AAPL", Name: "Apple", Price: 150},
			Record{Symbol: "AAPL", Name: "Apple Again", Price: 160},
		),
		WithLogger(testLogger()),
	)
	if err == nil {
		t.Fatal("New() should reject duplicate seed symbols")
	}
}

func TestNew_AppliesOptions(t *testing.T) {
	feed, err := New(
		WithRecord(Record{Symbol: "AAPL", Name: "Apple", Price: 150}),
		WithUpdateInterval(10*time.Second),
		WithPort(9090),
		WithTitle("My Feed"),
		WithLogger(testLogger()),
	)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if got := feed.Port(); got != 9090 {
		t.Errorf("Port() = %d, want 9090", got)
	}
	if got := feed.UpdateInterval(); got != 10*time.Second {
		t.Errorf("UpdateInterval() = %v, want 10s", got)
	}
	if feed.title != "My Feed" {
		t.Errorf("title = %q, want %q", feed.title, "My Feed")
	}
}

func TestStart_ReturnsNilOnCancelledContext(t *testing.T) {
	feed, err := New(
		WithRecord(Record{Symbol: "AAPL", Name: "Apple", Price: 150}),
		WithLogger(testLogger()),
	)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := feed.Start(ctx); err != nil {
		t.Errorf("Start() on cancelled context returned error: %v", err)
	}
}
