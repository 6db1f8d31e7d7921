package tickerfeed

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// feedConfig holds mutable state during Feed construction.
type feedConfig struct {
	title          string
	records        []Record
	updateInterval time.Duration
	port           int
	writeTimeout   time.Duration
	logger         *slog.Logger
	clock          clockwork.Clock
}

// Option is a function that configures a [Feed] instance during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithRecord], [WithRecords], [WithUpdateInterval],
// [WithPort], [WithTitle], [WithLogger], [WithWriteTimeout], [WithClock].
type Option func(*feedConfig) error

// WithRecord adds a single seed [Record] to the feed.
//
// Can be called multiple times to add multiple records. At least one
// record must be configured for [New] to succeed.
//
// Example:
//
//	feed, err := tickerfeed.New(
//	    tickerfeed.WithRecord(tickerfeed.Record{Symbol: "AAPL", Name: "Apple", Price: 150}),
//	    tickerfeed.WithRecord(tickerfeed.Record{Symbol: "MSFT", Name: "Microsoft", Price: 300}),
//	)
func WithRecord(r Record) Option {
	return func(cfg *feedConfig) error {
		cfg.records = append(cfg.records, r)
		return nil
	}
}

// WithRecords adds multiple seed [Record] values to the feed.
//
// This is a convenience function for adding several records at once.
// Equivalent to calling [WithRecord] multiple times.
func WithRecords(records ...Record) Option {
	return func(cfg *feedConfig) error {
		cfg.records = append(cfg.records, records...)
		return nil
	}
}

// WithUpdateInterval sets how often a simulated price update fires.
//
// Each tick picks one record at random and moves its price by a random
// delta in [-1, +1]. Defaults to 5 seconds if not specified.
//
// Example:
//
//	feed, err := tickerfeed.New(
//	    tickerfeed.WithRecords(records...),
//	    tickerfeed.WithUpdateInterval(10 * time.Second),
//	)
//
// Returns an error if the duration is below one second; a feed must never
// start with a non-positive interval.
func WithUpdateInterval(d time.Duration) Option {
	return func(cfg *feedConfig) error {
		if d < time.Second {
			return errors.New("update interval must be at least one second")
		}
		cfg.updateInterval = d
		return nil
	}
}

// WithPort sets the HTTP port for the feed server.
//
// The dashboard, the CRUD API, and the live stream will be available at
// http://localhost:<port>. Defaults to 8080 if not specified.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *feedConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithTitle sets the dashboard title displayed in the browser tab and header.
//
// If not specified, defaults to "Tickerfeed".
func WithTitle(title string) Option {
	return func(cfg *feedConfig) error {
		cfg.title = title
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the feed.
//
// This allows SDK consumers to control where logs are written and in what
// format. If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *feedConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithWriteTimeout bounds a single push write to one streaming client.
//
// A client that cannot accept a frame within this window is disconnected so
// it never stalls delivery to the others. Defaults to 5 seconds.
//
// Returns an error if the duration is zero or negative.
func WithWriteTimeout(d time.Duration) Option {
	return func(cfg *feedConfig) error {
		if d <= 0 {
			return errors.New("write timeout must be positive")
		}
		cfg.writeTimeout = d
		return nil
	}
}

// WithClock sets the clock used for update ticks and write deadlines.
//
// Intended for tests that drive the feed with a fake clock. If not
// specified, the real clock is used.
//
// Returns an error if the clock is nil.
func WithClock(clock clockwork.Clock) Option {
	return func(cfg *feedConfig) error {
		if clock == nil {
			return errors.New("clock cannot be nil")
		}
		cfg.clock = clock
		return nil
	}
}
