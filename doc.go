// Package tickerfeed provides an embeddable real-time stock price feed
// served over HTTP with Server-Sent Events.
//
// Tickerfeed keeps a small in-memory set of priced records, mutates one of
// them at random on a fixed interval, and fans every update out to all
// connected streaming clients. It is designed as an SDK-first library,
// allowing developers to run the feed as part of their applications, with a
// standalone binary (cmd/tickerfeed) layered on top.
//
// # Quick Start
//
// Seed some records and start the feed with graceful shutdown:
//
//	feed, _ := tickerfeed.New(
//	    tickerfeed.WithRecord(tickerfeed.Record{Symbol: "AAPL", Name: "Apple", Price: 150.00}),
//	)
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	feed.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// Tickerfeed uses the functional options pattern for configuration:
//
//	feed, err := tickerfeed.New(
//	    tickerfeed.WithRecords(records...),
//	    tickerfeed.WithUpdateInterval(10 * time.Second),
//	    tickerfeed.WithPort(9090),
//	    tickerfeed.WithTitle("Stock Ticker"),
//	)
//
// # Architecture
//
// Tickerfeed consists of several internal packages (under internal/):
//
//   - internal/store: Concurrent in-memory record store with atomic accessors
//   - internal/simulator: Periodic random price mutation loop
//   - internal/hub: Broadcast hub fanning updates out to streaming clients
//   - internal/server: HTTP server with REST CRUD and Server-Sent Events
//   - dashboard: Embedded web UI assets
//
// The internal packages are not part of the public API and may change
// without notice. The library is designed for single-binary deployment
// using Go's embed directive for static assets.
package tickerfeed
