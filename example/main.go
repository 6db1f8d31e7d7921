package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tickerfeed/tickerfeed"
)

func main() {
	// start the feed with a handful of seed stocks
	feed, err := tickerfeed.New(
		tickerfeed.WithRecords(
			tickerfeed.Record{Symbol: "AAPL", Name: "Apple", Price: 150.00},
			tickerfeed.Record{Symbol: "MSFT", Name: "Microsoft", Price: 300.00},
			tickerfeed.Record{Symbol: "GOOG", Name: "Alphabet", Price: 2800.00},
			tickerfeed.Record{Symbol: "AMZN", Name: "Amazon", Price: 3400.00},
		),
		tickerfeed.WithUpdateInterval(2*time.Second),
		tickerfeed.WithPort(8080),
		tickerfeed.WithTitle("Tickerfeed Demo"),
	)
	if err != nil {
		slog.Error("failed to create feed", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Tickerfeed Demo                                     ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Stocks:                                             ║")
	fmt.Println("  ║   • AAPL, MSFT, GOOG, AMZN (2s update interval)       ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Try the API:                                        ║")
	fmt.Println("  ║   curl localhost:8080/api/stocks                      ║")
	fmt.Println("  ║   curl localhost:8080/api/stocks/live                 ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := feed.Start(ctx); err != nil {
		slog.Error("tickerfeed error", "error", err)
		os.Exit(1)
	}
}
