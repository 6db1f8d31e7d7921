// Package server provides the HTTP server for the tickerfeed dashboard and API.
//
// This package is internal to tickerfeed and handles all HTTP concerns:
//
//   - Dashboard serving: Serves the embedded HTML/CSS/JS dashboard at "/"
//   - REST API: JSON CRUD for records under "/api/stocks"
//   - Server-Sent Events: Real-time price stream at "/api/stocks/live"
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests. Streaming handlers get their
// request context derived from the server context, so shutdown unblocks
// every open stream.
//
// Users of the tickerfeed library should not need to interact with this
// package directly. The server is started automatically by the facade.
package server
