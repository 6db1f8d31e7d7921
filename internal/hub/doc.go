// Package hub provides the concurrent broadcast hub for streaming clients.
//
// This package is internal to tickerfeed and manages the live set of open
// push connections. The main components are:
//
//   - [Client]: One open push connection (connection id + output sink +
//     disconnect signal), decoupled from the transport layer via [Sink]
//   - [Hub]: The registry that fans each update out to all clients
//
// Delivery is best effort: each write is bounded by a per-client deadline,
// and a client whose write fails is dropped during the same broadcast pass
// rather than retried. The hub never owns the transport itself; the serving
// layer adapts its connection to the [Sink] interface and tears it down when
// the client's Done channel closes.
//
// Users of the tickerfeed library should not need to interact with this
// package directly.
package hub
