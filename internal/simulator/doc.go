// Package simulator provides the periodic price update loop.
//
// This package is internal to tickerfeed. On a fixed interval the
// [Simulator] mutates one randomly chosen record in the store and submits
// the updated record to the broadcast hub. It is the only writer that runs
// outside a request handler, and the single broadcast call per tick is what
// gives updates their commit order on the wire.
//
// The loop is cancellable via context and survives any failure raised
// during a single tick.
package simulator
