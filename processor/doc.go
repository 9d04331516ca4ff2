// Package processor implements the params-processing loop at the
// heart of the client wrapper: given a method definition and a set of
// named params, it repeatedly builds a fresh request descriptor,
// executes it through the engine, evaluates the countable limit
// predicate, maps accepted responses into typed results and
// accumulates them in iteration order.
//
// The loop is a small state machine: Running until either the limit
// predicate stops it (StoppedByLimit) or a cooperative Interrupt does
// (StoppedByInterrupt). Two contracts matter and are easy to get
// wrong:
//
//   - The response that triggers the limit is discarded. Its round
//     trip has already happened, but it is never mapped or collected.
//   - Interrupt is checked once per iteration, after the continue/stop
//     decision, so the iteration already started still contributes its
//     result; the interrupt takes effect only at the loop boundary.
//
// Transport and mapper errors propagate unmodified, aborting the run
// with no partial result. ProcessAsync offloads one run onto a
// goroutine; iterations inside a run are never parallelized, since
// each cursor value depends on the previous iteration.
package processor
