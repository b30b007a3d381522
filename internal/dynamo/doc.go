// Package dynamo provides the shared primitives used by the simulation packages.
//
// The package is deliberately small and has no dependencies on the rest of
// the module:
//
//   - [State]: flat vector used to snapshot and validate particle state
//   - [ParallelFor]: chunked data-parallel loop over an index range
//   - sentinel errors and [SimulationError] for step-level context
//
// # Thread Safety
//
// [ParallelFor] runs fn concurrently on disjoint sub-ranges. Callers must only
// write to slots owned by their sub-range and must treat shared inputs as
// read-only until ParallelFor returns.
package dynamo
