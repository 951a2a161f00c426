// Package sim provides the core discrete-event simulation engine for
// osschedsim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - job.go: Job identity and mutable lifecycle bookkeeping
//   - event.go / event_heap.go: the five event variants and their
//     (timestamp, type, sequence) ordering
//   - state.go: SimulationState, the six job queues, the CPU slot, and the
//     update_queues reconciliation pipeline
//   - banker.go: the device-request safety check state.Reconcile calls
//   - snapshot.go: the text table and structured JSON renderers a Display
//     event writes
//   - command.go / driver.go: parsing command records and driving the
//     event loop from them
//
// # Architecture
//
// Unlike a general-purpose cluster simulator, osschedsim models a single
// system: one CPU slot, one memory pool, one fungible device pool, and a
// fixed scheduling discipline (quantum-driven round robin with memory and
// device admission control). There are no pluggable policies or
// sub-packages; every extension point the original problem exposes
// (queue ordering, banker's safety, reconciliation order) is a concrete
// method on SimulationState, not an interface.
package sim
