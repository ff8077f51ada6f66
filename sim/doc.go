// Package sim provides the discrete-event engine of the elastic cluster simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - capacity.go: Host and VirtualMachine records and their constructors
//   - scheduler.go: the time-shared execution model that sets each job's rate
//   - simulator.go: the event clock, dispatch loop and event handlers
//
// # Control Flow
//
// NewSimulator places the initial VMs with the first-fit AllocationPolicy. Run then asks the
// ThresholdPolicy whether more VMs are needed (once, or periodically when
// ScalingConfig.Interval > 0), submits every job as a JobArrivalEvent and dispatches events
// until all jobs finish or the SimulationEndEvent at the horizon halts the loop. The returned
// Result is the only thing reporting code needs; the engine itself never prints.
//
// # Determinism
//
// Hosts are scanned in creation order, jobs bind to placed VMs round-robin in arrival order,
// and simultaneous events run in insertion order. Identical configurations produce identical
// results.
package sim
