// Package trace provides decision-trace recording for simulation analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// PlacementRecord captures a single VM placement attempt.
type PlacementRecord struct {
	VMID   int
	HostID int // -1 when not placed
	Clock  float64
	Placed bool
	Reason string
}

// ScalingRecord captures a single autoscaling evaluation.
type ScalingRecord struct {
	Clock         float64
	JobCount      int
	VMCount       int
	ExpectedPerVM int
	Triggered     bool
	Requested     int // VMs the decision asked for
	Placed        int // of those, how many found a host
}

// EventRecord captures one dispatched event.
type EventRecord struct {
	Clock float64
	Seq   uint64
	Kind  string
}
