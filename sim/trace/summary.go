package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	PlacedCount      int
	UnplacedCount    int
	Evaluations      int
	TriggeredCount   int
	VMsAdded         int
	DispatchedEvents int
	EventsByKind     map[string]int
	// MonotonicClock is false if any dispatched event preceded the one before it.
	MonotonicClock   bool
	HostDistribution map[int]int // host ID → VMs placed on it
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		EventsByKind:     make(map[string]int),
		HostDistribution: make(map[int]int),
		MonotonicClock:   true,
	}
	if st == nil {
		return summary
	}

	for _, p := range st.Placements {
		if p.Placed {
			summary.PlacedCount++
			summary.HostDistribution[p.HostID]++
		} else {
			summary.UnplacedCount++
		}
	}

	summary.Evaluations = len(st.Scalings)
	for _, s := range st.Scalings {
		if s.Triggered {
			summary.TriggeredCount++
		}
		summary.VMsAdded += s.Placed
	}

	summary.DispatchedEvents = len(st.Events)
	for i, e := range st.Events {
		summary.EventsByKind[e.Kind]++
		if i > 0 && e.Clock < st.Events[i-1].Clock {
			summary.MonotonicClock = false
		}
	}

	return summary
}
