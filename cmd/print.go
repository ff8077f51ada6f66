package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/inference-sim/cloudlet-sim/sim"
	"github.com/inference-sim/cloudlet-sim/sim/trace"
)

// printResults writes the human-readable run report.
func printResults(w io.Writer, r *sim.Result, samples int) {
	fmt.Fprintln(w, "=== Simulation Results ===")
	fmt.Fprintf(w, "Total VMs            : %d (%d placed)\n", r.TotalVMs, r.PlacedVMs)
	if r.ScalingTriggered {
		fmt.Fprintf(w, "Auto-scaling         : triggered, %d VMs added\n", r.VMsAdded)
	} else {
		fmt.Fprintln(w, "Auto-scaling         : not triggered, load handled by initial VMs")
	}
	if len(r.UnplacedVMIDs) > 0 {
		fmt.Fprintf(w, "Unplaced VMs         : %v\n", r.UnplacedVMIDs)
	}
	fmt.Fprintf(w, "Simulation ended at  : %.2f s\n", r.EndTime)

	if r.FinishedCount == 0 {
		fmt.Fprintln(w, "\nNo jobs completed. Possible causes:")
		fmt.Fprintln(w, " - job length too high for VM capacity")
		fmt.Fprintln(w, " - horizon too short for the offered load")
		fmt.Fprintln(w, " - no VM could be placed on the hosts")
		printStates(w, r)
		return
	}

	fmt.Fprintf(w, "Completed Jobs       : %d of %d (%.1f%%)\n",
		r.FinishedCount, r.TotalCount, float64(r.FinishedCount)*100/float64(r.TotalCount))
	fmt.Fprintf(w, "Mean Completion Time : %.2f s\n", r.MeanCompletionTime)
	if r.FinishedCount < r.TotalCount {
		printStates(w, r)
	}

	fmt.Fprintln(w, "\nSample Completed Jobs:")
	n := max(0, min(samples, len(r.PerJobTimings)))
	for _, t := range r.PerJobTimings[:n] {
		fmt.Fprintf(w, " - Job %d (VM %d): %.2f s\n", t.JobID, t.VMID, t.ElapsedTime)
	}
	if len(r.PerJobTimings) > n {
		fmt.Fprintf(w, "...and %d more\n", len(r.PerJobTimings)-n)
	}

	fmt.Fprintln(w, "\nVM Utilization:")
	for _, vm := range r.VMs {
		fmt.Fprintf(w, " - VM %d (host %d): %.1f%%, %d jobs\n", vm.VMID, vm.HostID, vm.Utilization*100, vm.JobsFinished)
	}
}

func printStates(w io.Writer, r *sim.Result) {
	states := make([]string, 0, len(r.StateCounts))
	for s := range r.StateCounts {
		states = append(states, string(s))
	}
	sort.Strings(states)
	for _, s := range states {
		fmt.Fprintf(w, "Jobs %-16s: %d\n", s, r.StateCounts[sim.JobState(s)])
	}
}

// printTraceSummary writes the decision trace statistics.
func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "\n=== Trace Summary ===")
	fmt.Fprintf(w, "Placements           : %d placed, %d failed\n", ts.PlacedCount, ts.UnplacedCount)
	fmt.Fprintf(w, "Scaling Evaluations  : %d (%d triggered, %d VMs added)\n", ts.Evaluations, ts.TriggeredCount, ts.VMsAdded)
	if ts.DispatchedEvents > 0 {
		fmt.Fprintf(w, "Dispatched Events    : %d\n", ts.DispatchedEvents)
	}
}
