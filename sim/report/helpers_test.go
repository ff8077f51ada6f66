package report

import "github.com/inference-sim/cloudlet-sim/sim"

// sampleResult is a hand-built result of a small two-VM run.
func sampleResult() *sim.Result {
	return &sim.Result{
		Summary: sim.Summary{
			FinishedCount: 2,
			TotalCount:    3,
			PerJobTimings: []sim.JobTiming{
				{JobID: 0, VMID: 0, StartTime: 0, FinishTime: 1, ElapsedTime: 1},
				{JobID: 1, VMID: 1, StartTime: 0.5, FinishTime: 2, ElapsedTime: 1.5},
			},
			MeanCompletionTime: 1.25,
			StateCounts:        map[sim.JobState]int{sim.JobFinished: 2, sim.JobRunning: 1},
		},
		TotalVMs:         3,
		PlacedVMs:        2,
		UnplacedVMIDs:    []int{2},
		ScalingTriggered: true,
		VMsAdded:         1,
		VMs: []sim.VMReport{
			{VMID: 0, HostID: 0, Cores: 2, TotalMIPS: 2000, JobsFinished: 1, ExecutedInstructions: 1000, BusyTime: 1, Utilization: 0.25},
			{VMID: 1, HostID: 1, Cores: 2, TotalMIPS: 2000, JobsFinished: 1, ExecutedInstructions: 2500, BusyTime: 2, Utilization: 0.625},
		},
		EndTime: 2,
	}
}
