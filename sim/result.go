package sim

import "sort"

// JobTiming is the reported timing of one finished job.
type JobTiming struct {
	JobID       int
	VMID        int // -1 if the job carries no VM binding
	StartTime   float64
	FinishTime  float64
	ElapsedTime float64 // actual compute time: FinishTime - StartTime
}

// Summary is a read-only projection over a set of jobs.
type Summary struct {
	FinishedCount      int
	TotalCount         int
	PerJobTimings      []JobTiming // finished jobs ordered by finish time, then ID
	MeanCompletionTime float64     // mean ElapsedTime of finished jobs; 0 if none finished
	StateCounts        map[JobState]int
}

// Summarize projects jobs into a Summary. It never mutates the jobs.
func Summarize(jobs []*Job) Summary {
	sum := Summary{
		TotalCount:    len(jobs),
		PerJobTimings: make([]JobTiming, 0),
		StateCounts:   make(map[JobState]int),
	}
	var total float64
	for _, j := range jobs {
		sum.StateCounts[j.State]++
		if j.State != JobFinished {
			continue
		}
		t := JobTiming{
			JobID:       j.ID,
			VMID:        -1,
			StartTime:   j.StartTime,
			FinishTime:  j.FinishTime,
			ElapsedTime: j.ElapsedTime(),
		}
		if j.vm != nil {
			t.VMID = j.vm.ID
		}
		total += t.ElapsedTime
		sum.PerJobTimings = append(sum.PerJobTimings, t)
	}
	sum.FinishedCount = len(sum.PerJobTimings)
	if sum.FinishedCount > 0 {
		sum.MeanCompletionTime = total / float64(sum.FinishedCount)
	}
	sort.SliceStable(sum.PerJobTimings, func(a, b int) bool {
		ta, tb := sum.PerJobTimings[a], sum.PerJobTimings[b]
		if ta.FinishTime != tb.FinishTime {
			return ta.FinishTime < tb.FinishTime
		}
		return ta.JobID < tb.JobID
	})
	return sum
}

// VMReport is the reported usage of one placed VM.
type VMReport struct {
	VMID                 int
	HostID               int
	Cores                int
	TotalMIPS            float64
	JobsFinished         int
	ExecutedInstructions float64
	BusyTime             float64
	// Utilization is executed work over the work available since placement.
	Utilization float64
}

// Result is the structured outcome handed to reporting collaborators.
type Result struct {
	Summary
	TotalVMs         int   // VMs created, initial plus scaled, placed or not
	PlacedVMs        int   // VMs holding a host reservation
	UnplacedVMIDs    []int // VMs that failed placement and never ran jobs
	ScalingTriggered bool
	VMsAdded         int // scaled VMs that were placed
	VMs              []VMReport
	EndTime          float64
	// HaltedAtHorizon is true when the run stopped at the terminal time with work outstanding.
	HaltedAtHorizon bool
}

func (s *Simulator) result() *Result {
	r := &Result{
		Summary:          Summarize(s.jobs),
		TotalVMs:         len(s.vms),
		PlacedVMs:        len(s.active),
		UnplacedVMIDs:    make([]int, 0, len(s.unplaced)),
		ScalingTriggered: s.scalingTriggered,
		VMsAdded:         s.vmsAdded,
		VMs:              make([]VMReport, 0, len(s.active)),
		EndTime:          s.Clock,
		HaltedAtHorizon:  s.halted && !s.allFinished(),
	}
	for _, f := range s.unplaced {
		r.UnplacedVMIDs = append(r.UnplacedVMIDs, f.VM.ID)
	}
	for _, vm := range s.active {
		sched := vm.scheduler
		rep := VMReport{
			VMID:                 vm.ID,
			HostID:               vm.host.ID,
			Cores:                vm.Cores,
			TotalMIPS:            vm.TotalMIPS(),
			JobsFinished:         sched.FinishedCount(),
			ExecutedInstructions: sched.ExecutedInstructions(),
			BusyTime:             sched.BusyTime(),
		}
		if lifetime := s.Clock - sched.activeSince; lifetime > 0 {
			rep.Utilization = rep.ExecutedInstructions / (rep.TotalMIPS * lifetime)
		}
		r.VMs = append(r.VMs, rep)
	}
	return r
}
