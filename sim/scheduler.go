package sim

import (
	"fmt"
	"math"
)

// Projection is a predicted completion instant for a running job. It is valid only
// while the VM's projection epoch equals Epoch.
type Projection struct {
	Job   *Job
	Time  float64
	Epoch uint64
}

// TimeSharedScheduler splits one VM's throughput among its running jobs.
//
// A job of c cores receives c x T / D instructions/second scaled by its utilization, where T is
// the VM's total MIPS and D the cores demanded by all running jobs. With k single-core jobs this
// is T/k, and at full utilization the rates always sum to T. Rates are piecewise constant: they
// only change when a job arrives or finishes, and every such change invalidates all earlier
// projections.
//
// Jobs needing more than one core are admitted while the multi-core jobs already running leave
// room for them within C; the rest wait in FIFO order.
type TimeSharedScheduler struct {
	vm      *VirtualMachine
	running []*Job
	waiting []*Job

	activeSince float64
	lastUpdate  float64
	epoch       uint64

	busyTime float64
	executed float64
	finished int
}

func newTimeSharedScheduler(vm *VirtualMachine) *TimeSharedScheduler {
	return &TimeSharedScheduler{vm: vm}
}

// Running returns the running jobs in admission order.
func (s *TimeSharedScheduler) Running() []*Job {
	out := make([]*Job, len(s.running))
	copy(out, s.running)
	return out
}

// Waiting returns jobs bound to the VM but not yet admitted.
func (s *TimeSharedScheduler) Waiting() []*Job {
	out := make([]*Job, len(s.waiting))
	copy(out, s.waiting)
	return out
}

// activate starts the scheduler's clock when its VM is placed at time now.
func (s *TimeSharedScheduler) activate(now float64) {
	s.activeSince = now
	s.lastUpdate = now
}

// Epoch identifies the current set of projections.
func (s *TimeSharedScheduler) Epoch() uint64 { return s.epoch }

// TotalRate is the sum of the rates of all running jobs.
func (s *TimeSharedScheduler) TotalRate() float64 {
	var total float64
	for _, j := range s.running {
		total += j.rate
	}
	return total
}

// BusyTime is the simulated time during which at least one job was running.
func (s *TimeSharedScheduler) BusyTime() float64 { return s.busyTime }

// ExecutedInstructions is the total work performed on this VM.
func (s *TimeSharedScheduler) ExecutedInstructions() float64 { return s.executed }

// FinishedCount is the number of jobs that completed on this VM.
func (s *TimeSharedScheduler) FinishedCount() int { return s.finished }

// Advance credits every running job with the work done since the last update at its current rate.
func (s *TimeSharedScheduler) Advance(now float64) {
	dt := now - s.lastUpdate
	if dt < 0 {
		panic(fmt.Sprintf("vm %d scheduler moved backwards: %v < %v", s.vm.ID, now, s.lastUpdate))
	}
	if dt > 0 && len(s.running) > 0 {
		s.busyTime += dt
		for _, j := range s.running {
			done := min(j.rate*dt, j.Remaining())
			j.executed += done
			s.executed += done
		}
	}
	s.lastUpdate = now
}

// Submit binds an Assigned job to this VM at time now. It starts running immediately when
// admissible, otherwise it queues. Callers must Recompute afterwards.
func (s *TimeSharedScheduler) Submit(j *Job, now float64) {
	s.Advance(now)
	j.vm = s.vm
	j.State = JobAssigned
	if j.Cores <= 1 || (len(s.waiting) == 0 && s.fits(j)) {
		s.start(j, now)
		return
	}
	s.waiting = append(s.waiting, j)
}

// Recompute assigns fresh rates to all running jobs and projects their completion instants.
// Jobs with a zero rate get no projection.
func (s *TimeSharedScheduler) Recompute(now float64) []Projection {
	s.Advance(now)
	s.epoch++

	demand := 0
	for _, j := range s.running {
		demand += j.Cores
	}
	if demand == 0 {
		return nil
	}
	perCore := s.vm.TotalMIPS() / float64(demand)

	projections := make([]Projection, 0, len(s.running))
	for _, j := range s.running {
		j.rate = float64(j.Cores) * perCore * j.Utilization.Utilization(now)
		if j.rate <= 0 {
			continue
		}
		projections = append(projections, Projection{
			Job:   j,
			Time:  now + j.Remaining()/j.rate,
			Epoch: s.epoch,
		})
	}
	return projections
}

// Complete resolves a current-epoch completion check for target at time now. The target is
// finished along with any other running job whose remaining work has reached zero.
// Waiting jobs are admitted into the freed room. Callers must Recompute afterwards.
func (s *TimeSharedScheduler) Complete(target *Job, now float64) []*Job {
	s.Advance(now)
	var done []*Job
	remaining := s.running[:0]
	for _, j := range s.running {
		if j == target || j.Remaining() <= completionTolerance(j) {
			s.executed += j.Remaining()
			j.executed = float64(j.Length)
			j.rate = 0
			j.State = JobFinished
			j.FinishTime = now
			s.finished++
			done = append(done, j)
			continue
		}
		remaining = append(remaining, j)
	}
	s.running = remaining
	s.admitWaiting(now)
	return done
}

func (s *TimeSharedScheduler) start(j *Job, now float64) {
	j.State = JobRunning
	j.StartTime = now
	s.running = append(s.running, j)
}

// fits reports whether multi-core job j may start without exceeding the VM's cores.
func (s *TimeSharedScheduler) fits(j *Job) bool {
	used := 0
	for _, r := range s.running {
		if r.Cores > 1 {
			used += r.Cores
		}
	}
	return used+j.Cores <= s.vm.Cores
}

func (s *TimeSharedScheduler) admitWaiting(now float64) {
	for len(s.waiting) > 0 {
		next := s.waiting[0]
		if !s.fits(next) {
			return
		}
		s.waiting = s.waiting[1:]
		s.start(next, now)
	}
}

func completionTolerance(j *Job) float64 {
	return 1e-9 * math.Max(1, float64(j.Length))
}
