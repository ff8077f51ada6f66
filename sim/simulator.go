package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cloudlet-sim/sim/trace"
)

// Simulator is the event clock. It owns the datacenter's hosts and VMs, every job and the
// event queue; all of them are mutated only from the dispatch loop in Run.
type Simulator struct {
	config  SimConfig
	Clock   float64
	Horizon float64

	queue  *EventQueue
	policy AllocationPolicy
	scaler ThresholdPolicy

	hosts    []*Host
	vms      []*VirtualMachine // every VM created, placed or not
	active   []*VirtualMachine // placed VMs, in placement order
	unplaced []*PlacementFailure
	nextVMID int

	jobs        []*Job
	finished    []*Job // completion order
	nextBinding int    // round-robin cursor over active VMs

	scalingTriggered bool
	vmsAdded         int

	trace  *trace.SimulationTrace
	halted bool
	hasRun bool
}

// NewSimulator validates cfg, builds the datacenter and places the initial VMs.
// Jobs described by cfg.Workload are created but not submitted until Run.
func NewSimulator(cfg SimConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	hosts, err := CreateHosts(cfg.Hosts.Count, cfg.Hosts)
	if err != nil {
		return nil, err
	}
	s := &Simulator{
		config:  cfg,
		Horizon: cfg.Horizon,
		queue:   NewEventQueue(),
		policy:  FirstFit{},
		scaler: ThresholdPolicy{
			Threshold:   cfg.Scaling.Threshold,
			MaxVMs:      cfg.Scaling.MaxVMs,
			CapPerEvent: cfg.Scaling.CapPerEvent,
		},
		hosts: hosts,
	}
	if cfg.Trace.Enabled() {
		s.trace = trace.NewSimulationTrace(cfg.Trace)
	}
	if cfg.VMs.InitialCount > 0 {
		if _, err := s.addVMs(cfg.VMs.InitialCount); err != nil {
			return nil, err
		}
	}
	if cfg.Workload.JobCount > 0 {
		jobs, err := CreateJobs(cfg.Workload)
		if err != nil {
			return nil, err
		}
		for _, j := range jobs {
			s.InjectJob(j)
		}
	}
	return s, nil
}

// InjectJob adds a Pending job to the batch. Panics once Run has started.
func (s *Simulator) InjectJob(j *Job) {
	if s.hasRun {
		panic("Simulator.InjectJob() called after Run()")
	}
	s.jobs = append(s.jobs, j)
}

// Hosts returns the datacenter's hosts in creation order.
func (s *Simulator) Hosts() []*Host { return s.hosts }

// ActiveVMs returns placed VMs in placement order.
func (s *Simulator) ActiveVMs() []*VirtualMachine {
	out := make([]*VirtualMachine, len(s.active))
	copy(out, s.active)
	return out
}

// Jobs returns every submitted job in submission order.
func (s *Simulator) Jobs() []*Job { return s.jobs }

// Trace returns the decision trace, or nil when tracing is disabled.
func (s *Simulator) Trace() *trace.SimulationTrace { return s.trace }

// Schedule adds an event to the queue.
func (s *Simulator) Schedule(e Event) {
	s.queue.Schedule(e)
}

// Run evaluates scaling, submits the jobs and dispatches events until every job has finished
// or the horizon is reached. Jobs left unfinished at the horizon keep their state.
// Panics if called more than once.
func (s *Simulator) Run() *Result {
	if s.hasRun {
		panic("Simulator.Run() called more than once")
	}
	s.hasRun = true

	if s.config.Scaling.Enabled {
		if s.config.Scaling.Interval > 0 {
			s.Schedule(NewScalingEvaluationEvent(0))
		} else {
			s.evaluateScaling(len(s.jobs))
		}
	}
	for _, j := range s.jobs {
		s.Schedule(NewJobArrivalEvent(j.SubmissionDelay, j))
	}
	s.Schedule(NewSimulationEndEvent(s.Horizon))

	for s.queue.Len() > 0 && !s.allFinished() {
		ev := s.queue.PopNext()
		if ev.Timestamp() > s.Horizon {
			break
		}
		if ev.Timestamp() < s.Clock {
			panic(fmt.Sprintf("Clock went backwards: %v < %v", ev.Timestamp(), s.Clock))
		}
		s.Clock = ev.Timestamp()
		if s.trace != nil {
			s.trace.RecordEvent(trace.EventRecord{Clock: s.Clock, Seq: ev.Seq(), Kind: string(ev.Kind())})
		}
		ev.Execute(s)
		if s.halted {
			break
		}
	}

	for _, vm := range s.active {
		vm.scheduler.Advance(s.Clock)
	}
	logrus.Infof("[t=%.4f] Simulation ended: %d/%d jobs finished", s.Clock, len(s.finished), len(s.jobs))
	return s.result()
}

func (s *Simulator) allFinished() bool {
	return len(s.finished) == len(s.jobs)
}

// addVMs creates n VMs of the configured shape and runs each through the allocation policy.
// Returns the VMs that were placed.
func (s *Simulator) addVMs(n int) ([]*VirtualMachine, error) {
	vms, err := CreateVMSpecs(s.nextVMID, n, VMConfig{
		Cores:       s.config.VMs.Cores,
		MIPSPerCore: s.config.VMs.MIPSPerCore,
		RAM:         s.config.VMs.RAM,
		Bandwidth:   s.config.VMs.Bandwidth,
		Storage:     s.config.VMs.Storage,
	})
	if err != nil {
		return nil, err
	}
	s.nextVMID += n
	placed := make([]*VirtualMachine, 0, n)
	for _, vm := range vms {
		s.vms = append(s.vms, vm)
		host, err := s.policy.Place(vm, s.hosts)
		var failure *PlacementFailure
		if errors.As(err, &failure) {
			logrus.Warnf("[t=%.4f] %v", s.Clock, failure)
			s.unplaced = append(s.unplaced, failure)
			s.recordPlacement(trace.PlacementRecord{VMID: vm.ID, HostID: -1, Clock: s.Clock, Reason: failure.Reason})
			continue
		}
		if err != nil {
			return nil, err
		}
		vm.scheduler.activate(s.Clock)
		logrus.Infof("[t=%.4f] vm %d placed on host %d (%s)", s.Clock, vm.ID, host.ID, s.policy.Name())
		s.active = append(s.active, vm)
		placed = append(placed, vm)
		s.recordPlacement(trace.PlacementRecord{VMID: vm.ID, HostID: host.ID, Clock: s.Clock, Placed: true, Reason: s.policy.Name()})
	}
	return placed, nil
}

func (s *Simulator) recordPlacement(r trace.PlacementRecord) {
	if s.trace != nil {
		s.trace.RecordPlacement(r)
	}
}

// evaluateScaling runs the autoscaler for jobCount outstanding jobs and places any VMs it asks for.
// The VM ceiling counts every VM requested, so VMs that failed placement are never re-requested
// beyond it.
func (s *Simulator) evaluateScaling(jobCount int) {
	d := s.scaler.Decide(jobCount, len(s.active), len(s.vms))
	placed := 0
	if d.Triggered {
		s.scalingTriggered = true
		if len(s.active) == 0 {
			logrus.Infof("[t=%.4f] no placed VM for %d jobs, requesting %d VMs", s.Clock, jobCount, d.AddCount)
		} else {
			logrus.Infof("[t=%.4f] high load: %d jobs per VM > %d, requesting %d VMs", s.Clock, d.ExpectedPerVM, s.scaler.Threshold, d.AddCount)
		}
	}
	if d.AddCount > 0 {
		vms, err := s.addVMs(d.AddCount)
		if err != nil {
			// the VM shape was validated with the config
			panic(fmt.Sprintf("autoscaling VM creation failed: %v", err))
		}
		placed = len(vms)
		s.vmsAdded += placed
	}
	if s.trace != nil {
		s.trace.RecordScaling(trace.ScalingRecord{
			Clock:         s.Clock,
			JobCount:      jobCount,
			VMCount:       len(s.active) - placed,
			ExpectedPerVM: d.ExpectedPerVM,
			Triggered:     d.Triggered,
			Requested:     d.AddCount,
			Placed:        placed,
		})
	}
}

// project schedules completion checks for vm's current projections.
func (s *Simulator) project(vm *VirtualMachine) {
	for _, p := range vm.scheduler.Recompute(s.Clock) {
		s.Schedule(NewJobCompletionCheckEvent(p, vm))
	}
}

// Event handlers

func (s *Simulator) handleJobArrival(e *JobArrivalEvent) {
	j := e.Job
	if j.State != JobPending {
		panic(fmt.Sprintf("job %d arrived in state %s", j.ID, j.State))
	}
	if len(s.active) == 0 {
		logrus.Warnf("[t=%.4f] job %d has no VM to run on; left pending", s.Clock, j.ID)
		return
	}
	vm := s.active[s.nextBinding%len(s.active)]
	s.nextBinding++
	vm.scheduler.Submit(j, s.Clock)
	if j.State == JobAssigned {
		logrus.Debugf("[t=%.4f] job %d waiting for cores on vm %d", s.Clock, j.ID, vm.ID)
	}
	s.project(vm)
}

func (s *Simulator) handleCompletionCheck(e *JobCompletionCheckEvent) {
	sched := e.VM.scheduler
	if e.Epoch != sched.Epoch() {
		return
	}
	for _, j := range sched.Complete(e.Job, s.Clock) {
		logrus.Debugf("[t=%.4f] job %d finished on vm %d", s.Clock, j.ID, e.VM.ID)
		s.finished = append(s.finished, j)
	}
	s.project(e.VM)
}

func (s *Simulator) handleScalingEvaluation(_ *ScalingEvaluationEvent) {
	s.evaluateScaling(len(s.jobs) - len(s.finished))
	if !s.allFinished() {
		s.Schedule(NewScalingEvaluationEvent(s.Clock + s.config.Scaling.Interval))
	}
}

func (s *Simulator) handleSimulationEnd(_ *SimulationEndEvent) {
	s.halted = true
}
