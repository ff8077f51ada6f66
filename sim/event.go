package sim

import "github.com/sirupsen/logrus"

// EventKind names the kind of a simulation event.
type EventKind string

const (
	EventJobArrival         EventKind = "JobArrival"
	EventJobCompletionCheck EventKind = "JobCompletionCheck"
	EventScalingEvaluation  EventKind = "ScalingEvaluation"
	EventSimulationEnd      EventKind = "SimulationEnd"
)

// eventKindPriority orders simultaneous events. Lower values run first; equal values run
// in insertion order. SimulationEnd yields to everything else due at the same instant.
var eventKindPriority = map[EventKind]int{
	EventJobArrival:         0,
	EventJobCompletionCheck: 0,
	EventScalingEvaluation:  0,
	EventSimulationEnd:      1,
}

// Event is a timestamped action dispatched by the Simulator's event loop.
type Event interface {
	Timestamp() float64
	Seq() uint64
	Kind() EventKind
	Execute(*Simulator)

	base() *baseEvent
}

type baseEvent struct {
	timestamp float64
	seq       uint64
	kind      EventKind
}

func (e *baseEvent) Timestamp() float64 { return e.timestamp }
func (e *baseEvent) Seq() uint64        { return e.seq }
func (e *baseEvent) Kind() EventKind    { return e.kind }
func (e *baseEvent) base() *baseEvent   { return e }

// JobArrivalEvent submits a Pending job to a VM.
type JobArrivalEvent struct {
	baseEvent
	Job *Job
}

func NewJobArrivalEvent(t float64, j *Job) *JobArrivalEvent {
	return &JobArrivalEvent{baseEvent: baseEvent{timestamp: t, kind: EventJobArrival}, Job: j}
}

func (e *JobArrivalEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< JobArrival: job %d at %.4f", e.Job.ID, e.timestamp)
	sim.handleJobArrival(e)
}

// JobCompletionCheckEvent fires at a projected completion instant. It is stale, and ignored,
// once the VM's projection epoch has moved past Epoch.
type JobCompletionCheckEvent struct {
	baseEvent
	Job   *Job
	VM    *VirtualMachine
	Epoch uint64
}

func NewJobCompletionCheckEvent(p Projection, vm *VirtualMachine) *JobCompletionCheckEvent {
	return &JobCompletionCheckEvent{
		baseEvent: baseEvent{timestamp: p.Time, kind: EventJobCompletionCheck},
		Job:       p.Job,
		VM:        vm,
		Epoch:     p.Epoch,
	}
}

func (e *JobCompletionCheckEvent) Execute(sim *Simulator) {
	sim.handleCompletionCheck(e)
}

// ScalingEvaluationEvent runs the autoscaling policy against live load.
type ScalingEvaluationEvent struct {
	baseEvent
}

func NewScalingEvaluationEvent(t float64) *ScalingEvaluationEvent {
	return &ScalingEvaluationEvent{baseEvent: baseEvent{timestamp: t, kind: EventScalingEvaluation}}
}

func (e *ScalingEvaluationEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< ScalingEvaluation at %.4f", e.timestamp)
	sim.handleScalingEvaluation(e)
}

// SimulationEndEvent halts the event loop at the terminal time.
type SimulationEndEvent struct {
	baseEvent
}

func NewSimulationEndEvent(t float64) *SimulationEndEvent {
	return &SimulationEndEvent{baseEvent: baseEvent{timestamp: t, kind: EventSimulationEnd}}
}

func (e *SimulationEndEvent) Execute(sim *Simulator) {
	logrus.Infof("<< SimulationEnd at %.4f", e.timestamp)
	sim.handleSimulationEnd(e)
}
