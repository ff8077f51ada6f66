package sim

import "fmt"

// JobState is the lifecycle state of a Job.
type JobState string

const (
	JobPending  JobState = "pending"  // submitted, not yet arrived at a VM
	JobAssigned JobState = "assigned" // bound to a VM, waiting for cores
	JobRunning  JobState = "running"
	JobFinished JobState = "finished"
)

// Job (cloudlet) is a unit of work of fixed instruction length.
type Job struct {
	ID              int
	Length          int64 // instructions (MI)
	Cores           int
	Utilization     UtilizationModel
	SubmissionDelay float64 // arrival time relative to simulation start

	State      JobState
	StartTime  float64
	FinishTime float64

	executed float64
	rate     float64
	vm       *VirtualMachine
}

// NewJob creates a Pending job. A nil utilization model means full utilization.
func NewJob(id int, length int64, cores int, util UtilizationModel) (*Job, error) {
	if err := checkPositive(
		capacityField{"job length", float64(length)},
		capacityField{"job cores", float64(cores)},
	); err != nil {
		return nil, err
	}
	if util == nil {
		util = UtilizationFull{}
	}
	return &Job{ID: id, Length: length, Cores: cores, Utilization: util, State: JobPending}, nil
}

// CreateJobs builds cfg.JobCount identical jobs. Job i arrives at i x cfg.SubmissionInterval.
func CreateJobs(cfg WorkloadConfig) ([]*Job, error) {
	util, err := NewUtilizationModel(cfg.Utilization, cfg.UtilizationFraction)
	if err != nil {
		return nil, err
	}
	jobs := make([]*Job, 0, cfg.JobCount)
	for i := 0; i < cfg.JobCount; i++ {
		j, err := NewJob(i, cfg.JobLength, cfg.JobCores, util)
		if err != nil {
			return nil, err
		}
		j.SubmissionDelay = float64(i) * cfg.SubmissionInterval
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// Executed returns the instructions executed so far. It never decreases.
func (j *Job) Executed() float64 { return j.executed }

// Remaining returns the instructions left to execute.
func (j *Job) Remaining() float64 { return float64(j.Length) - j.executed }

// Rate returns the execution rate granted at the last projection (instructions/second).
// It is zero unless the job is Running.
func (j *Job) Rate() float64 { return j.rate }

// VM returns the VM the job is bound to, or nil while Pending.
func (j *Job) VM() *VirtualMachine { return j.vm }

// ElapsedTime is the job's actual compute time (finish - start). Zero unless Finished.
func (j *Job) ElapsedTime() float64 {
	if j.State != JobFinished {
		return 0
	}
	return j.FinishTime - j.StartTime
}

func (j *Job) String() string {
	return fmt.Sprintf("Job{ID: %d, State: %s, Executed: %.2f/%d}", j.ID, j.State, j.executed, j.Length)
}
