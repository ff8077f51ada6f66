package sim

import (
	"fmt"

	"github.com/inference-sim/cloudlet-sim/sim/trace"
)

// HostConfig describes the identical hosts of the datacenter.
type HostConfig struct {
	Count       int     `yaml:"count"`
	Cores       int     `yaml:"cores"`
	MIPSPerCore float64 `yaml:"mips_per_core"`
	RAM         int64   `yaml:"ram"`
	Bandwidth   int64   `yaml:"bandwidth"`
	Storage     int64   `yaml:"storage"`
}

// VMConfig describes the VM shape requested initially and by autoscaling.
type VMConfig struct {
	InitialCount int     `yaml:"initial_count"`
	Cores        int     `yaml:"cores"`
	MIPSPerCore  float64 `yaml:"mips_per_core"`
	RAM          int64   `yaml:"ram"`
	Bandwidth    int64   `yaml:"bandwidth"`
	Storage      int64   `yaml:"storage"`
}

// WorkloadConfig describes the generated batch of jobs.
// JobCount zero means no generated jobs (caller injects via InjectJob).
type WorkloadConfig struct {
	JobCount            int     `yaml:"job_count"`
	JobLength           int64   `yaml:"job_length"`
	JobCores            int     `yaml:"job_cores"`
	Utilization         string  `yaml:"utilization"`          // "full" (default) or "fixed"
	UtilizationFraction float64 `yaml:"utilization_fraction"` // used by "fixed"
	SubmissionInterval  float64 `yaml:"submission_interval"`  // seconds between consecutive arrivals
}

// ScalingConfig configures the threshold autoscaler.
type ScalingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Threshold   int     `yaml:"threshold"`     // jobs per VM above which VMs are added
	MaxVMs      int     `yaml:"max_vms"`       // ceiling on VM count
	CapPerEvent int     `yaml:"cap_per_event"` // most VMs added by one evaluation
	Interval    float64 `yaml:"interval"`      // 0 = one-shot check before submission; >0 = periodic
}

// SimConfig is the complete input of a simulation run.
type SimConfig struct {
	Hosts    HostConfig        `yaml:"hosts"`
	VMs      VMConfig          `yaml:"vms"`
	Workload WorkloadConfig    `yaml:"workload"`
	Scaling  ScalingConfig     `yaml:"scaling"`
	Horizon  float64           `yaml:"horizon"` // terminal simulated time (seconds)
	Trace    trace.TraceConfig `yaml:"trace"`
}

// DefaultSimConfig reproduces the reference traffic scenario: five 4-core hosts,
// two initial 2-core VMs, 100 one-core jobs and a 30 second horizon.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Hosts: HostConfig{Count: 5, Cores: 4, MIPSPerCore: 10000, RAM: 32768, Bandwidth: 100000, Storage: 1000000},
		VMs:   VMConfig{InitialCount: 2, Cores: 2, MIPSPerCore: 10000, RAM: 8192, Bandwidth: 10000, Storage: 10000},
		Workload: WorkloadConfig{
			JobCount:    100,
			JobLength:   1000,
			JobCores:    1,
			Utilization: UtilizationKindFull,
		},
		Scaling: ScalingConfig{Enabled: true, Threshold: 20, MaxVMs: 10, CapPerEvent: DefaultScalingCap},
		Horizon: 30,
		Trace:   trace.TraceConfig{Level: trace.TraceLevelNone},
	}
}

// Validate checks the configuration. Non-positive capacities yield *InvalidCapacityError.
func (c SimConfig) Validate() error {
	if err := checkPositive(
		capacityField{"horizon", c.Horizon},
		capacityField{"host count", float64(c.Hosts.Count)},
		capacityField{"host cores", float64(c.Hosts.Cores)},
		capacityField{"host mips per core", c.Hosts.MIPSPerCore},
		capacityField{"host ram", float64(c.Hosts.RAM)},
		capacityField{"host bandwidth", float64(c.Hosts.Bandwidth)},
		capacityField{"host storage", float64(c.Hosts.Storage)},
		capacityField{"vm cores", float64(c.VMs.Cores)},
		capacityField{"vm mips per core", c.VMs.MIPSPerCore},
		capacityField{"vm ram", float64(c.VMs.RAM)},
		capacityField{"vm bandwidth", float64(c.VMs.Bandwidth)},
		capacityField{"vm storage", float64(c.VMs.Storage)},
	); err != nil {
		return err
	}
	if c.VMs.InitialCount < 0 {
		return &InvalidCapacityError{Field: "initial vm count", Value: float64(c.VMs.InitialCount)}
	}
	if err := c.Workload.Validate(); err != nil {
		return err
	}
	if err := c.Scaling.Validate(); err != nil {
		return err
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return fmt.Errorf("unknown trace level %q", c.Trace.Level)
	}
	return nil
}

// Validate checks the workload section.
func (w WorkloadConfig) Validate() error {
	if w.JobCount < 0 {
		return fmt.Errorf("job count must be >= 0, got %d", w.JobCount)
	}
	if w.SubmissionInterval < 0 {
		return fmt.Errorf("submission interval must be >= 0, got %v", w.SubmissionInterval)
	}
	if w.JobCount == 0 {
		return nil
	}
	if err := checkPositive(
		capacityField{"job length", float64(w.JobLength)},
		capacityField{"job cores", float64(w.JobCores)},
	); err != nil {
		return err
	}
	_, err := NewUtilizationModel(w.Utilization, w.UtilizationFraction)
	return err
}

// Validate checks the scaling section. A disabled autoscaler is always valid.
func (s ScalingConfig) Validate() error {
	if !s.Enabled {
		return nil
	}
	if s.Threshold < 0 {
		return fmt.Errorf("scaling threshold must be >= 0, got %d", s.Threshold)
	}
	if s.MaxVMs <= 0 {
		return &InvalidCapacityError{Field: "max vms", Value: float64(s.MaxVMs)}
	}
	if s.CapPerEvent <= 0 {
		return &InvalidCapacityError{Field: "scaling cap per event", Value: float64(s.CapPerEvent)}
	}
	if s.Interval < 0 {
		return fmt.Errorf("scaling interval must be >= 0, got %v", s.Interval)
	}
	return nil
}
