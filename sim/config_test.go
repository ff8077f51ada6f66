package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inference-sim/cloudlet-sim/sim/trace"
)

func TestDefaultSimConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultSimConfig().Validate())
}

func TestSimConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*SimConfig)
		wantCapErr bool
		wantAnyErr bool
	}{
		{"zero horizon", func(c *SimConfig) { c.Horizon = 0 }, true, true},
		{"zero host count", func(c *SimConfig) { c.Hosts.Count = 0 }, true, true},
		{"negative vm bandwidth", func(c *SimConfig) { c.VMs.Bandwidth = -5 }, true, true},
		{"negative initial vms", func(c *SimConfig) { c.VMs.InitialCount = -1 }, true, true},
		{"zero initial vms allowed", func(c *SimConfig) { c.VMs.InitialCount = 0 }, false, false},
		{"zero job length", func(c *SimConfig) { c.Workload.JobLength = 0 }, true, true},
		{"zero job length ignored without jobs", func(c *SimConfig) {
			c.Workload.JobCount = 0
			c.Workload.JobLength = 0
		}, false, false},
		{"negative submission interval", func(c *SimConfig) { c.Workload.SubmissionInterval = -1 }, false, true},
		{"unknown utilization", func(c *SimConfig) { c.Workload.Utilization = "bursty" }, false, true},
		{"zero max vms", func(c *SimConfig) { c.Scaling.MaxVMs = 0 }, true, true},
		{"zero max vms ignored when disabled", func(c *SimConfig) {
			c.Scaling.Enabled = false
			c.Scaling.MaxVMs = 0
		}, false, false},
		{"zero scaling cap", func(c *SimConfig) { c.Scaling.CapPerEvent = 0 }, true, true},
		{"negative threshold", func(c *SimConfig) { c.Scaling.Threshold = -1 }, false, true},
		{"negative interval", func(c *SimConfig) { c.Scaling.Interval = -1 }, false, true},
		{"unknown trace level", func(c *SimConfig) { c.Trace.Level = trace.TraceLevel("verbose") }, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSimConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !tc.wantAnyErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			var capErr *InvalidCapacityError
			assert.Equal(t, tc.wantCapErr, errors.As(err, &capErr))
		})
	}
}
