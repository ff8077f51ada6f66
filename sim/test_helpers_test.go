package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// singleVMConfig returns a config with one host holding one VM and no generated jobs.
func singleVMConfig(cores int, mips float64) SimConfig {
	cfg := DefaultSimConfig()
	cfg.Hosts = HostConfig{Count: 1, Cores: cores, MIPSPerCore: mips, RAM: 32768, Bandwidth: 100000, Storage: 1000000}
	cfg.VMs = VMConfig{InitialCount: 1, Cores: cores, MIPSPerCore: mips, RAM: 1024, Bandwidth: 1000, Storage: 1000}
	cfg.Workload = WorkloadConfig{}
	cfg.Scaling = ScalingConfig{}
	return cfg
}

// mustJob builds a job or fails the test.
func mustJob(t *testing.T, id int, length int64, cores int, util UtilizationModel) *Job {
	t.Helper()
	j, err := NewJob(id, length, cores, util)
	require.NoError(t, err)
	return j
}

// mustVM builds one unplaced VM or fails the test.
func mustVM(t *testing.T, id, cores int, mips float64) *VirtualMachine {
	t.Helper()
	vms, err := CreateVMSpecs(id, 1, VMConfig{Cores: cores, MIPSPerCore: mips, RAM: 1, Bandwidth: 1, Storage: 1})
	require.NoError(t, err)
	return vms[0]
}
