package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cloudlet-sim/sim"
	"github.com/inference-sim/cloudlet-sim/sim/trace"
)

func TestParseScenario_PartialFileKeepsDefaults(t *testing.T) {
	data := []byte(`
horizon: 12
workload:
  job_count: 40
scaling:
  interval: 5
trace:
  level: decisions
`)
	cfg, err := parseScenario(data)
	require.NoError(t, err)

	defaults := sim.DefaultSimConfig()
	assert.Equal(t, 12.0, cfg.Horizon)
	assert.Equal(t, 40, cfg.Workload.JobCount)
	assert.Equal(t, defaults.Workload.JobLength, cfg.Workload.JobLength)
	assert.Equal(t, 5.0, cfg.Scaling.Interval)
	assert.Equal(t, defaults.Scaling.Threshold, cfg.Scaling.Threshold)
	assert.Equal(t, defaults.Hosts, cfg.Hosts)
	assert.Equal(t, trace.TraceLevelDecisions, cfg.Trace.Level)
}

func TestParseScenario_UnknownFieldIsRejected(t *testing.T) {
	_, err := parseScenario([]byte("hosts:\n  cpus: 8\n"))
	assert.Error(t, err)
}

func TestParseScenario_EmptyDocument_YieldsDefaults(t *testing.T) {
	cfg, err := parseScenario(nil)
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultSimConfig(), cfg)
}

func TestLoadScenario_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vms:\n  initial_count: 4\n"), 0o644))

	cfg, err := loadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.VMs.InitialCount)
	assert.NoError(t, cfg.Validate())
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := loadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyFlagOverrides_OnlyChangedFlags(t *testing.T) {
	require.NoError(t, runCmd.ParseFlags([]string{"--jobs", "7", "--scaling=false", "--trace-level", "events"}))

	cfg := sim.DefaultSimConfig()
	cfg.Horizon = 99
	applyFlagOverrides(runCmd, &cfg)

	assert.Equal(t, 7, cfg.Workload.JobCount)
	assert.False(t, cfg.Scaling.Enabled)
	assert.Equal(t, trace.TraceLevelEvents, cfg.Trace.Level)
	assert.Equal(t, 99.0, cfg.Horizon, "unset flags must not clobber scenario values")
}

func TestLoadScenario_ShippedDefaultsMatchBuiltIn(t *testing.T) {
	cfg, err := loadScenario(filepath.Join("..", "defaults.yaml"))
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultSimConfig(), cfg)
}
