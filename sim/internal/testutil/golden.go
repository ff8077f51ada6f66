// Package testutil provides shared test infrastructure for the cluster simulator.
// It holds the golden scenario types and assertion helpers used by sim/ tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one fully specified scenario and the results it must produce.
type GoldenTestCase struct {
	Name string `json:"name"`

	HostCount int     `json:"host_count"`
	HostCores int     `json:"host_cores"`
	HostMIPS  float64 `json:"host_mips"`

	VMInitial int     `json:"vm_initial"`
	VMCores   int     `json:"vm_cores"`
	VMMIPS    float64 `json:"vm_mips"`

	JobCount            int     `json:"job_count"`
	JobLength           int64   `json:"job_length"`
	JobCores            int     `json:"job_cores"`
	Utilization         string  `json:"utilization"`
	UtilizationFraction float64 `json:"utilization_fraction"`
	SubmissionInterval  float64 `json:"submission_interval"`

	ScalingEnabled   bool    `json:"scaling_enabled"`
	ScalingThreshold int     `json:"scaling_threshold"`
	MaxVMs           int     `json:"max_vms"`
	ScalingInterval  float64 `json:"scaling_interval"`

	Horizon float64 `json:"horizon"`

	Metrics GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected results of a golden test case.
type GoldenMetrics struct {
	// Exact match metrics (integers)
	FinishedJobs int `json:"finished_jobs"`
	TotalVMs     int `json:"total_vms"`
	PlacedVMs    int `json:"placed_vms"`
	VMsAdded     int `json:"vms_added"`

	// Deterministic floating-point metrics (derived from simulation clock)
	EndTimeS            float64 `json:"end_time_s"`
	MeanCompletionTimeS float64 `json:"mean_completion_time_s"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
