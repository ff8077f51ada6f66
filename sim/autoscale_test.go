package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_ThresholdRule(t *testing.T) {
	tests := []struct {
		name                         string
		jobs, vms, threshold, maxVMs int
		wantAdd, wantExpected        int
		wantTriggered                bool
	}{
		{"overloaded adds capped amount", 100, 2, 20, 10, 3, 50, true},
		{"below threshold adds nothing", 30, 2, 20, 10, 0, 15, false},
		{"equal to threshold adds nothing", 40, 2, 20, 10, 0, 20, false},
		{"integer division truncates", 41, 2, 20, 10, 0, 20, false},
		{"ceiling limits additions", 100, 9, 5, 10, 1, 11, true},
		{"at ceiling triggers without adding", 100, 10, 5, 10, 0, 10, true},
		{"above ceiling never negative", 100, 12, 5, 10, 0, 8, true},
		{"no vms with jobs triggers", 5, 0, 20, 10, 3, 5, true},
		{"no vms no jobs", 0, 0, 20, 10, 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Evaluate(tc.jobs, tc.vms, tc.threshold, tc.maxVMs)
			assert.Equal(t, tc.wantAdd, d.AddCount)
			assert.Equal(t, tc.wantExpected, d.ExpectedPerVM)
			assert.Equal(t, tc.wantTriggered, d.Triggered)
		})
	}
}

func TestThresholdPolicy_CustomCap(t *testing.T) {
	p := ThresholdPolicy{Threshold: 1, MaxVMs: 100, CapPerEvent: 7}
	assert.Equal(t, 7, p.Evaluate(1000, 1).AddCount)
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	assert.Equal(t, Evaluate(100, 2, 20, 10), Evaluate(100, 2, 20, 10))
}

func TestThresholdPolicy_Decide_CeilingCountsUnplacedVMs(t *testing.T) {
	p := ThresholdPolicy{Threshold: 20, MaxVMs: 4, CapPerEvent: 3}

	tests := []struct {
		name              string
		active, requested int
		wantAdd           int
		wantTriggered     bool
	}{
		{"nothing placed yet", 0, 1, 3, true},
		{"all requested vms failed placement", 0, 4, 0, true},
		{"some failed, room left under ceiling", 1, 3, 1, true},
		{"all placed matches Evaluate", 2, 2, 2, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := p.Decide(100, tc.active, tc.requested)
			assert.Equal(t, tc.wantAdd, d.AddCount)
			assert.Equal(t, tc.wantTriggered, d.Triggered)
		})
	}
	assert.Equal(t, p.Evaluate(100, 2), p.Decide(100, 2, 2))
}
