package sim

// DefaultScalingCap is the most VMs a single evaluation may add.
const DefaultScalingCap = 3

// ScalingDecision is the outcome of one autoscaling evaluation.
type ScalingDecision struct {
	ExpectedPerVM int  // jobCount / currentVMCount, integer division
	Triggered     bool // ExpectedPerVM exceeded the threshold
	AddCount      int  // VMs to create and place; zero when not triggered or at the ceiling
}

// Evaluate applies the threshold rule with DefaultScalingCap. It is a pure function.
func Evaluate(jobCount, currentVMCount, threshold, maxVMCount int) ScalingDecision {
	return ThresholdPolicy{Threshold: threshold, MaxVMs: maxVMCount, CapPerEvent: DefaultScalingCap}.
		Evaluate(jobCount, currentVMCount)
}

// ThresholdPolicy adds VMs when the expected jobs per VM exceeds Threshold.
type ThresholdPolicy struct {
	Threshold   int
	MaxVMs      int
	CapPerEvent int
}

// Evaluate returns min(MaxVMs - currentVMCount, CapPerEvent) additions when
// jobCount / currentVMCount > Threshold. With no VMs at all, any pending job triggers.
func (p ThresholdPolicy) Evaluate(jobCount, currentVMCount int) ScalingDecision {
	return p.Decide(jobCount, currentVMCount, currentVMCount)
}

// Decide is Evaluate with load measured over activeVMs but the MaxVMs ceiling applied to
// requestedVMs, every VM created so far including those that failed placement.
func (p ThresholdPolicy) Decide(jobCount, activeVMs, requestedVMs int) ScalingDecision {
	var d ScalingDecision
	if activeVMs <= 0 {
		d.ExpectedPerVM = jobCount
		d.Triggered = jobCount > 0
	} else {
		d.ExpectedPerVM = jobCount / activeVMs
		d.Triggered = d.ExpectedPerVM > p.Threshold
	}
	if d.Triggered {
		d.AddCount = max(0, min(p.MaxVMs-requestedVMs, p.CapPerEvent))
	}
	return d
}
