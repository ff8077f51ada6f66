package sim

import "fmt"

// UtilizationModel gives the fraction of its granted share a job actually uses.
type UtilizationModel interface {
	Utilization(now float64) float64
}

// Utilization model names accepted by NewUtilizationModel.
const (
	UtilizationKindFull  = "full"
	UtilizationKindFixed = "fixed"
)

// UtilizationFull requests 100% of the granted share.
type UtilizationFull struct{}

func (UtilizationFull) Utilization(float64) float64 { return 1 }

// UtilizationFixed requests a constant fraction of the granted share.
type UtilizationFixed struct {
	Fraction float64
}

func (u UtilizationFixed) Utilization(float64) float64 { return clampUnit(u.Fraction) }

// UtilizationFunc is a custom model. The scheduler samples it at each projection and
// holds the value until the VM's membership next changes.
type UtilizationFunc func(now float64) float64

func (f UtilizationFunc) Utilization(now float64) float64 { return clampUnit(f(now)) }

// NewUtilizationModel builds a configured model. An empty kind means full.
// Custom functions cannot be named in configuration; build UtilizationFunc directly.
func NewUtilizationModel(kind string, fraction float64) (UtilizationModel, error) {
	switch kind {
	case "", UtilizationKindFull:
		return UtilizationFull{}, nil
	case UtilizationKindFixed:
		if fraction <= 0 || fraction > 1 {
			return nil, fmt.Errorf("fixed utilization fraction must be in (0, 1], got %v", fraction)
		}
		return UtilizationFixed{Fraction: fraction}, nil
	default:
		return nil, fmt.Errorf("unknown utilization model %q; valid: %s, %s", kind, UtilizationKindFull, UtilizationKindFixed)
	}
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}
