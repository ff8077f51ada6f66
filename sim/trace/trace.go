package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures placement and scaling decisions.
	TraceLevelDecisions TraceLevel = "decisions"
	// TraceLevelEvents additionally captures every dispatched event.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	TraceLevelEvents:    true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
// The empty string is accepted and behaves like TraceLevelNone.
func IsValidTraceLevel(level string) bool {
	return level == "" || validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel `yaml:"level"`
}

// Enabled reports whether any records are collected.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelDecisions || c.Level == TraceLevelEvents
}

// SimulationTrace collects decision records during a simulation.
type SimulationTrace struct {
	Config     TraceConfig
	Placements []PlacementRecord
	Scalings   []ScalingRecord
	Events     []EventRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Placements: make([]PlacementRecord, 0),
		Scalings:   make([]ScalingRecord, 0),
		Events:     make([]EventRecord, 0),
	}
}

// RecordPlacement appends a placement decision record.
func (st *SimulationTrace) RecordPlacement(record PlacementRecord) {
	st.Placements = append(st.Placements, record)
}

// RecordScaling appends a scaling decision record.
func (st *SimulationTrace) RecordScaling(record ScalingRecord) {
	st.Scalings = append(st.Scalings, record)
}

// RecordEvent appends a dispatched-event record. No-op below TraceLevelEvents.
func (st *SimulationTrace) RecordEvent(record EventRecord) {
	if st.Config.Level != TraceLevelEvents {
		return
	}
	st.Events = append(st.Events, record)
}
