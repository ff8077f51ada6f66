package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventQueue_TimestampOrdering tests that events are popped in timestamp order
func TestEventQueue_TimestampOrdering(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(NewScalingEvaluationEvent(10))
	q.Schedule(NewScalingEvaluationEvent(5))
	q.Schedule(NewScalingEvaluationEvent(15))

	var got []float64
	for q.Len() > 0 {
		got = append(got, q.PopNext().Timestamp())
	}
	assert.Equal(t, []float64{5, 10, 15}, got)
}

// TestEventQueue_SimultaneousEventsAreFIFO tests that ties are broken by insertion order
func TestEventQueue_SimultaneousEventsAreFIFO(t *testing.T) {
	q := NewEventQueue()
	j := &Job{ID: 1}
	e1 := NewJobArrivalEvent(3, j)
	e2 := NewScalingEvaluationEvent(3)
	e3 := NewJobArrivalEvent(3, j)
	q.Schedule(e1)
	q.Schedule(e2)
	q.Schedule(e3)

	assert.Same(t, e1, q.PopNext())
	assert.Same(t, e2, q.PopNext())
	assert.Same(t, e3, q.PopNext())
	assert.Nil(t, q.PopNext())
}

// TestEventQueue_SimulationEndYieldsToSameInstantEvents tests that SimulationEnd runs last at its timestamp
func TestEventQueue_SimulationEndYieldsToSameInstantEvents(t *testing.T) {
	q := NewEventQueue()
	end := NewSimulationEndEvent(30)
	q.Schedule(end)
	check := NewScalingEvaluationEvent(30)
	q.Schedule(check)
	early := NewScalingEvaluationEvent(29)
	q.Schedule(early)

	assert.Same(t, early, q.PopNext())
	assert.Same(t, check, q.PopNext())
	assert.Same(t, end, q.PopNext())
}

func TestEventQueue_ScheduleAssignsIncreasingSeq(t *testing.T) {
	q := NewEventQueue()
	e1 := NewScalingEvaluationEvent(1)
	e2 := NewScalingEvaluationEvent(0)
	q.Schedule(e1)
	q.Schedule(e2)

	assert.Less(t, e1.Seq(), e2.Seq())
	require.NotNil(t, q.Peek())
	assert.Same(t, e2, q.Peek())
	assert.Equal(t, 2, q.Len())
}

func TestEventQueue_EmptyPeekAndPop_ReturnNil(t *testing.T) {
	q := NewEventQueue()
	assert.Nil(t, q.Peek())
	assert.Nil(t, q.PopNext())
}
