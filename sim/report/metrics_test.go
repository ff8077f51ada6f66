package report

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsExporter_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsExporter(reg)

	m.Observe(sampleResult())

	assert.Equal(t, 3.0, testutil.ToFloat64(m.jobsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.jobsFinished))
	assert.Equal(t, 1.25, testutil.ToFloat64(m.meanCompletionTime))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.vmsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.vmsPlaced))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.vmsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scalingTriggered))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.endTime))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobsByState.WithLabelValues("running")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.jobsByState.WithLabelValues("pending")))
	assert.Equal(t, 0.625, testutil.ToFloat64(m.vmUtilization.WithLabelValues("1", "1")))
	assert.Equal(t, 1000.0, testutil.ToFloat64(m.vmExecuted.WithLabelValues("0", "0")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.vmJobsFinished))
}

func TestNewMetricsExporter_DoubleRegistration_Panics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetricsExporter(reg)
	assert.Panics(t, func() { NewMetricsExporter(reg) })
}

func TestWriteMetrics_TextExposition(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMetrics(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "# TYPE cloudletsim_jobs_total gauge")
	assert.Contains(t, out, "cloudletsim_jobs_finished 2")
	assert.Contains(t, out, `cloudletsim_jobs_by_state{state="finished"} 2`)
	assert.Contains(t, out, `cloudletsim_vm_utilization_ratio{host="0",vm="0"} 0.25`)
}
