// Package report holds collaborators that consume a finished sim.Result: Prometheus metrics
// export and SQLite persistence. Nothing here influences simulation semantics.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/inference-sim/cloudlet-sim/sim"
)

// MetricsExporter publishes a Result as Prometheus gauges.
type MetricsExporter struct {
	jobsTotal          prometheus.Gauge
	jobsFinished       prometheus.Gauge
	meanCompletionTime prometheus.Gauge
	vmsTotal           prometheus.Gauge
	vmsPlaced          prometheus.Gauge
	vmsAdded           prometheus.Gauge
	scalingTriggered   prometheus.Gauge
	endTime            prometheus.Gauge

	jobsByState    *prometheus.GaugeVec
	vmUtilization  *prometheus.GaugeVec
	vmExecuted     *prometheus.GaugeVec
	vmJobsFinished *prometheus.GaugeVec
}

// NewMetricsExporter creates the exporter's collectors and registers them with reg.
func NewMetricsExporter(reg prometheus.Registerer) *MetricsExporter {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "cloudletsim", Name: name, Help: help})
	}
	vmGauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "cloudletsim", Name: name, Help: help}, []string{"vm", "host"})
	}
	m := &MetricsExporter{
		jobsTotal:          gauge("jobs_total", "Jobs submitted to the simulation."),
		jobsFinished:       gauge("jobs_finished", "Jobs that reached the finished state."),
		meanCompletionTime: gauge("job_mean_completion_seconds", "Mean compute time of finished jobs, in simulated seconds."),
		vmsTotal:           gauge("vms_total", "VMs created, including unplaced ones."),
		vmsPlaced:          gauge("vms_placed", "VMs holding a host reservation."),
		vmsAdded:           gauge("vms_added", "VMs added by autoscaling and placed."),
		scalingTriggered:   gauge("scaling_triggered", "1 if any autoscaling evaluation exceeded the threshold."),
		endTime:            gauge("end_time_seconds", "Simulated time at which the run stopped."),
		jobsByState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cloudletsim", Name: "jobs_by_state", Help: "Jobs per lifecycle state at the end of the run.",
		}, []string{"state"}),
		vmUtilization:  vmGauge("vm_utilization_ratio", "Executed work over available work since placement."),
		vmExecuted:     vmGauge("vm_executed_instructions", "Instructions executed on the VM."),
		vmJobsFinished: vmGauge("vm_jobs_finished", "Jobs finished on the VM."),
	}
	reg.MustRegister(
		m.jobsTotal, m.jobsFinished, m.meanCompletionTime,
		m.vmsTotal, m.vmsPlaced, m.vmsAdded, m.scalingTriggered, m.endTime,
		m.jobsByState, m.vmUtilization, m.vmExecuted, m.vmJobsFinished,
	)
	return m
}

// Observe sets every gauge from r.
func (m *MetricsExporter) Observe(r *sim.Result) {
	m.jobsTotal.Set(float64(r.TotalCount))
	m.jobsFinished.Set(float64(r.FinishedCount))
	m.meanCompletionTime.Set(r.MeanCompletionTime)
	m.vmsTotal.Set(float64(r.TotalVMs))
	m.vmsPlaced.Set(float64(r.PlacedVMs))
	m.vmsAdded.Set(float64(r.VMsAdded))
	if r.ScalingTriggered {
		m.scalingTriggered.Set(1)
	} else {
		m.scalingTriggered.Set(0)
	}
	m.endTime.Set(r.EndTime)

	for _, state := range []sim.JobState{sim.JobPending, sim.JobAssigned, sim.JobRunning, sim.JobFinished} {
		m.jobsByState.WithLabelValues(string(state)).Set(float64(r.StateCounts[state]))
	}
	for _, vm := range r.VMs {
		labels := []string{strconv.Itoa(vm.VMID), strconv.Itoa(vm.HostID)}
		m.vmUtilization.WithLabelValues(labels...).Set(vm.Utilization)
		m.vmExecuted.WithLabelValues(labels...).Set(vm.ExecutedInstructions)
		m.vmJobsFinished.WithLabelValues(labels...).Set(float64(vm.JobsFinished))
	}
}

// WriteMetrics renders r in the Prometheus text exposition format.
func WriteMetrics(w io.Writer, r *sim.Result) error {
	reg := prometheus.NewRegistry()
	NewMetricsExporter(reg).Observe(r)
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
