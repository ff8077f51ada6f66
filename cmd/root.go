package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cloudlet-sim/sim"
	"github.com/inference-sim/cloudlet-sim/sim/report"
	"github.com/inference-sim/cloudlet-sim/sim/trace"
)

var (
	logLevel    string // Log verbosity level
	configPath  string // Scenario YAML file
	traceLevel  string // Decision trace verbosity
	metricsOut  string // Prometheus text output path
	dbPath      string // SQLite results database
	runLabel    string // Label stored with persisted runs
	sampleCount int    // Finished jobs listed in the report

	// Scenario overrides; applied only when the flag is set explicitly.
	simulationHorizon   float64 // Terminal simulated time (seconds)
	hostCount           int     // Number of hosts
	hostCores           int     // Cores per host
	hostMIPS            float64 // MIPS per host core
	vmInitial           int     // VMs requested before scaling
	vmCores             int     // Cores per VM
	vmMIPS              float64 // MIPS per VM core
	jobCount            int     // Number of jobs
	jobLength           int64   // Instructions per job
	jobCores            int     // Cores per job
	utilization         string  // Utilization model: full or fixed
	utilizationFraction float64 // Fraction for the fixed model
	submissionInterval  float64 // Seconds between consecutive job arrivals
	scalingEnabled      bool    // Enable the threshold autoscaler
	scalingThreshold    int     // Jobs per VM above which VMs are added
	maxVMs              int     // Ceiling on VM count
	scalingCap          int     // Most VMs added per evaluation
	scalingInterval     float64 // Seconds between evaluations; 0 = one-shot
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cloudlet-sim",
	Short: "Discrete-event simulator for elastic compute clusters",
}

// runCmd executes the simulation using the scenario file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the cluster simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sim.DefaultSimConfig()
		if configPath != "" {
			cfg, err = loadScenario(configPath)
			if err != nil {
				logrus.Fatalf("unable to read scenario; %v", err)
			}
		}
		applyFlagOverrides(cmd, &cfg)

		logrus.Infof("Starting simulation: %d hosts, %d initial VMs, %d jobs, horizon=%.2fs",
			cfg.Hosts.Count, cfg.VMs.InitialCount, cfg.Workload.JobCount, cfg.Horizon)

		startTime := time.Now()
		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Failed to build simulation: %v", err)
		}
		result := s.Run()
		logrus.Infof("Simulation wall time: %s", time.Since(startTime))

		printResults(os.Stdout, result, sampleCount)
		if s.Trace() != nil {
			printTraceSummary(os.Stdout, trace.Summarize(s.Trace()))
		}

		if metricsOut != "" {
			if err := writeMetricsFile(metricsOut, result); err != nil {
				logrus.Fatalf("Failed to write metrics: %v", err)
			}
			logrus.Infof("Metrics written to %s", metricsOut)
		}
		if dbPath != "" {
			id, err := persistRun(cmd.Context(), dbPath, runLabel, result)
			if err != nil {
				logrus.Fatalf("Failed to persist run: %v", err)
			}
			logrus.Infof("Run %s stored in %s", id, dbPath)
		}

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyFlagOverrides copies explicitly set flags over cfg, so scenario values survive
// unless the user overrides them.
func applyFlagOverrides(cmd *cobra.Command, cfg *sim.SimConfig) {
	flags := cmd.Flags()
	if flags.Changed("horizon") {
		cfg.Horizon = simulationHorizon
	}
	if flags.Changed("hosts") {
		cfg.Hosts.Count = hostCount
	}
	if flags.Changed("host-cores") {
		cfg.Hosts.Cores = hostCores
	}
	if flags.Changed("host-mips") {
		cfg.Hosts.MIPSPerCore = hostMIPS
	}
	if flags.Changed("vms") {
		cfg.VMs.InitialCount = vmInitial
	}
	if flags.Changed("vm-cores") {
		cfg.VMs.Cores = vmCores
	}
	if flags.Changed("vm-mips") {
		cfg.VMs.MIPSPerCore = vmMIPS
	}
	if flags.Changed("jobs") {
		cfg.Workload.JobCount = jobCount
	}
	if flags.Changed("job-length") {
		cfg.Workload.JobLength = jobLength
	}
	if flags.Changed("job-cores") {
		cfg.Workload.JobCores = jobCores
	}
	if flags.Changed("utilization") {
		cfg.Workload.Utilization = utilization
	}
	if flags.Changed("utilization-fraction") {
		cfg.Workload.UtilizationFraction = utilizationFraction
	}
	if flags.Changed("submission-interval") {
		cfg.Workload.SubmissionInterval = submissionInterval
	}
	if flags.Changed("scaling") {
		cfg.Scaling.Enabled = scalingEnabled
	}
	if flags.Changed("scaling-threshold") {
		cfg.Scaling.Threshold = scalingThreshold
	}
	if flags.Changed("max-vms") {
		cfg.Scaling.MaxVMs = maxVMs
	}
	if flags.Changed("scaling-cap") {
		cfg.Scaling.CapPerEvent = scalingCap
	}
	if flags.Changed("scaling-interval") {
		cfg.Scaling.Interval = scalingInterval
	}
	if flags.Changed("trace-level") {
		cfg.Trace.Level = trace.TraceLevel(traceLevel)
	}
}

func writeMetricsFile(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	if err := report.WriteMetrics(f, result); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func persistRun(ctx context.Context, path, label string, result *sim.Result) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := report.OpenStore(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = store.Close() }()
	return store.SaveRun(ctx, label, result)
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultSimConfig()

	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Scenario YAML file (defaults to the built-in traffic scenario)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions, events)")
	runCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus text metrics to this file")
	runCmd.Flags().StringVar(&dbPath, "db", "", "Persist the run to this SQLite database")
	runCmd.Flags().StringVar(&runLabel, "label", "", "Label stored with the persisted run")
	runCmd.Flags().IntVar(&sampleCount, "samples", 5, "Number of finished jobs listed in the report")
	runCmd.Flags().Float64Var(&simulationHorizon, "horizon", defaults.Horizon, "Terminal simulated time (seconds)")

	// Datacenter
	runCmd.Flags().IntVar(&hostCount, "hosts", defaults.Hosts.Count, "Number of hosts")
	runCmd.Flags().IntVar(&hostCores, "host-cores", defaults.Hosts.Cores, "Cores per host")
	runCmd.Flags().Float64Var(&hostMIPS, "host-mips", defaults.Hosts.MIPSPerCore, "MIPS per host core")

	// VMs
	runCmd.Flags().IntVar(&vmInitial, "vms", defaults.VMs.InitialCount, "VMs requested before scaling")
	runCmd.Flags().IntVar(&vmCores, "vm-cores", defaults.VMs.Cores, "Cores per VM")
	runCmd.Flags().Float64Var(&vmMIPS, "vm-mips", defaults.VMs.MIPSPerCore, "MIPS per VM core")

	// Workload
	runCmd.Flags().IntVar(&jobCount, "jobs", defaults.Workload.JobCount, "Number of jobs")
	runCmd.Flags().Int64Var(&jobLength, "job-length", defaults.Workload.JobLength, "Instructions per job (MI)")
	runCmd.Flags().IntVar(&jobCores, "job-cores", defaults.Workload.JobCores, "Cores required per job")
	runCmd.Flags().StringVar(&utilization, "utilization", defaults.Workload.Utilization, "Utilization model (full, fixed)")
	runCmd.Flags().Float64Var(&utilizationFraction, "utilization-fraction", 1.0, "Fraction used by the fixed utilization model")
	runCmd.Flags().Float64Var(&submissionInterval, "submission-interval", 0, "Seconds between consecutive job arrivals")

	// Autoscaling
	runCmd.Flags().BoolVar(&scalingEnabled, "scaling", defaults.Scaling.Enabled, "Enable the threshold autoscaler")
	runCmd.Flags().IntVar(&scalingThreshold, "scaling-threshold", defaults.Scaling.Threshold, "Jobs per VM above which VMs are added")
	runCmd.Flags().IntVar(&maxVMs, "max-vms", defaults.Scaling.MaxVMs, "Maximum number of VMs")
	runCmd.Flags().IntVar(&scalingCap, "scaling-cap", defaults.Scaling.CapPerEvent, "Most VMs added per evaluation")
	runCmd.Flags().Float64Var(&scalingInterval, "scaling-interval", 0, "Seconds between scaling evaluations (0 = one check before submission)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
