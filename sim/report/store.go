package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/inference-sim/cloudlet-sim/sim"
)

// ErrRunNotFound is returned by LoadRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Store persists simulation results in a SQLite database.
type Store struct {
	conn *sql.DB
}

// RunRecord is a persisted run with its per-job timings and per-VM usage.
type RunRecord struct {
	ID                 string
	Label              string
	CreatedAt          time.Time
	TotalVMs           int
	PlacedVMs          int
	ScalingTriggered   bool
	FinishedCount      int
	TotalCount         int
	MeanCompletionTime float64
	EndTime            float64
	Jobs               []sim.JobTiming
	VMs                []sim.VMReport
}

// OpenStore opens (creating if needed) the database at path and applies the schema.
func OpenStore(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		total_vms INTEGER NOT NULL,
		placed_vms INTEGER NOT NULL,
		scaling_triggered BOOLEAN NOT NULL,
		finished_count INTEGER NOT NULL,
		total_count INTEGER NOT NULL,
		mean_completion_time REAL NOT NULL,
		end_time REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS job_timings (
		run_id TEXT NOT NULL,
		job_id INTEGER NOT NULL,
		vm_id INTEGER NOT NULL,
		start_time REAL NOT NULL,
		finish_time REAL NOT NULL,
		elapsed_time REAL NOT NULL,
		PRIMARY KEY (run_id, job_id),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS vm_usage (
		run_id TEXT NOT NULL,
		vm_id INTEGER NOT NULL,
		host_id INTEGER NOT NULL,
		cores INTEGER NOT NULL,
		total_mips REAL NOT NULL,
		jobs_finished INTEGER NOT NULL,
		executed_instructions REAL NOT NULL,
		busy_time REAL NOT NULL,
		utilization REAL NOT NULL,
		PRIMARY KEY (run_id, vm_id),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// SaveRun stores r under a new run ID and returns that ID.
func (s *Store) SaveRun(ctx context.Context, label string, r *sim.Result) (string, error) {
	id := uuid.NewString()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, label, created_at, total_vms, placed_vms, scaling_triggered,
			finished_count, total_count, mean_completion_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, label, time.Now().UTC(), r.TotalVMs, r.PlacedVMs, r.ScalingTriggered,
		r.FinishedCount, r.TotalCount, r.MeanCompletionTime, r.EndTime)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, t := range r.PerJobTimings {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO job_timings (run_id, job_id, vm_id, start_time, finish_time, elapsed_time)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, t.JobID, t.VMID, t.StartTime, t.FinishTime, t.ElapsedTime)
		if err != nil {
			return "", fmt.Errorf("insert job timing %d: %w", t.JobID, err)
		}
	}

	for _, vm := range r.VMs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vm_usage (run_id, vm_id, host_id, cores, total_mips, jobs_finished,
				executed_instructions, busy_time, utilization)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, vm.VMID, vm.HostID, vm.Cores, vm.TotalMIPS, vm.JobsFinished,
			vm.ExecutedInstructions, vm.BusyTime, vm.Utilization)
		if err != nil {
			return "", fmt.Errorf("insert vm usage %d: %w", vm.VMID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return id, nil
}

// LoadRun reads back a stored run.
func (s *Store) LoadRun(ctx context.Context, id string) (*RunRecord, error) {
	rec := &RunRecord{}
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, label, created_at, total_vms, placed_vms, scaling_triggered,
			finished_count, total_count, mean_completion_time, end_time
		FROM runs WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Label, &rec.CreatedAt, &rec.TotalVMs, &rec.PlacedVMs, &rec.ScalingTriggered,
		&rec.FinishedCount, &rec.TotalCount, &rec.MeanCompletionTime, &rec.EndTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	jobRows, err := s.conn.QueryContext(ctx, `
		SELECT job_id, vm_id, start_time, finish_time, elapsed_time
		FROM job_timings WHERE run_id = ? ORDER BY finish_time, job_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query job timings: %w", err)
	}
	defer jobRows.Close()
	for jobRows.Next() {
		var t sim.JobTiming
		if err := jobRows.Scan(&t.JobID, &t.VMID, &t.StartTime, &t.FinishTime, &t.ElapsedTime); err != nil {
			return nil, fmt.Errorf("scan job timing: %w", err)
		}
		rec.Jobs = append(rec.Jobs, t)
	}
	if err := jobRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job timings: %w", err)
	}

	vmRows, err := s.conn.QueryContext(ctx, `
		SELECT vm_id, host_id, cores, total_mips, jobs_finished, executed_instructions, busy_time, utilization
		FROM vm_usage WHERE run_id = ? ORDER BY vm_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query vm usage: %w", err)
	}
	defer vmRows.Close()
	for vmRows.Next() {
		var vm sim.VMReport
		if err := vmRows.Scan(&vm.VMID, &vm.HostID, &vm.Cores, &vm.TotalMIPS, &vm.JobsFinished,
			&vm.ExecutedInstructions, &vm.BusyTime, &vm.Utilization); err != nil {
			return nil, fmt.Errorf("scan vm usage: %w", err)
		}
		rec.VMs = append(rec.VMs, vm)
	}
	if err := vmRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vm usage: %w", err)
	}

	return rec, nil
}
