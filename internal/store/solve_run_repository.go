package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SolveRun is the audit trail of one /v1/solve invocation, persisted
// only when the optional Postgres store is enabled — never read back
// into the solving path.
type SolveRun struct {
	ID              string    `db:"id"`
	RequestHash     string    `db:"request_hash"`
	Status          string    `db:"status"`
	Strategy        string    `db:"strategy"`
	Decomposition   string    `db:"decomposition"`
	DurationMs      int64     `db:"duration_ms"`
	SolutionQuality int       `db:"solution_quality"`
	CreatedAt       time.Time `db:"created_at"`
}

// SolveRunRepository persists SolveRun rows, grounded on the teacher's
// sqlx repository shape (archive_repository.go): NamedExecContext for
// writes, positional $-placeholders for reads.
type SolveRunRepository struct {
	db *sqlx.DB
}

// NewSolveRunRepository constructs the repository.
func NewSolveRunRepository(db *sqlx.DB) *SolveRunRepository {
	return &SolveRunRepository{db: db}
}

// Create appends one audit row, assigning an id and timestamp if unset.
func (r *SolveRunRepository) Create(ctx context.Context, run *SolveRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO solve_runs
	(id, request_hash, status, strategy, decomposition, duration_ms, solution_quality, created_at)
	VALUES (:id, :request_hash, :status, :strategy, :decomposition, :duration_ms, :solution_quality, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, run); err != nil {
		return fmt.Errorf("create solve run: %w", err)
	}
	return nil
}

// List returns the most recent audit rows, newest first, bounded by
// limit/offset for §4.16's paginated GET /v1/solve/history.
func (r *SolveRunRepository) List(ctx context.Context, limit, offset int) ([]SolveRun, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, request_hash, status, strategy, decomposition, duration_ms, solution_quality, created_at
	FROM solve_runs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	var runs []SolveRun
	if err := r.db.SelectContext(ctx, &runs, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list solve runs: %w", err)
	}
	return runs, nil
}
