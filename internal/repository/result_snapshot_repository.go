package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/portal-backend/internal/assessment"
	"github.com/stemsi/portal-backend/internal/model"
)

// ResultSnapshotRepository stores the last computed summary per student.
type ResultSnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewResultSnapshotRepository creates a new ResultSnapshotRepository.
func NewResultSnapshotRepository(pool *pgxpool.Pool) *ResultSnapshotRepository {
	return &ResultSnapshotRepository{pool: pool}
}

// SnapshotInput is one summary to persist.
type SnapshotInput struct {
	StudentID int
	Summary   assessment.Summary
}

// BulkUpsert writes many snapshots in one statement using UNNEST.
func (r *ResultSnapshotRepository) BulkUpsert(ctx context.Context, batch []SnapshotInput) error {
	if len(batch) == 0 {
		return nil
	}

	n := len(batch)
	students := make([]int, 0, n)
	totalScores := make([]float64, 0, n)
	totalMaxes := make([]float64, 0, n)
	averages := make([]float64, 0, n)
	statuses := make([]string, 0, n)
	computedAts := make([]time.Time, 0, n)

	now := time.Now()
	for _, s := range batch {
		students = append(students, s.StudentID)
		totalScores = append(totalScores, s.Summary.TotalScore)
		totalMaxes = append(totalMaxes, s.Summary.TotalMax)
		averages = append(averages, s.Summary.Average)
		statuses = append(statuses, string(s.Summary.Status))
		computedAts = append(computedAts, now)
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO result_snapshots (student_id, total_score, total_max, average, status, computed_at)
		SELECT u.student_id, u.total_score, u.total_max, u.average, u.status, u.computed_at
		FROM UNNEST(
			$1::int[],
			$2::float8[],
			$3::float8[],
			$4::float8[],
			$5::text[],
			$6::timestamptz[]
		) AS u (student_id, total_score, total_max, average, status, computed_at)
		ON CONFLICT (student_id) DO UPDATE
		SET total_score = EXCLUDED.total_score,
		    total_max   = EXCLUDED.total_max,
		    average     = EXCLUDED.average,
		    status      = EXCLUDED.status,
		    computed_at = EXCLUDED.computed_at`,
		students, totalScores, totalMaxes, averages, statuses, computedAts,
	)
	return err
}

// Upsert writes a single snapshot.
func (r *ResultSnapshotRepository) Upsert(ctx context.Context, s SnapshotInput) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO result_snapshots (student_id, total_score, total_max, average, status, computed_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (student_id) DO UPDATE
		 SET total_score = EXCLUDED.total_score,
		     total_max   = EXCLUDED.total_max,
		     average     = EXCLUDED.average,
		     status      = EXCLUDED.status,
		     computed_at = EXCLUDED.computed_at`,
		s.StudentID, s.Summary.TotalScore, s.Summary.TotalMax, s.Summary.Average, string(s.Summary.Status),
	)
	return err
}

// ListPaginated returns snapshots joined with student names, newest first.
func (r *ResultSnapshotRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.ResultSnapshot, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM result_snapshots`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT s.student_id, u.name, s.total_score, s.total_max, s.average, s.status, s.computed_at
		 FROM result_snapshots s
		 JOIN users u ON u.id = s.student_id
		 ORDER BY s.computed_at DESC, s.student_id ASC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	snapshots := []model.ResultSnapshot{}
	for rows.Next() {
		var s model.ResultSnapshot
		var status string
		if err := rows.Scan(&s.StudentID, &s.StudentName,
			&s.Summary.TotalScore, &s.Summary.TotalMax, &s.Summary.Average, &status, &s.ComputedAt); err != nil {
			return nil, 0, err
		}
		s.Summary.Status = assessment.Status(status)
		snapshots = append(snapshots, s)
	}
	return snapshots, total, rows.Err()
}
