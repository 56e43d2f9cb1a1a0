package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/portal-backend/internal/assessment"
	"github.com/stemsi/portal-backend/internal/model"
)

// ErrUnknownStudent is returned when an assessment references a missing user.
var ErrUnknownStudent = errors.New("student does not exist")

// AssessmentRepository handles assessment data access.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new AssessmentRepository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

const assessmentColumns = `id, student_id, subject, course, type, score, total, created_by, created_at, updated_at`

func scanAssessment(row pgx.Row) (*model.Assessment, error) {
	a := &model.Assessment{}
	err := row.Scan(&a.ID, &a.StudentID, &a.Subject, &a.Course, &a.Type, &a.Score, &a.Total,
		&a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID retrieves a single assessment.
func (r *AssessmentRepository) GetByID(ctx context.Context, id int64) (*model.Assessment, error) {
	return scanAssessment(r.pool.QueryRow(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE id = $1`, id))
}

// ListRowsByStudent returns a student's assessments in insertion order.
func (r *AssessmentRepository) ListRowsByStudent(ctx context.Context, studentID int) ([]model.Assessment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE student_id = $1 ORDER BY id ASC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Assessment{}
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

// ListByStudent returns a student's assessments as aggregator records.
// Insertion order is preserved since it decides which mark wins a slot.
func (r *AssessmentRepository) ListByStudent(ctx context.Context, studentID int) ([]assessment.Record, error) {
	list, err := r.ListRowsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	records := make([]assessment.Record, 0, len(list))
	for _, a := range list {
		records = append(records, a.Record())
	}
	return records, nil
}

// Create inserts an assessment.
func (r *AssessmentRepository) Create(ctx context.Context, a *model.Assessment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO assessments (student_id, subject, course, type, score, total, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		a.StudentID, a.Subject, a.Course, a.Type, a.Score, a.Total, a.CreatedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrUnknownStudent
		}
		return err
	}
	return nil
}

// Update overwrites the editable fields of an assessment.
func (r *AssessmentRepository) Update(ctx context.Context, a *model.Assessment) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE assessments
		 SET subject = $1, course = $2, type = $3, score = $4, total = $5, updated_at = NOW()
		 WHERE id = $6
		 RETURNING student_id, created_by, created_at, updated_at`,
		a.Subject, a.Course, a.Type, a.Score, a.Total, a.ID,
	).Scan(&a.StudentID, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes an assessment and returns the student it belonged to.
func (r *AssessmentRepository) Delete(ctx context.Context, id int64) (int, error) {
	var studentID int
	err := r.pool.QueryRow(ctx,
		`DELETE FROM assessments WHERE id = $1 RETURNING student_id`, id,
	).Scan(&studentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return studentID, err
}
