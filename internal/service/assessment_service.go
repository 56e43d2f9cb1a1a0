package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/portal-backend/internal/model"
	"github.com/stemsi/portal-backend/internal/repository"
)

// Domain errors.
var (
	ErrNotAStudent        = errors.New("target user is not a student")
	ErrAssessmentNotFound = errors.New("assessment not found")
)

// AssessmentStore persists assessment rows.
type AssessmentStore interface {
	GetByID(ctx context.Context, id int64) (*model.Assessment, error)
	ListRowsByStudent(ctx context.Context, studentID int) ([]model.Assessment, error)
	Create(ctx context.Context, a *model.Assessment) error
	Update(ctx context.Context, a *model.Assessment) error
	Delete(ctx context.Context, id int64) (int, error)
}

// AssessmentService lets teachers and admins record and correct marks.
// Every write invalidates the student's cached results and schedules a
// snapshot rebuild.
type AssessmentService struct {
	store   AssessmentStore
	users   UserFinder
	results *ResultService
	queue   RecomputeQueue
	log     zerolog.Logger
}

// NewAssessmentService creates a new AssessmentService. queue may be nil.
func NewAssessmentService(
	store AssessmentStore,
	users UserFinder,
	results *ResultService,
	queue RecomputeQueue,
	log zerolog.Logger,
) *AssessmentService {
	return &AssessmentService{
		store:   store,
		users:   users,
		results: results,
		queue:   queue,
		log:     log.With().Str("component", "assessment_service").Logger(),
	}
}

// ListForStudent returns the stored rows of a student.
func (s *AssessmentService) ListForStudent(ctx context.Context, studentID int) ([]model.Assessment, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.store.ListRowsByStudent(ctx, studentID)
}

// StudentResults returns the results view of a student for staff screens.
func (s *AssessmentService) StudentResults(ctx context.Context, studentID int) (*model.ResultView, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.results.GetResults(ctx, studentID)
}

// Create records a new mark on behalf of actorID.
func (s *AssessmentService) Create(ctx context.Context, actorID int, req *model.CreateAssessmentRequest) (*model.Assessment, error) {
	if err := s.requireStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	a := &model.Assessment{
		StudentID: req.StudentID,
		Subject:   req.Subject,
		Course:    req.Course,
		Type:      req.Type,
		Score:     req.Score,
		Total:     req.Total,
		CreatedBy: actorID,
	}
	if err := s.store.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrUnknownStudent) {
			return nil, ErrNotAStudent
		}
		return nil, fmt.Errorf("create assessment: %w", err)
	}

	s.log.Info().
		Int64("assessment_id", a.ID).
		Int("student_id", a.StudentID).
		Int("actor_id", actorID).
		Msg("Assessment recorded")

	s.afterWrite(ctx, a.StudentID)
	return a, nil
}

// Update replaces the editable fields of an assessment.
func (s *AssessmentService) Update(ctx context.Context, id int64, req *model.UpdateAssessmentRequest) (*model.Assessment, error) {
	a := &model.Assessment{
		ID:      id,
		Subject: req.Subject,
		Course:  req.Course,
		Type:    req.Type,
		Score:   req.Score,
		Total:   req.Total,
	}
	if err := s.store.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("update assessment: %w", err)
	}

	s.afterWrite(ctx, a.StudentID)
	return a, nil
}

// Delete removes an assessment.
func (s *AssessmentService) Delete(ctx context.Context, id int64) error {
	studentID, err := s.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssessmentNotFound
		}
		return fmt.Errorf("delete assessment: %w", err)
	}

	s.afterWrite(ctx, studentID)
	return nil
}

func (s *AssessmentService) requireStudent(ctx context.Context, studentID int) error {
	u, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotAStudent
		}
		return fmt.Errorf("get student: %w", err)
	}
	if u.Role != model.RoleStudent {
		return ErrNotAStudent
	}
	return nil
}

// afterWrite drops stale cached results and queues a snapshot rebuild.
// Failures are logged only; the write itself already succeeded.
func (s *AssessmentService) afterWrite(ctx context.Context, studentID int) {
	if err := s.results.Invalidate(ctx, studentID); err != nil {
		s.log.Warn().Err(err).Int("student_id", studentID).Msg("Results cache invalidation failed")
	}
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(ctx, studentID); err != nil {
		s.log.Warn().Err(err).Int("student_id", studentID).Msg("Recompute enqueue failed")
	}
}
