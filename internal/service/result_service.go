package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/portal-backend/internal/assessment"
	"github.com/stemsi/portal-backend/internal/model"
)

// Result errors.
var (
	// ErrInvalidTab is returned for tab names outside assessment.Tabs.
	ErrInvalidTab = errors.New("invalid assessment tab")
	// ErrSourceUnavailable wraps any failure to read assessment records.
	ErrSourceUnavailable = errors.New("assessment source unavailable")
)

// DefaultTab is the tab shown when none is requested.
const DefaultTab = "assignment"

// AssessmentSource supplies a student's raw assessment records in the order
// they were recorded.
type AssessmentSource interface {
	ListByStudent(ctx context.Context, studentID int) ([]assessment.Record, error)
}

// ResultCache stores computed result views. Get returns nil on a miss.
type ResultCache interface {
	Get(ctx context.Context, studentID int) (*model.ResultView, error)
	Set(ctx context.Context, view *model.ResultView) error
	Delete(ctx context.Context, studentID int) error
}

// ResultService turns a student's assessment records into the results
// table and summary.
type ResultService struct {
	source AssessmentSource
	cache  ResultCache
	log    zerolog.Logger
}

// NewResultService creates a new ResultService. cache may be nil.
func NewResultService(source AssessmentSource, cache ResultCache, log zerolog.Logger) *ResultService {
	return &ResultService{
		source: source,
		cache:  cache,
		log:    log.With().Str("component", "result_service").Logger(),
	}
}

// GetResults returns the cached view or computes a fresh one. Cache errors
// never fail the request.
func (s *ResultService) GetResults(ctx context.Context, studentID int) (*model.ResultView, error) {
	if s.cache != nil {
		view, err := s.cache.Get(ctx, studentID)
		if err != nil {
			s.log.Warn().Err(err).Int("student_id", studentID).Msg("Results cache read failed")
		} else if view != nil {
			return view, nil
		}
	}

	view, err := s.Compute(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, view); err != nil {
			s.log.Warn().Err(err).Int("student_id", studentID).Msg("Results cache write failed")
		}
	}
	return view, nil
}

// Compute reads the records and aggregates them, bypassing the cache.
func (s *ResultService) Compute(ctx context.Context, studentID int) (*model.ResultView, error) {
	records, err := s.source.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	view := &model.ResultView{
		StudentID: studentID,
		Rows:      assessment.BuildSubjectRows(records),
		Summary:   assessment.Summarize(records),
	}

	s.log.Debug().
		Int("student_id", studentID).
		Int("records", len(records)).
		Int("subjects", len(view.Rows)).
		Str("status", string(view.Summary.Status)).
		Msg("Results computed")

	return view, nil
}

// GetAssessmentTab lists the records whose type is exactly tab, with the
// summary of the whole list. An empty tab selects DefaultTab.
func (s *ResultService) GetAssessmentTab(ctx context.Context, studentID int, tab string) (*model.TabView, error) {
	if tab == "" {
		tab = DefaultTab
	}
	if !assessment.IsTab(tab) {
		return nil, ErrInvalidTab
	}

	records, err := s.source.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	return &model.TabView{
		Tab:     tab,
		Items:   assessment.FilterByCategory(records, tab),
		Summary: assessment.Summarize(records),
	}, nil
}

// Invalidate drops the cached view of a student.
func (s *ResultService) Invalidate(ctx context.Context, studentID int) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, studentID)
}

// ExportResults renders the student's results as an XLSX workbook.
func (s *ResultService) ExportResults(ctx context.Context, studentID int) ([]byte, error) {
	view, err := s.GetResults(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return ExportResultsXLSX(view)
}
