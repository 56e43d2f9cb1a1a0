package model

import (
	"time"

	"github.com/stemsi/portal-backend/internal/assessment"
)

// ResultSnapshot is the last computed summary of a student, kept for the
// admin overview. NaN figures are stored as-is.
type ResultSnapshot struct {
	StudentID   int                `json:"student_id"`
	StudentName string             `json:"student_name"`
	Summary     assessment.Summary `json:"summary"`
	ComputedAt  time.Time          `json:"computed_at"`
}

// ResultView is what a results screen renders: the pivot table and summary.
type ResultView struct {
	StudentID int                     `json:"student_id"`
	Rows      []assessment.SubjectRow `json:"rows"`
	Summary   assessment.Summary      `json:"summary"`
}

// TabView is one tab of the raw assessment list together with the summary
// of the student's full list.
type TabView struct {
	Tab     string              `json:"tab"`
	Items   []assessment.Record `json:"items"`
	Summary assessment.Summary  `json:"summary"`
}
