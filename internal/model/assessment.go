package model

import (
	"time"

	"github.com/stemsi/portal-backend/internal/assessment"
)

// Assessment is one stored graded item. Score and Total are nullable; a
// NULL column is treated as a missing field by the results summary.
type Assessment struct {
	ID        int64     `json:"id"`
	StudentID int       `json:"student_id"`
	Subject   string    `json:"subject"`
	Course    string    `json:"course,omitempty"`
	Type      string    `json:"type"`
	Score     *float64  `json:"score"`
	Total     *float64  `json:"total"`
	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Record converts the row into the shape the aggregator consumes.
func (a Assessment) Record() assessment.Record {
	return assessment.Record{
		Subject: a.Subject,
		Course:  a.Course,
		Type:    a.Type,
		Score:   assessment.NumPtr(a.Score),
		Total:   assessment.NumPtr(a.Total),
	}
}

// CreateAssessmentRequest is the payload for recording a mark.
type CreateAssessmentRequest struct {
	StudentID int      `json:"student_id" binding:"required,gt=0"`
	Subject   string   `json:"subject" binding:"omitempty,max=100"`
	Course    string   `json:"course" binding:"omitempty,max=100"`
	Type      string   `json:"type" binding:"required,max=50"`
	Score     *float64 `json:"score" binding:"omitempty,gte=0"`
	Total     *float64 `json:"total" binding:"omitempty,gte=0"`
}

// UpdateAssessmentRequest is the payload for correcting a mark.
type UpdateAssessmentRequest struct {
	Subject string   `json:"subject" binding:"omitempty,max=100"`
	Course  string   `json:"course" binding:"omitempty,max=100"`
	Type    string   `json:"type" binding:"required,max=50"`
	Score   *float64 `json:"score" binding:"omitempty,gte=0"`
	Total   *float64 `json:"total" binding:"omitempty,gte=0"`
}

// AssessmentTabQuery selects one tab of the raw assessment list.
type AssessmentTabQuery struct {
	Type string `form:"type" binding:"omitempty,assessment_tab"`
}
