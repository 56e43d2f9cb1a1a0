package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/portal-backend/internal/middleware"
	"github.com/stemsi/portal-backend/internal/model"
	"github.com/stemsi/portal-backend/internal/response"
	"github.com/stemsi/portal-backend/internal/service"
	"github.com/stemsi/portal-backend/internal/validator"
)

// AssessmentHandler is the staff side: viewing a student's results and
// managing their marks.
type AssessmentHandler struct {
	assessments *service.AssessmentService
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(assessments *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments}
}

// GetStudentResults godoc
// GET /api/v1/staff/students/:id/results
func (h *AssessmentHandler) GetStudentResults(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	view, err := h.assessments.StudentResults(c.Request.Context(), int(id))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// ListStudentAssessments godoc
// GET /api/v1/staff/students/:id/assessments
func (h *AssessmentHandler) ListStudentAssessments(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.assessments.ListForStudent(c.Request.Context(), int(id))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows)
}

// CreateAssessment godoc
// POST /api/v1/staff/assessments
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req model.CreateAssessmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	a, err := h.assessments.Create(c.Request.Context(), middleware.GetClaims(c).UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, a)
}

// UpdateAssessment godoc
// PUT /api/v1/staff/assessments/:id
func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAssessmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	a, err := h.assessments.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a)
}

// DeleteAssessment godoc
// DELETE /api/v1/staff/assessments/:id
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	if err := h.assessments.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
