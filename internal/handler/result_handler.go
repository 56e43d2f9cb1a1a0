package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/portal-backend/internal/middleware"
	"github.com/stemsi/portal-backend/internal/model"
	"github.com/stemsi/portal-backend/internal/response"
	"github.com/stemsi/portal-backend/internal/service"
	"github.com/stemsi/portal-backend/internal/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ResultHandler serves the student results screens.
type ResultHandler struct {
	results *service.ResultService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(results *service.ResultService) *ResultHandler {
	return &ResultHandler{results: results}
}

// GetMyResults godoc
// GET /api/v1/student/results
// Returns the subject pivot table and the overall summary.
func (h *ResultHandler) GetMyResults(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.results.GetResults(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// GetMyAssessments godoc
// GET /api/v1/student/assessments?type=quiz
// Returns the raw records of one tab and the summary of all records.
func (h *ResultHandler) GetMyAssessments(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var q model.AssessmentTabQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidTab, fields)
		return
	}

	tab, err := h.results.GetAssessmentTab(c.Request.Context(), claims.UserID, q.Type)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tab)
}

// ExportMyResults godoc
// GET /api/v1/student/results/export
// Downloads the results as an XLSX workbook.
func (h *ResultHandler) ExportMyResults(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	body, err := h.results.ExportResults(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Attachment(c, xlsxContentType, fmt.Sprintf("results-%d.xlsx", claims.UserID), body)
}
