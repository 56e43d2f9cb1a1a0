package service

import (
	"fmt"
	"math"

	"github.com/stemsi/portal-backend/internal/assessment"
	"github.com/stemsi/portal-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

var resultsHeader = []interface{}{"Course / Subject", "Assignment", "Quiz", "Mid Exam", "Final Exam", "Other"}

// ExportResultsXLSX writes the results table and summary to a workbook.
func ExportResultsXLSX(view *model.ResultView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	if err := f.SetSheetRow(resultsSheet, "A1", &resultsHeader); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(resultsSheet, "A1", "F1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(resultsSheet, "A", "A", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(resultsSheet, "B", "F", 14); err != nil {
		return nil, err
	}

	for i, row := range view.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{row.Subject}
		for _, c := range assessment.Categories {
			values = append(values, row.Slot(c))
		}
		if err := f.SetSheetRow(resultsSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	sum := view.Summary
	lines := [][]interface{}{
		{"Total Score", sheetNumber(sum.TotalScore, sum.TotalScoreText())},
		{"Total Max", sheetNumber(sum.TotalMax, sum.TotalMaxText())},
		{"Average (%)", sum.AverageText()},
		{"Status", string(sum.Status)},
	}
	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &line); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A4", bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetNumber keeps finite figures numeric and writes NaN as text.
func sheetNumber(v float64, text string) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return text
	}
	return v
}
