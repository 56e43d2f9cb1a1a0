package assessment

import "strings"

// EmptySlot marks a category with no record for the subject.
const EmptySlot = "-"

// SubjectRow is one line of the results table.
type SubjectRow struct {
	Subject    string `json:"subject"`
	Assignment string `json:"assignment"`
	Quiz       string `json:"quiz"`
	MidExam    string `json:"mid_exam"`
	FinalExam  string `json:"final_exam"`
	Other      string `json:"other"`
}

func newSubjectRow(subject string) SubjectRow {
	return SubjectRow{
		Subject:    subject,
		Assignment: EmptySlot,
		Quiz:       EmptySlot,
		MidExam:    EmptySlot,
		FinalExam:  EmptySlot,
		Other:      EmptySlot,
	}
}

// Slot returns the cell for c.
func (r SubjectRow) Slot(c Category) string {
	switch c {
	case CategoryAssignment:
		return r.Assignment
	case CategoryQuiz:
		return r.Quiz
	case CategoryMidExam:
		return r.MidExam
	case CategoryFinalExam:
		return r.FinalExam
	default:
		return r.Other
	}
}

func (r *SubjectRow) setSlot(c Category, v string) {
	switch c {
	case CategoryAssignment:
		r.Assignment = v
	case CategoryQuiz:
		r.Quiz = v
	case CategoryMidExam:
		r.MidExam = v
	case CategoryFinalExam:
		r.FinalExam = v
	default:
		r.Other = v
	}
}

// CellText formats a record as "<score> / <total>". The result is trimmed,
// so a record without any total renders as "8 /".
func CellText(r Record) string {
	return strings.TrimSpace(r.DisplayScore() + " / " + r.DisplayTotal())
}

// BuildSubjectRows pivots records into one row per subject, in order of first
// appearance. A later record of the same category overwrites the earlier one.
func BuildSubjectRows(records []Record) []SubjectRow {
	rows := make([]SubjectRow, 0)
	index := make(map[string]int)

	for _, rec := range records {
		subject := rec.SubjectKey()
		i, ok := index[subject]
		if !ok {
			i = len(rows)
			index[subject] = i
			rows = append(rows, newSubjectRow(subject))
		}
		rows[i].setSlot(ClassifyCategory(rec.Type), CellText(rec))
	}
	return rows
}
