package assessment

import "strings"

// Category is one of the five columns of the results table.
type Category string

const (
	CategoryAssignment Category = "assignment"
	CategoryQuiz       Category = "quiz"
	CategoryMidExam    Category = "mid_exam"
	CategoryFinalExam  Category = "final_exam"
	CategoryOther      Category = "other"
)

// Categories lists the columns in display order.
var Categories = []Category{
	CategoryAssignment,
	CategoryQuiz,
	CategoryMidExam,
	CategoryFinalExam,
	CategoryOther,
}

// ClassifyCategory buckets a free-text type label by case-insensitive
// substring match. The checks run in a fixed order, so "quizmid" is a quiz.
func ClassifyCategory(label string) Category {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "assign"):
		return CategoryAssignment
	case strings.Contains(l, "quiz"):
		return CategoryQuiz
	case strings.Contains(l, "mid"):
		return CategoryMidExam
	case strings.Contains(l, "final"):
		return CategoryFinalExam
	default:
		return CategoryOther
	}
}
