package assessment

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// PassMark is the lowest rounded average that passes.
const PassMark = 50

// Status is the pass/fail label of a summary.
type Status string

const (
	StatusPass Status = "Pass"
	StatusFail Status = "Fail"
)

// Summary aggregates every record of a student regardless of subject.
// TotalScore, TotalMax and Average may be NaN when an input record lacks a
// primary score or total field; Status is still one of the two labels.
type Summary struct {
	TotalScore float64
	TotalMax   float64
	Average    float64
	Status     Status
}

// Summarize sums the primary score and total fields of records.
//
// Only score and total are read here; marks and total_marks are ignored. An
// absent or non-numeric field makes the matching sum NaN, a null field adds
// zero. Average is zero when TotalMax is exactly zero, otherwise the ratio in
// percent rounded to two decimals. The pass check uses the rounded value and
// is false for NaN.
func Summarize(records []Record) Summary {
	var totalScore, totalMax float64
	for _, rec := range records {
		totalScore += rec.Score.contribution()
		totalMax += rec.Total.contribution()
	}

	var average float64
	if totalMax != 0 {
		average = roundHalfAway(totalScore/totalMax*100, 2)
	}

	status := StatusFail
	if average >= PassMark {
		status = StatusPass
	}

	return Summary{
		TotalScore: totalScore,
		TotalMax:   totalMax,
		Average:    average,
		Status:     status,
	}
}

// AverageText renders the average as shown to the student: "0" for the
// empty-total guard, "NaN" when undefined, two decimals otherwise.
func (s Summary) AverageText() string {
	switch {
	case math.IsNaN(s.Average):
		return "NaN"
	case s.TotalMax == 0:
		return "0"
	}
	return strconv.FormatFloat(s.Average, 'f', 2, 64)
}

// Passed reports whether Status is StatusPass.
func (s Summary) Passed() bool { return s.Status == StatusPass }

type summaryJSON struct {
	TotalScore figure `json:"total_score"`
	TotalMax   figure `json:"total_max"`
	Average    string `json:"average"`
	Status     Status `json:"status"`
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(summaryJSON{
		TotalScore: figure(s.TotalScore),
		TotalMax:   figure(s.TotalMax),
		Average:    s.AverageText(),
		Status:     s.Status,
	})
}

func (s *Summary) UnmarshalJSON(data []byte) error {
	var aux summaryJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	avg, err := strconv.ParseFloat(aux.Average, 64)
	if err != nil {
		return fmt.Errorf("parse average %q: %w", aux.Average, err)
	}
	*s = Summary{
		TotalScore: float64(aux.TotalScore),
		TotalMax:   float64(aux.TotalMax),
		Average:    avg,
		Status:     aux.Status,
	}
	return nil
}

// figure is a float that survives JSON when NaN, encoded as the string "NaN".
type figure float64

func (f figure) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(formatNumber(v))
	}
	return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
}

func (f *figure) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "Infinity":
			*f = figure(math.Inf(1))
		case "-Infinity":
			*f = figure(math.Inf(-1))
		default:
			*f = figure(math.NaN())
		}
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = figure(v)
	return nil
}

func roundHalfAway(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// TotalScoreText renders TotalScore for display ("NaN" when undefined).
func (s Summary) TotalScoreText() string { return formatNumber(s.TotalScore) }

// TotalMaxText renders TotalMax for display ("NaN" when undefined).
func (s Summary) TotalMaxText() string { return formatNumber(s.TotalMax) }
