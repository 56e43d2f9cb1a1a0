// Package assessment folds raw assessment records into the per-subject
// results table and the pass/fail summary.
package assessment

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// UnknownSubject is the grouping key for records with neither subject nor course.
const UnknownSubject = "Unknown Course"

// Record is one graded item for one student. Score and Total are the
// primary fields; Marks and TotalMarks are the alternate names some portal
// endpoints use.
type Record struct {
	Subject    string `json:"subject,omitempty"`
	Course     string `json:"course,omitempty"`
	Type       string `json:"type,omitempty"`
	Score      Number `json:"score,omitzero"`
	Marks      Number `json:"marks,omitzero"`
	Total      Number `json:"total,omitzero"`
	TotalMarks Number `json:"total_marks,omitzero"`
}

// SubjectKey returns the first non-empty of subject and course, or
// UnknownSubject.
func (r Record) SubjectKey() string {
	if r.Subject != "" {
		return r.Subject
	}
	if r.Course != "" {
		return r.Course
	}
	return UnknownSubject
}

// DisplayScore resolves score then marks, "-" when neither is present.
func (r Record) DisplayScore() string {
	if r.Score.Present() {
		return r.Score.Text()
	}
	if r.Marks.Present() {
		return r.Marks.Text()
	}
	return "-"
}

// DisplayTotal resolves total then total_marks, empty when neither is present.
func (r Record) DisplayTotal() string {
	if r.Total.Present() {
		return r.Total.Text()
	}
	if r.TotalMarks.Present() {
		return r.TotalMarks.Text()
	}
	return ""
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = Record{
		Subject: looseText(fields["subject"]),
		Course:  looseText(fields["course"]),
		Type:    looseText(fields["type"]),
	}

	for key, dst := range map[string]*Number{
		"score":       &r.Score,
		"marks":       &r.Marks,
		"total":       &r.Total,
		"total_marks": &r.TotalMarks,
	} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := dst.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	return nil
}

// looseText reads a label that upstream sometimes sends as a number.
// Falsy values (null, false, 0, "") collapse to "".
func looseText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 'n', 'f':
		return ""
	case 't':
		return "true"
	case '{', '[':
		return string(raw)
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || v == 0 {
		return ""
	}
	return formatNumber(v)
}
