package portalapi

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/portal-backend/internal/assessment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, zerolog.Nop())
}

func TestListByStudent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_assessments.php", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("student_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"subject":"Math","type":"quiz","score":8,"total":10},
			{"course":"Art","type":"final","marks":"40","total_marks":50},
			{"subject":"Math","type":"mid"}
		]}`))
	})

	recs, err := c.ListByStudent(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	rows := assessment.BuildSubjectRows(recs)
	assert.Equal(t, "8 / 10", rows[0].Quiz)
	assert.Equal(t, "- /", rows[0].MidExam)
	assert.Equal(t, "40 / 50", rows[1].FinalExam)

	sum := assessment.Summarize(recs)
	assert.True(t, math.IsNaN(sum.TotalScore))
	assert.Equal(t, assessment.StatusFail, sum.Status)
}

func TestListByStudentEmptyData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	recs, err := c.ListByStudent(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestListByStudentFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		upstream bool
	}{
		{"server error", http.StatusInternalServerError, `oops`, true},
		{"reported failure", http.StatusOK, `{"success":false,"message":"no such student"}`, true},
		{"malformed body", http.StatusOK, `<html>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.ListByStudent(context.Background(), 1)
			require.Error(t, err)
			assert.Equal(t, tt.upstream, errors.Is(err, ErrUpstream))
		})
	}
}
