// Package portalapi reads assessment records from the legacy student
// portal REST API.
package portalapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/portal-backend/internal/assessment"
)

// ErrUpstream is returned when the portal answers but reports a failure.
var ErrUpstream = errors.New("portal api reported failure")

const maxBodyBytes = 4 << 20

// Client talks to the portal API at baseURL.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a Client. baseURL must not end with a slash.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "portal_api").Logger(),
	}
}

type assessmentsEnvelope struct {
	Success *bool               `json:"success"`
	Message string              `json:"message"`
	Data    []assessment.Record `json:"data"`
}

// ListByStudent fetches GET /get_assessments.php?student_id=N. The records
// keep the portal's field presence untouched.
func (c *Client) ListByStudent(ctx context.Context, studentID int) ([]assessment.Record, error) {
	q := url.Values{}
	q.Set("student_id", strconv.Itoa(studentID))
	endpoint := c.baseURL + "/get_assessments.php?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get assessments: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	c.log.Debug().
		Int("student_id", studentID).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Portal assessments fetched")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var env assessmentsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode assessments: %w", err)
	}
	if env.Success != nil && !*env.Success {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, env.Message)
	}
	if env.Data == nil {
		env.Data = []assessment.Record{}
	}
	return env.Data, nil
}
