package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/portal-backend/internal/response"
)

const healthTimeout = 2 * time.Second

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// SystemHandler reports process and dependency health.
type SystemHandler struct {
	checks     []HealthCheck
	queueDepth func(ctx context.Context) (int64, error)
	startTime  time.Time
	log        zerolog.Logger
}

// NewSystemHandler creates a SystemHandler. queueDepth may be nil.
func NewSystemHandler(checks []HealthCheck, queueDepth func(ctx context.Context) (int64, error), log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		checks:     checks,
		queueDepth: queueDepth,
		startTime:  time.Now(),
		log:        log.With().Str("component", "system_handler").Logger(),
	}
}

type healthReport struct {
	Status         string            `json:"status"`
	Uptime         string            `json:"uptime"`
	GoVersion      string            `json:"go_version"`
	Goroutines     int               `json:"goroutines"`
	HeapAlloc      uint64            `json:"heap_alloc"`
	Checks         map[string]string `json:"checks"`
	QueueRecompute int64             `json:"queue_recompute"`
}

// Health godoc
// GET /health
// 200 when every dependency answers, 503 otherwise.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	report := healthReport{
		Status:     "ok",
		Uptime:     formatDuration(time.Since(h.startTime)),
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
		Checks:     make(map[string]string, len(h.checks)),
	}

	for _, hc := range h.checks {
		if err := hc.Check(ctx); err != nil {
			h.log.Warn().Err(err).Str("check", hc.Name).Msg("Health check failed")
			report.Checks[hc.Name] = err.Error()
			report.Status = "degraded"
			continue
		}
		report.Checks[hc.Name] = "ok"
	}

	if h.queueDepth != nil {
		report.QueueRecompute, _ = h.queueDepth(ctx)
	}

	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	response.Success(c, status, report)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
