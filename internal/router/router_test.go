package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/portal-backend/internal/config"
	"github.com/stemsi/portal-backend/internal/handler"
	"github.com/stemsi/portal-backend/internal/service"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	cfg := &config.Config{GinMode: gin.TestMode, JWTSecret: "test", JWTExpiry: time.Hour}
	auth := service.NewAuthService(cfg, nil, nil)
	handlers := &Handlers{
		Auth:       handler.NewAuthHandler(auth),
		Result:     handler.NewResultHandler(nil),
		Assessment: handler.NewAssessmentHandler(nil),
		Snapshot:   handler.NewSnapshotHandler(nil),
		WS:         handler.NewWSHandler(nil, nil, zerolog.Nop(), nil),
		System:     handler.NewSystemHandler(nil, nil, zerolog.Nop()),
	}
	return SetupRouter(auth, nil, handlers, cfg, zerolog.Nop())
}

func TestRoutesRegistered(t *testing.T) {
	r := newTestRouter()

	registered := map[string]bool{}
	for _, rt := range r.Routes() {
		registered[rt.Method+" "+rt.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/me",
		"GET /api/v1/student/results",
		"GET /api/v1/student/assessments",
		"GET /api/v1/student/results/export",
		"GET /ws/v1/student/results/stream",
		"GET /api/v1/staff/students/:id/results",
		"GET /api/v1/staff/students/:id/assessments",
		"POST /api/v1/staff/assessments",
		"PUT /api/v1/staff/assessments/:id",
		"DELETE /api/v1/staff/assessments/:id",
		"GET /api/v1/admin/results",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestHealthAndAuthGuard(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/student/results", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REQUIRED")
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	req.Header.Set("Origin", "http://portal.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
