package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/portal-backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

func queryContext(target string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestBindQueryAssessmentTab(t *testing.T) {
	for _, tab := range []string{"", "assignment", "quiz", "mid", "final"} {
		var q model.AssessmentTabQuery
		assert.Nil(t, BindQuery(queryContext("/?type="+tab), &q), tab)
		assert.Equal(t, tab, q.Type)
	}

	for _, tab := range []string{"Quiz", "mid_exam", "exam"} {
		var q model.AssessmentTabQuery
		fields := BindQuery(queryContext("/?type="+tab), &q)
		assert.Contains(t, fields, "type", tab)
		assert.Contains(t, fields["type"], "must be one of assignment, quiz, mid, final")
	}
}

func TestBindJSON(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"username":"al"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req model.LoginRequest
	fields := Bind(c, &req)

	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
}

func TestBindMalformedJSON(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{`))

	var req model.LoginRequest
	fields := Bind(c, &req)

	assert.Contains(t, fields, "detail")
}
