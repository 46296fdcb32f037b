package problem

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, p Problem, includeTrace bool) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		p.Abort(c, includeTrace)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))
	return w
}

func TestAbortWritesProblemShape(t *testing.T) {
	w := serve(t, Problem{
		Title:  "Login failed",
		Detail: "bad credentials",
		Status: http.StatusBadRequest,
		Type:   "InvalidCredentials",
	}, false)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Login failed", body["title"])
	assert.Equal(t, "bad credentials", body["detail"])
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
	assert.Equal(t, "InvalidCredentials", body["type"])
	assert.NotContains(t, body, "trace")
	assert.NotContains(t, body, "details")
}

func TestAbortIncludesDetails(t *testing.T) {
	w := serve(t, Problem{
		Title:   "User can't be created",
		Detail:  "User can't be created",
		Status:  http.StatusBadRequest,
		Type:    "UserCreation",
		Details: []string{"first reason", "second reason"},
	}, false)

	var body struct {
		Details []string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"first reason", "second reason"}, body.Details)
}

func TestAbortTraceOnlyWhenRequested(t *testing.T) {
	p := Problem{Title: "Unexpected error happened", Status: http.StatusInternalServerError, Type: "Unexpected"}

	with := serve(t, p, true)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(with.Body.Bytes(), &body))
	trace, ok := body["trace"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, trace)

	without := serve(t, p, false)
	body = map[string]interface{}{}
	require.NoError(t, json.Unmarshal(without.Body.Bytes(), &body))
	assert.NotContains(t, body, "trace")
}
