package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureBody(t *testing.T, contentType, body string) string {
	t.Helper()
	var got string
	handler := SnakeCaseBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, int64(len(raw)), r.ContentLength)
		got = string(raw)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestSnakeCaseBody_ConvertsCamelKeys(t *testing.T) {
	got := captureBody(t, "application/json; charset=utf-8",
		`{"employeeId":"e1","timeEntries":{"3":{"otIn":"17:00"}}}`)

	assert.JSONEq(t, `{"employee_id":"e1","time_entries":{"3":{"ot_in":"17:00"}}}`, got)
}

func TestSnakeCaseBody_SnakeBodyUnchanged(t *testing.T) {
	got := captureBody(t, "application/json", `{"rush_tarp_count":2}`)

	assert.JSONEq(t, `{"rush_tarp_count":2}`, got)
}

func TestSnakeCaseBody_PassesThroughInvalidJSON(t *testing.T) {
	assert.Equal(t, `{"employeeId":`, captureBody(t, "application/json", `{"employeeId":`))
}

func TestSnakeCaseBody_IgnoresOtherContentTypes(t *testing.T) {
	assert.Equal(t, "employeeId=e1", captureBody(t, "application/x-www-form-urlencoded", "employeeId=e1"))
}
