package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getMetricsBody(t *testing.T, m *Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_New(t *testing.T) {
	m := New()
	assert.NotNil(t, m.CompletionsTotal)
	assert.NotNil(t, m.AIRequestsTotal)
	assert.NotNil(t, m.Stats)
}

func TestMetrics_TaskCounters(t *testing.T) {
	m := New()
	m.RecordCompletion("low")
	m.RecordCompletion("low")
	m.RecordCompletion("high")
	m.RecordUncompletion()
	m.RecordWake("sweep", 2)

	body := getMetricsBody(t, m)
	assert.Contains(t, body, `focusd_task_completions_total{complexity="low"} 2`)
	assert.Contains(t, body, `focusd_task_completions_total{complexity="high"} 1`)
	assert.Contains(t, body, `focusd_task_uncompletions_total 1`)
	assert.Contains(t, body, `focusd_snooze_wakes_total{source="sweep"} 2`)
}

func TestMetrics_AIRequests(t *testing.T) {
	m := New()
	m.RecordAIRequest("analyze", "ok", 0.4)
	m.RecordAIRequest("analyze", "error", 30)

	body := getMetricsBody(t, m)
	assert.Contains(t, body, `focusd_ai_requests_total{op="analyze",status="ok"} 1`)
	assert.Contains(t, body, `focusd_ai_requests_total{op="analyze",status="error"} 1`)
	assert.Contains(t, body, "focusd_ai_request_duration_seconds")
}

func TestMetrics_ProgressGauges(t *testing.T) {
	m := New()
	m.SetProgress(3, 55, 80, 12)
	m.RecordPersistError()
	m.RecordSafetyFlag()

	body := getMetricsBody(t, m)
	assert.Contains(t, body, "focusd_level 3")
	assert.Contains(t, body, `focusd_stat{stat="energy"} 80`)
	assert.Contains(t, body, "focusd_persist_errors_total 1")
	assert.Contains(t, body, "focusd_safety_flags_total 1")
}
