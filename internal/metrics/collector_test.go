package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewCollector(t *testing.T) {
	c := NewCollector("concierge", zap.NewNop())

	require.NotNil(t, c)
	assert.NotNil(t, c.httpRequestsTotal)
	assert.NotNil(t, c.turnsTotal)
	assert.NotNil(t, c.guardrailRejections)
	assert.NotNil(t, c.handoffsTotal)
	assert.NotNil(t, c.toolInvocations)
}

func TestCollector_IsolatedRegistries(t *testing.T) {
	// Two collectors with the same namespace must not collide.
	a := NewCollector("concierge", zap.NewNop())
	b := NewCollector("concierge", zap.NewNop())

	a.TurnCompleted("Triage Agent", "completed", 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.turnsTotal.WithLabelValues("Triage Agent", "completed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.turnsTotal.WithLabelValues("Triage Agent", "completed")))
}

func TestCollector_RecordHTTPRequest(t *testing.T) {
	c := NewCollector("concierge", zap.NewNop())

	c.RecordHTTPRequest("POST", "/api/v1/chat", 200, 100*time.Millisecond, 2048)
	c.RecordHTTPRequest("POST", "/api/v1/chat", 200, 50*time.Millisecond, 1024)
	c.RecordHTTPRequest("POST", "/api/v1/chat", 500, 10*time.Millisecond, 128)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("POST", "/api/v1/chat", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("POST", "/api/v1/chat", "5xx")))
}

func TestCollector_TurnMetrics(t *testing.T) {
	c := NewCollector("concierge", zap.NewNop())

	c.TurnCompleted("Schedule Agent", "completed", 20*time.Millisecond)
	c.TurnCompleted("Schedule Agent", "completed", 30*time.Millisecond)
	c.TurnCompleted("Triage Agent", "rejected", 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.turnsTotal.WithLabelValues("Schedule Agent", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.turnsTotal.WithLabelValues("Triage Agent", "rejected")))
}

func TestCollector_GuardrailAndHandoff(t *testing.T) {
	c := NewCollector("concierge", zap.NewNop())

	c.GuardrailRejected("relevance_guardrail")
	c.GuardrailRejected("relevance_guardrail")
	c.HandoffPerformed("Triage Agent", "Networking Agent")
	c.ToolInvoked("Networking Agent", "search_attendees")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.guardrailRejections.WithLabelValues("relevance_guardrail")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.handoffsTotal.WithLabelValues("Triage Agent", "Networking Agent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.toolInvocations.WithLabelValues("Networking Agent", "search_attendees")))
}

func TestCollector_DBMetrics(t *testing.T) {
	c := NewCollector("concierge", zap.NewNop())

	c.RecordDBConnections("directory", 5, 3)
	c.RecordDBQuery("directory", "sessions", 2*time.Millisecond)

	assert.Equal(t, 5.0, testutil.ToFloat64(c.dbConnectionsOpen.WithLabelValues("directory")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.dbConnectionsIdle.WithLabelValues("directory")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("concierge", zap.NewNop())
	c.TurnCompleted("Triage Agent", "completed", time.Millisecond)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "concierge_turns_total"))
}
