package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/auth/login", "POST", 200, 10*time.Millisecond)
	m.RecordRequest("/api/auth/login", "POST", 200, 30*time.Millisecond)
	m.RecordError("/api/auth/login", "POST", "INVALID_CREDENTIALS")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/api/auth/login|POST|200"])
	assert.Equal(t, int64(20), snap.AvgLatencyMillis["/api/auth/login|POST|200"])
	assert.Equal(t, int64(1), snap.Errors["/api/auth/login|POST|INVALID_CREDENTIALS"])
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}
