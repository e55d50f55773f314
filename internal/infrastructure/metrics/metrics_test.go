package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

func TestObserveDispatchAndInstruction(t *testing.T) {
	m := New("test")

	m.ObserveDispatch(entity.FormTypeGoogle, "url")
	m.ObserveDispatch(entity.FormTypeGoogle, "url")
	m.ObserveDispatch(entity.FormTypeGeneric, "fallback")
	m.ObserveInstruction(entity.FormTypeGoogle, 2400, true)
	m.ObserveInstruction(entity.FormTypeGoogle, 3600, false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DispatchTotal.WithLabelValues("google", "url")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DispatchTotal.WithLabelValues("generic", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InstructionInvalid.WithLabelValues("google")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.InstructionLength))
}

func TestObserveSubmission(t *testing.T) {
	m := New("test")

	m.ObserveSubmission(entity.SubmissionCompleted, "browseruse")
	m.ObserveSubmission(entity.SubmissionFailed, "local")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("completed", "browseruse")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("failed", "local")))
}

func TestHandler_ExposesPrivateRegistry(t *testing.T) {
	m := New("")
	m.ObserveHTTP("GET", "/health", 200, 3*time.Millisecond)
	m.CacheHit()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `suparaise_http_requests_total{method="GET",path="/health",status="200"} 1`)
	assert.Contains(t, string(body), "suparaise_startup_cache_hits_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
