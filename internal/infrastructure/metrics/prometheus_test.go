package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveReport(t *testing.T) {
	p := NewPrometheus(false)

	p.ObserveReport("ok", 120*time.Millisecond)
	p.ObserveReport("ok", 80*time.Millisecond)
	p.ObserveReport("forbidden", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.reportsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.reportsTotal.WithLabelValues("forbidden")))
	assert.Equal(t, 1, testutil.CollectAndCount(p.reportDuration), "forbidden no registra duración")
}

func TestObserveGapFill(t *testing.T) {
	p := NewPrometheus(false)
	p.ObserveGapFill("average_cost")
	p.ObserveGapFill("average_cost")

	assert.Equal(t, 2.0, testutil.ToFloat64(p.gapFillTotal.WithLabelValues("average_cost")))
}

func TestHandlerExponeMetricas(t *testing.T) {
	p := NewPrometheus(true)
	p.ObserveReport("ok", time.Second)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(string(body), MetricReportsTotal+`{outcome="ok"} 1`))
	assert.Contains(t, string(body), "go_goroutines")
}
