package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg)

	rec.ObserveResponse("faq", 190, time.Millisecond)
	rec.ObserveResponse("faq", 25, time.Millisecond)
	rec.ObserveResponse("default", 0, time.Millisecond)
	rec.IncEscalation("nats")
	rec.SetActiveSessions(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.responsesTotal.WithLabelValues("faq")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.responsesTotal.WithLabelValues("default")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.escalationsTotal.WithLabelValues("nats")))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.activeSessions))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.matchScore))
	assert.Equal(t, 2, testutil.CollectAndCount(rec.responseDuration))
}

func TestNewPrometheusRecorder_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewPrometheusRecorder(prometheus.NewRegistry())
		NewPrometheusRecorder(prometheus.NewRegistry())
	})
}
