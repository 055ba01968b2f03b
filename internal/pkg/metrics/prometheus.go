// Package metrics records chatbot outcomes in Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is what the chatbot services report to.
type Recorder interface {
	ObserveResponse(source string, score int, duration time.Duration)
	IncEscalation(channel string)
	SetActiveSessions(n int)
}

// PrometheusRecorder implements Recorder with collectors registered on one registry.
type PrometheusRecorder struct {
	responsesTotal   *prometheus.CounterVec
	responseDuration *prometheus.HistogramVec
	matchScore       prometheus.Histogram
	escalationsTotal *prometheus.CounterVec
	activeSessions   prometheus.Gauge
}

// NewPrometheusRecorder registers the chatbot collectors on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		responsesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_responses_total",
				Help: "Total number of bot replies by the path that produced them",
			},
			[]string{"source"},
		),
		responseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatbot_response_duration_seconds",
				Help:    "Time spent computing a reply, excluding the typing delay",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"source"},
		),
		matchScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chatbot_match_score",
				Help:    "Winning relevance score of FAQ matches",
				Buckets: []float64{15, 25, 50, 100, 150, 200, 300},
			},
		),
		escalationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_escalations_total",
				Help: "Conversations handed to a person, by delivery channel",
			},
			[]string{"channel"},
		),
		activeSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "chatbot_active_sessions",
				Help: "Chat sessions currently held in memory",
			},
		),
	}
}

// ObserveResponse records one reply. Scores are only observed for FAQ matches.
func (p *PrometheusRecorder) ObserveResponse(source string, score int, duration time.Duration) {
	p.responsesTotal.WithLabelValues(source).Inc()
	p.responseDuration.WithLabelValues(source).Observe(duration.Seconds())
	if score > 0 {
		p.matchScore.Observe(float64(score))
	}
}

func (p *PrometheusRecorder) IncEscalation(channel string) {
	p.escalationsTotal.WithLabelValues(channel).Inc()
}

func (p *PrometheusRecorder) SetActiveSessions(n int) {
	p.activeSessions.Set(float64(n))
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveResponse(string, int, time.Duration) {}
func (Nop) IncEscalation(string)                       {}
func (Nop) SetActiveSessions(int)                      {}
