// Package metrics exposes Prometheus instrumentation for interview sessions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Session start modes.
const (
	ModeFresh  = "fresh"
	ModeResume = "resume"
)

// Answer triggers.
const (
	TriggerManual  = "manual"
	TriggerTimeout = "timeout"
)

// Metrics holds the interview collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	sessionsStarted *prometheus.CounterVec
	answers         *prometheus.CounterVec
	completed       prometheus.Counter
	discarded       prometheus.Counter
	scores          prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interview",
			Name:      "sessions_started_total",
			Help:      "Interview sessions started, by mode.",
		}, []string{"mode"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interview",
			Name:      "answers_total",
			Help:      "Answers recorded, by what triggered the submission.",
		}, []string{"trigger"}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "interview",
			Name:      "sessions_completed_total",
			Help:      "Interview sessions that produced a candidate.",
		}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "interview",
			Name:      "sessions_discarded_total",
			Help:      "Interview sessions abandoned without a candidate.",
		}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "interview",
			Name:      "answer_score",
			Help:      "Distribution of per-answer scores.",
			Buckets:   prometheus.LinearBuckets(0, 4, 6),
		}),
	}
	reg.MustRegister(m.sessionsStarted, m.answers, m.completed, m.discarded, m.scores)
	return m
}

// SessionStarted records a started or resumed session.
func (m *Metrics) SessionStarted(mode string) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(mode).Inc()
}

// AnswerRecorded records one scored answer.
func (m *Metrics) AnswerRecorded(trigger string, score int) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(trigger).Inc()
	m.scores.Observe(float64(score))
}

// SessionCompleted records a finished session.
func (m *Metrics) SessionCompleted() {
	if m == nil {
		return
	}
	m.completed.Inc()
}

// SessionDiscarded records an abandoned session.
func (m *Metrics) SessionDiscarded() {
	if m == nil {
		return
	}
	m.discarded.Inc()
}
