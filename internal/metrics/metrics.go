// Package metrics records wizard and form activity with Prometheus.
package metrics

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quoteflow"

// Collector groups the quoteflow metrics and exposes them as lifecycle hooks.
type Collector struct {
	StepViews          *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	SubmissionsActive  *prometheus.GaugeVec
	Submissions        *prometheus.CounterVec
	SubmitDuration     *prometheus.HistogramVec

	reg prometheus.Registerer
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		StepViews: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "step_views_total",
				Help:      "Total number of quote wizard steps shown.",
			},
			[]string{"step"},
		),
		ValidationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Total number of blocked steps and rejected forms.",
			},
			[]string{"form"},
		),
		SubmissionsActive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "submissions_in_flight",
				Help:      "Submissions waiting for the sink.",
			},
			[]string{"form"},
		),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Finished submissions by outcome.",
			},
			[]string{"form", "status"},
		),
		SubmitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "submission_duration_seconds",
				Help:      "Time from submit to outcome.",
				Buckets:   []float64{0.1, 0.5, 1, 1.5, 2, 3, 5, 10, 30},
			},
			[]string{"form"},
		),
		reg: reg,
	}
	reg.MustRegister(
		c.StepViews,
		c.ValidationFailures,
		c.SubmissionsActive,
		c.Submissions,
		c.SubmitDuration,
	)
	return c
}

// TrackPages exports the number of live pages, read from count at scrape
// time.
func (c *Collector) TrackPages(count func() int) {
	c.reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pages_active",
			Help:      "Live page instances.",
		},
		func() float64 { return float64(count()) },
	))
}

// scrapeTimeout bounds the backend read of a scrape.
const scrapeTimeout = 2 * time.Second

// TrackQueue exports the number of leads waiting for downstream agents, read
// from pending at scrape time. A failed read reports NaN.
func (c *Collector) TrackQueue(pending func(context.Context) (int64, error)) {
	c.reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "leads_queued",
			Help:      "Leads waiting in the queue.",
		},
		func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
			defer cancel()
			n, err := pending(ctx)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		},
	))
}

// Hooks returns lifecycle hooks that feed the collectors.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			c.StepViews.WithLabelValues(strconv.Itoa(e.Step)).Inc()
		},
		OnValidationFailed: func(_ context.Context, e *domain.ValidationEvent) {
			c.ValidationFailures.WithLabelValues(e.Form).Inc()
		},
		OnSubmitStart: func(_ context.Context, e *domain.SubmitEvent) {
			c.SubmissionsActive.WithLabelValues(e.Form).Inc()
		},
		OnSubmitFinish: func(_ context.Context, e *domain.SubmitEvent) {
			c.SubmissionsActive.WithLabelValues(e.Form).Dec()
			c.Submissions.WithLabelValues(e.Form, string(e.Status)).Inc()
			c.SubmitDuration.WithLabelValues(e.Form).Observe(e.Duration.Seconds())
		},
	}
}
