package observability

import (
	"context"

	"github.com/collecty/richtext/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects render counters and histograms.
// Register it once per registry; Hooks may be shared by many renderers.
type Metrics struct {
	renders  *prometheus.CounterVec
	duration prometheus.Histogram
	bytes    prometheus.Histogram
	issues   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg falls back to prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "richtext_renders_total",
				Help: "Total number of documents rendered, by input shape",
			},
			[]string{"shape"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "richtext_render_duration_seconds",
			Help:    "Duration of render passes",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		bytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "richtext_render_bytes",
			Help:    "Size of rendered HTML fragments",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8),
		}),
		issues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "richtext_issues_total",
				Help: "Total number of document issues found while rendering, by kind",
			},
			[]string{"kind"},
		),
	}

	for _, c := range []prometheus.Collector{m.renders, m.duration, m.bytes, m.issues} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns render hooks that record into m.
func (m *Metrics) Hooks() domain.RenderHooks {
	return domain.RenderHooks{
		OnRender: func(ctx context.Context, e *domain.RenderEvent) {
			m.renders.WithLabelValues(e.Shape).Inc()
			m.duration.Observe(e.Duration.Seconds())
			m.bytes.Observe(float64(e.Bytes))
		},
		OnIssue: func(ctx context.Context, e *domain.IssueEvent) {
			m.issues.WithLabelValues(string(e.Issue.Kind)).Inc()
		},
	}
}

// Chain combines hooks so several observers see every event in order.
func Chain(hooks ...domain.RenderHooks) domain.RenderHooks {
	return domain.RenderHooks{
		OnRender: func(ctx context.Context, e *domain.RenderEvent) {
			for _, h := range hooks {
				if h.OnRender != nil {
					h.OnRender(ctx, e)
				}
			}
		},
		OnIssue: func(ctx context.Context, e *domain.IssueEvent) {
			for _, h := range hooks {
				if h.OnIssue != nil {
					h.OnIssue(ctx, e)
				}
			}
		},
	}
}
