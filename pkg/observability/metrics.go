package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the onboarding collectors.
type Metrics struct {
	Presentations *prometheus.CounterVec
	PageChanges   *prometheus.CounterVec
	PageActions   prometheus.Counter
	Finishes      *prometheus.CounterVec
	Resets        prometheus.Counter
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Presentations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_presentations_total",
				Help: "Onboarding decisions by flow kind.",
			},
			[]string{"flow"},
		),
		PageChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_page_changes_total",
				Help: "Page transitions by direction.",
			},
			[]string{"direction"},
		),
		PageActions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "waypoint_page_actions_total",
				Help: "Per-page actions run.",
			},
		),
		Finishes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_finishes_total",
				Help: "Completed presentations by flow kind and whether the tour was skipped.",
			},
			[]string{"flow", "skipped"},
		),
		Resets: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "waypoint_resets_total",
				Help: "Version marker resets.",
			},
		),
	}
}

// Collectors returns every collector, for registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Presentations, m.PageChanges, m.PageActions, m.Finishes, m.Resets}
}

// Register registers the collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.Collectors()...)
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPresent: func(_ context.Context, e *domain.PresentEvent) {
			m.Presentations.WithLabelValues(e.Flow.String()).Inc()
		},
		OnPageChange: func(_ context.Context, e *domain.PageEvent) {
			m.PageChanges.WithLabelValues(e.Direction.String()).Inc()
		},
		OnPageAction: func(context.Context, *domain.PageEvent) {
			m.PageActions.Inc()
		},
		OnFinish: func(_ context.Context, e *domain.FinishEvent) {
			m.Finishes.WithLabelValues(e.Flow.String(), strconv.FormatBool(e.Skipped)).Inc()
		},
		OnReset: func(context.Context, *domain.ResetEvent) {
			m.Resets.Inc()
		},
	}
}
