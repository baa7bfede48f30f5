package observability_test

import (
	"context"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	ctx := context.Background()
	h := m.Hooks()

	h.OnPresent(ctx, &domain.PresentEvent{EventBase: domain.EventBase{Flow: domain.FlowFirstLaunch}})
	h.OnPresent(ctx, &domain.PresentEvent{EventBase: domain.EventBase{Flow: domain.FlowNone}})
	h.OnPageChange(ctx, &domain.PageEvent{Direction: domain.Forward})
	h.OnPageChange(ctx, &domain.PageEvent{Direction: domain.Forward})
	h.OnPageChange(ctx, &domain.PageEvent{Direction: domain.Backward})
	h.OnPageAction(ctx, &domain.PageEvent{})
	h.OnFinish(ctx, &domain.FinishEvent{EventBase: domain.EventBase{Flow: domain.FlowFirstLaunch}, Skipped: true})
	h.OnReset(ctx, &domain.ResetEvent{Key: "k"})

	assert.Equal(t, 1.0, value(t, m.Presentations.WithLabelValues("first_launch")))
	assert.Equal(t, 1.0, value(t, m.Presentations.WithLabelValues("none")))
	assert.Equal(t, 2.0, value(t, m.PageChanges.WithLabelValues(domain.Forward.String())))
	assert.Equal(t, 1.0, value(t, m.PageChanges.WithLabelValues(domain.Backward.String())))
	assert.Equal(t, 1.0, value(t, m.PageActions))
	assert.Equal(t, 1.0, value(t, m.Finishes.WithLabelValues("first_launch", "true")))
	assert.Equal(t, 1.0, value(t, m.Resets))
}

func TestMetrics_RegisterTwiceFails(t *testing.T) {
	m := observability.NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg))
}

func value(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
