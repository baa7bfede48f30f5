/*
Package observability provides Prometheus collectors for onboarding presentations.

Metrics are fed through domain.LifecycleHooks, so any host that accepts hooks can
be instrumented without further wiring:

	m := observability.NewMetrics()
	m.MustRegister(prometheus.DefaultRegisterer)
	host, _ := waypoint.New("2.0", waypoint.WithLifecycleHooks(m.Hooks()))
*/
package observability
