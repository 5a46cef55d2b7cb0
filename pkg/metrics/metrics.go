// Package metrics exposes prometheus collectors for registration and
// subscription activity. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors updated by the registration engine.
type Metrics struct {
	KindsDeclared         prometheus.Counter
	StoriesRegistered     *prometheus.CounterVec
	DuplicateStories      prometheus.Counter
	KindsDisposed         prometheus.Counter
	Renders               *prometheus.CounterVec
	SubscriptionsActive   prometheus.Gauge
	SubscriptionTeardowns prometheus.Counter
}

// New creates the collectors and registers them with reg. Pass a fresh
// prometheus.NewRegistry() rather than the default registerer so several
// engines can coexist in one process.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		KindsDeclared: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storyreg_kinds_declared_total",
			Help: "Total number of kinds declared",
		}),
		StoriesRegistered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storyreg_stories_registered_total",
			Help: "Total number of stories written to the catalog",
		}, []string{"kind"}),
		DuplicateStories: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storyreg_duplicate_stories_total",
			Help: "Total number of stories registered under a name that already existed",
		}),
		KindsDisposed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storyreg_kinds_disposed_total",
			Help: "Total number of kinds removed by a module reload",
		}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storyreg_renders_total",
			Help: "Total number of story renders, by whether subscription tracking ran",
		}, []string{"tracked"}),
		SubscriptionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storyreg_subscriptions_active",
			Help: "Number of subscriptions currently tracked",
		}),
		SubscriptionTeardowns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storyreg_subscription_teardowns_total",
			Help: "Total number of subscriptions torn down",
		}),
	}

	collectors := []prometheus.Collector{
		m.KindsDeclared,
		m.StoriesRegistered,
		m.DuplicateStories,
		m.KindsDisposed,
		m.Renders,
		m.SubscriptionsActive,
		m.SubscriptionTeardowns,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// KindDeclared records a storiesOf call.
func (m *Metrics) KindDeclared() {
	if m == nil {
		return
	}
	m.KindsDeclared.Inc()
}

// StoryRegistered records a catalog write for kind.
func (m *Metrics) StoryRegistered(kind string, duplicate bool) {
	if m == nil {
		return
	}
	m.StoriesRegistered.WithLabelValues(kind).Inc()
	if duplicate {
		m.DuplicateStories.Inc()
	}
}

// KindDisposed records a reload removing a kind.
func (m *Metrics) KindDisposed() {
	if m == nil {
		return
	}
	m.KindsDisposed.Inc()
}

// Rendered records a story render.
func (m *Metrics) Rendered(tracked bool) {
	if m == nil {
		return
	}
	label := "false"
	if tracked {
		label = "true"
	}
	m.Renders.WithLabelValues(label).Inc()
}

// SubscriptionStarted implements subscriptions.Observer.
func (m *Metrics) SubscriptionStarted() {
	if m == nil {
		return
	}
	m.SubscriptionsActive.Inc()
}

// SubscriptionStopped implements subscriptions.Observer.
func (m *Metrics) SubscriptionStopped() {
	if m == nil {
		return
	}
	m.SubscriptionsActive.Dec()
	m.SubscriptionTeardowns.Inc()
}
