// Package metrics exports narrow-phase activity to Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "narrowphase"

// Recorder aggregates the activity of a collision world. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	updates  *prometheus.CounterVec
	contacts prometheus.Counter
	depths   prometheus.Histogram
	steps    prometheus.Counter
	pairs    prometheus.Gauge
	idsInUse prometheus.Gauge
}

// NewRecorder creates the collectors and registers them on reg. A nil reg leaves them
// unregistered.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generator_updates_total",
			Help:      "Contact generator updates, by generator and whether it handled the pair.",
		}, []string{"generator", "applicable"}),
		contacts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contacts_total",
			Help:      "Contacts emitted by all generators.",
		}),
		depths: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "manifold_max_depth",
			Help:      "Depth of the deepest contact of each non-empty manifold, negative for speculative contacts.",
			Buckets:   []float64{-0.1, -0.01, 0, 0.001, 0.01, 0.05, 0.1, 0.5},
		}),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Collision steps run.",
		}),
		pairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracked_pairs",
			Help:      "Shape pairs owning a contact generator.",
		}),
		idsInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "contact_ids_in_use",
			Help:      "Contact ids currently allocated.",
		}),
	}

	if reg != nil {
		reg.MustRegister(r.updates, r.contacts, r.depths, r.steps, r.pairs, r.idsInUse)
	}
	return r
}

// ObserveUpdate records one generator update and the contacts it left in its manifolds.
func (r *Recorder) ObserveUpdate(generator string, applicable bool, contacts int) {
	if r == nil {
		return
	}
	r.updates.WithLabelValues(generator, strconv.FormatBool(applicable)).Inc()
	r.contacts.Add(float64(contacts))
}

// ObserveManifold records the depth of the deepest contact of a manifold.
func (r *Recorder) ObserveManifold(maxDepth float64) {
	if r == nil {
		return
	}
	r.depths.Observe(maxDepth)
}

// ObserveStep records the state of the world at the end of a step.
func (r *Recorder) ObserveStep(pairs, idsInUse int) {
	if r == nil {
		return
	}
	r.steps.Inc()
	r.pairs.Set(float64(pairs))
	r.idsInUse.Set(float64(idsInUse))
}
