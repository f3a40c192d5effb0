package runtime

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the engine collectors; a nil *metrics records nothing.
type metrics struct {
	ticks       prometheus.Counter
	tickSeconds prometheus.Histogram
	values      *prometheus.GaugeVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "synapse",
			Name:      "ticks_total",
			Help:      "Update cycles executed.",
		}),
		tickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "synapse",
			Name:      "tick_duration_seconds",
			Help:      "Wall time of one update cycle.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "synapse",
			Name:      "neuron_value",
			Help:      "Neuron output after the last update cycle.",
		}, []string{"circuit", "neuron"}),
	}

	var err error
	if m.ticks, err = register(reg, m.ticks); err != nil {
		return nil, err
	}
	if m.tickSeconds, err = register(reg, m.tickSeconds); err != nil {
		return nil, err
	}
	if m.values, err = register(reg, m.values); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, reusing an identical collector registered earlier.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("%w: %v", ErrMetrics, err)
	}
	return c, nil
}
