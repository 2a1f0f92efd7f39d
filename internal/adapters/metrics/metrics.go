// Package metrics exposes relay outcomes as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/dkeysil/tg2vk/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Recorder struct {
	relayed  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		relayed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tg2vk_relayed_messages_total",
				Help: "Total number of processed messages by attachment kind and result",
			},
			[]string{"kind", "result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tg2vk_relay_duration_seconds",
				Help:    "Time from receiving a message to publishing the wall post",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"kind"},
		),
	}
}

func (r *Recorder) Observe(kind domain.Kind, result string, elapsed time.Duration) {
	r.relayed.WithLabelValues(string(kind), result).Inc()
	r.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}
