package physics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Метрики физического движка. Регистрируются один раз на процесс.
var (
	metricSteps = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "physics",
		Name:      "steps_total",
		Help:      "Общее число тиков физической симуляции.",
	})

	metricCollisions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "physics",
		Name:      "collisions_total",
		Help:      "Число выталкиваний тела из вокселей.",
	})
)

func init() {
	prometheus.MustRegister(metricSteps, metricCollisions)
}
