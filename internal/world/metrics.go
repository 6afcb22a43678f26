package world

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Метрики жизненного цикла чанков. Регистрируются один раз на процесс
// в глобальном регистре Prometheus; все WorldManager'ы пишут в один набор.
var (
	metricChunksLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "world",
		Name:      "chunks_loaded",
		Help:      "Количество загруженных в данный момент чанков.",
	})

	metricChunksGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "world",
		Name:      "chunks_generated_total",
		Help:      "Общее число сгенерированных чанков.",
	})

	metricChunksEvicted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "world",
		Name:      "chunks_evicted_total",
		Help:      "Общее число выгруженных чанков.",
	})

	metricGenCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "world",
		Name:      "generation_cancelled_total",
		Help:      "Генераций, отменённых выгрузкой чанка до публикации.",
	})

	metricGenDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "world",
		Name:      "generation_duration_seconds",
		Help:      "Длительность генерации одного чанка.",
		Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})
)

func init() {
	prometheus.MustRegister(
		metricChunksLoaded,
		metricChunksGenerated,
		metricChunksEvicted,
		metricGenCancelled,
		metricGenDuration,
	)
}
