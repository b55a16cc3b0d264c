package monitor

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	InputTime   = "time"
	InputNumber = "number"
	InputString = "string"
	InputNil    = "nil"
	InputOther  = "other"
)

var (
	formatTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "datelabel",
			Name:      "format_total",
			Help:      "Date labels rendered, by input kind and result.",
		},
		[]string{"input", "result"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "datelabel",
			Name:      "request_duration_seconds",
			Help:      "Duration of label requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	filtersRegistered = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "datelabel",
		Name:      "filters_registered",
		Help:      "Number of template filters in the registry.",
	})

	draining = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "datelabel",
		Name:      "draining",
		Help:      "1 while the service is draining, else 0.",
	})
)

func init() {
	prometheus.MustRegister(
		formatTotal,
		requestDuration,
		filtersRegistered,
		draining,
	)
}

// InputKind buckets a date-like value for the input label.
func InputKind(value any) string {
	switch value.(type) {
	case nil:
		return InputNil
	case time.Time, *time.Time:
		return InputTime
	case string:
		return InputString
	case json.Number, float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return InputNumber
	default:
		return InputOther
	}
}

// ObserveFormat counts one rendered label. A non-nil err means the
// invalid placeholder was produced.
func ObserveFormat(input string, err error) {
	result := "ok"
	if err != nil {
		result = "invalid"
	}
	formatTotal.WithLabelValues(input, result).Inc()
}

func ObserveRequest(route string, duration time.Duration) {
	requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func SetFiltersRegistered(n int) {
	filtersRegistered.Set(float64(n))
}

func SetDraining(on bool) {
	if on {
		draining.Set(1)
	} else {
		draining.Set(0)
	}
}

// RegisterMetricsRoute exposes Prometheus metrics at /metrics on the given gin router.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
