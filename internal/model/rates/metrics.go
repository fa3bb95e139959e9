package rates

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"max.ks1230/converter-bot/internal/model/customerr"
)

var histogramFetchTime = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "converter",
		Subsystem: "rates",
		Name:      "histogram_fetch_time_seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	},
	[]string{"status"},
)

var counterStaleResults = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "converter",
		Subsystem: "rates",
		Name:      "stale_results_total",
	},
)

func observeFetch(elapsed time.Duration, err error) {
	histogramFetchTime.
		WithLabelValues(fetchStatus(err)).
		Observe(elapsed.Seconds())
}

func fetchStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, customerr.ErrWrongStatusCode):
		return "wrong_status_code"
	case errors.Is(err, customerr.ErrDecoding):
		return "decoding_error"
	default:
		return "no_data"
	}
}
