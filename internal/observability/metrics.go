package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

var (
	registerOnce sync.Once

	messagesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "p2pcodec",
			Name:      "messages_decoded_total",
			Help:      "Peer messages decoded, by message name.",
		},
		[]string{"message"},
	)
	decodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "p2pcodec",
			Name:      "decode_errors_total",
			Help:      "Rejected inputs, by error kind.",
		},
		[]string{"kind"},
	)
	messageBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "p2pcodec",
			Name:      "message_bytes_total",
			Help:      "Encoded message bytes read or written.",
		},
		[]string{"direction"},
	)
	pathDepth = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "p2pcodec",
			Name:      "path_depth",
			Help:      "Depth of decoded operation inclusion proofs.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 17),
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(messagesDecoded, decodeErrors, messageBytes, pathDepth)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}

func RecordDecoded(message string) {
	RegisterMetrics()
	messagesDecoded.WithLabelValues(message).Inc()
}

func RecordDecodeError(kind string) {
	RegisterMetrics()
	decodeErrors.WithLabelValues(kind).Inc()
}

func RecordBytes(direction string, n int) {
	RegisterMetrics()
	messageBytes.WithLabelValues(direction).Add(float64(n))
}

func RecordPathDepth(depth int) {
	RegisterMetrics()
	pathDepth.Observe(float64(depth))
}
