// Package codecmetrics holds the Prometheus instrumentation for the encode
// and decode paths.
package codecmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EncodedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bimotype_encoded_messages_total",
		Help: "Messages encoded into topological packets.",
	})
	EncodedChars = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bimotype_encoded_chars_total",
		Help: "Characters mapped to topological states.",
	})
	DecodedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bimotype_decoded_messages_total",
		Help: "Packets decoded, including degraded reconstructions.",
	})
	MalformedPackets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bimotype_malformed_packets_total",
		Help: "Packets rejected for wire-format violations.",
	})
	DecodeFidelity = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bimotype_decode_fidelity",
		Help:    "Average fidelity reported per decode.",
		Buckets: prometheus.LinearBuckets(0, 0.05, 21),
	})
)
