package metrics

import (
	"time"

	"activity-ledger/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "activity_ledger"

type Metrics struct {
	admissions      *prometheus.CounterVec
	admissionTime   prometheus.Histogram
	transitions     *prometheus.CounterVec
	historyRecords  *prometheus.CounterVec
	txRetries       *prometheus.CounterVec
	relayed         *prometheus.CounterVec
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ shared.Metrics = (*Metrics)(nil)

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admissions_total",
			Help:      "Booking admission attempts by result.",
		}, []string{"result"}),
		admissionTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "admission_duration_seconds",
			Help:      "Wall time of booking admission including transaction retries.",
			Buckets:   prometheus.DefBuckets,
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Booking state transitions by operation and result.",
		}, []string{"op", "result"}),
		historyRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_records_total",
			Help:      "History upserts by result.",
		}, []string{"result"}),
		txRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_retries_total",
			Help:      "Transactions retried after serialization failure or deadlock.",
		}, []string{"isolation"}),
		relayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_relayed_total",
			Help:      "Outbox jobs handled by the relay by result.",
		}, []string{"result"}),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.admissions,
		m.admissionTime,
		m.transitions,
		m.historyRecords,
		m.txRetries,
		m.relayed,
		m.requestCount,
		m.requestDuration,
	)
	return m
}

func (m *Metrics) ObserveAdmission(result string, elapsed time.Duration) {
	m.admissions.WithLabelValues(result).Inc()
	m.admissionTime.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveTransition(op, result string) {
	m.transitions.WithLabelValues(op, result).Inc()
}

func (m *Metrics) ObserveHistory(result string) {
	m.historyRecords.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveTxRetry(isolation string) {
	m.txRetries.WithLabelValues(isolation).Inc()
}

func (m *Metrics) ObserveRelay(result string) {
	m.relayed.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	m.requestCount.WithLabelValues(method, route, status).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
