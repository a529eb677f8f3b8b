package shared

//go:generate mockgen -source=metrics.go -destination=../../mock/sharedmock/metrics.go -package=sharedmock

import "time"

// Metrics receives booking and store events. Implementations must be safe
// for concurrent use.
type Metrics interface {
	ObserveAdmission(result string, elapsed time.Duration)
	ObserveTransition(op, result string)
	ObserveHistory(result string)
	ObserveTxRetry(isolation string)
	ObserveRelay(result string)
}

type NopMetrics struct{}

func (NopMetrics) ObserveAdmission(string, time.Duration) {}
func (NopMetrics) ObserveTransition(string, string)       {}
func (NopMetrics) ObserveHistory(string)                  {}
func (NopMetrics) ObserveTxRetry(string)                  {}
func (NopMetrics) ObserveRelay(string)                    {}
