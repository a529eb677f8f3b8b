//go:build unit

package metrics_test

import (
	"testing"
	"time"

	"activity-ledger/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metricLoop:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metricLoop
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveAdmission("success", 3*time.Millisecond)
	m.ObserveAdmission("success", 4*time.Millisecond)
	m.ObserveAdmission("activity_full", time.Millisecond)
	m.ObserveTransition("cancel", "success")
	m.ObserveTxRetry("read committed")
	m.ObserveRelay("sent")

	assert.Equal(t, 2.0, counterValue(t, reg, "activity_ledger_admissions_total", map[string]string{"result": "success"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "activity_ledger_admissions_total", map[string]string{"result": "activity_full"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "activity_ledger_transitions_total", map[string]string{"op": "cancel", "result": "success"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "activity_ledger_tx_retries_total", map[string]string{"isolation": "read committed"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "activity_ledger_outbox_relayed_total", map[string]string{"result": "sent"}))
}

func TestNew_PanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)

	assert.Panics(t, func() { metrics.New(reg) })
}
