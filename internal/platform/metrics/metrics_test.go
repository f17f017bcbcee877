package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveDeclarationSaved("g-cloud-7", "started")
	m.ObserveDeclarationSaved("g-cloud-7", "started")
	m.ObserveDeclarationSaved("g-cloud-7", "complete")
	m.ObserveEmailFailed(nil)
	m.ObserveEmailFailed([]string{"clarification-question"})
	m.IncrementAgreementsUploaded()
	m.ObserveLogin("success")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.DeclarationsSaved.WithLabelValues("g-cloud-7", "started")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DeclarationsSaved.WithLabelValues("g-cloud-7", "complete")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EmailsFailed.WithLabelValues("untagged")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EmailsFailed.WithLabelValues("clarification-question")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AgreementsUploaded))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Logins.WithLabelValues("success")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveDeclarationSaved("g-cloud-7", "complete")
		m.ObserveClarificationQuestion("g-cloud-7", "clarification")
		m.ObserveEmailFailed(nil)
		m.IncrementAgreementsUploaded()
		m.ObserveLogin("failure")
	})
}
