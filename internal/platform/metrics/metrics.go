package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RequestDuration        *prometheus.HistogramVec
	DeclarationsSaved      *prometheus.CounterVec
	ClarificationQuestions *prometheus.CounterVec
	EmailsFailed           *prometheus.CounterVec
	AgreementsUploaded     prometheus.Counter
	Logins                 *prometheus.CounterVec
	RateLimited            *prometheus.CounterVec
}

// New creates all metrics and registers them with reg. Tests pass a fresh
// prometheus.NewRegistry so constructors can run more than once.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "supplier_frontend_request_duration_seconds",
			Help:    "Latency of HTTP requests by route pattern, method and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		DeclarationsSaved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_frontend_declarations_saved_total",
			Help: "Declaration sections saved, labelled by the resulting declaration status",
		}, []string{"framework", "status"}),
		ClarificationQuestions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_frontend_clarification_questions_total",
			Help: "Clarification and application questions sent",
		}, []string{"framework", "kind"}),
		EmailsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_frontend_emails_failed_total",
			Help: "Emails that failed to send, by tag",
		}, []string{"tag"}),
		AgreementsUploaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "supplier_frontend_agreements_uploaded_total",
			Help: "Signed framework agreements uploaded",
		}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_frontend_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		RateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_frontend_rate_limited_total",
			Help: "Requests rejected by a rate limiter",
		}, []string{"limiter"}),
	}
}

// ObserveDeclarationSaved counts a saved declaration section.
func (m *Metrics) ObserveDeclarationSaved(framework, status string) {
	if m == nil {
		return
	}
	m.DeclarationsSaved.WithLabelValues(framework, status).Inc()
}

// ObserveClarificationQuestion counts a question email sent for a framework.
func (m *Metrics) ObserveClarificationQuestion(framework, kind string) {
	if m == nil {
		return
	}
	m.ClarificationQuestions.WithLabelValues(framework, kind).Inc()
}

// ObserveEmailFailed counts a failed email by its first tag.
func (m *Metrics) ObserveEmailFailed(tags []string) {
	if m == nil {
		return
	}
	tag := "untagged"
	if len(tags) > 0 {
		tag = tags[0]
	}
	m.EmailsFailed.WithLabelValues(tag).Inc()
}

// IncrementAgreementsUploaded counts an uploaded agreement.
func (m *Metrics) IncrementAgreementsUploaded() {
	if m == nil {
		return
	}
	m.AgreementsUploaded.Inc()
}

// ObserveLogin counts a login attempt outcome ("success", "failure", "locked").
func (m *Metrics) ObserveLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

// ObserveRateLimited counts a request rejected by the named limiter.
func (m *Metrics) ObserveRateLimited(limiter string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(limiter).Inc()
}
