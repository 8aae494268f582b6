// Package metrics expone contadores Prometheus del flujo de alta y verificación.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder es la interfaz que usan los servicios y el middleware HTTP.
type Recorder interface {
	RecordCodeSent()
	RecordCodeSendFailure()
	RecordVerification(ok bool)
	RecordAccountCreated(role string)
	RecordSignIn(ok bool)
	RecordHTTPStatus(statusCode int)
}

// Collector implementa Recorder sobre contadores Prometheus.
type Collector struct {
	codesSent     prometheus.Counter
	codesFailed   prometheus.Counter
	verifications *prometheus.CounterVec
	accounts      *prometheus.CounterVec
	signIns       *prometheus.CounterVec
	httpStatus    *prometheus.CounterVec
}

// NewCollector crea el Collector y registra sus métricas en reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		codesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wonnda_verification_codes_sent_total",
			Help: "Verification codes emailed successfully.",
		}),
		codesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wonnda_verification_codes_failed_total",
			Help: "Verification codes whose email delivery failed.",
		}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wonnda_email_verifications_total",
			Help: "Email code verification attempts by result.",
		}, []string{"result"}),
		accounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wonnda_accounts_created_total",
			Help: "Accounts created by role.",
		}, []string{"role"}),
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wonnda_sign_ins_total",
			Help: "Credential sign-in attempts by result.",
		}, []string{"result"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wonnda_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.codesSent,
		c.codesFailed,
		c.verifications,
		c.accounts,
		c.signIns,
		c.httpStatus,
	)
	return c
}

func (c *Collector) RecordCodeSent() {
	c.codesSent.Inc()
}

func (c *Collector) RecordCodeSendFailure() {
	c.codesFailed.Inc()
}

func (c *Collector) RecordVerification(ok bool) {
	c.verifications.WithLabelValues(result(ok)).Inc()
}

func (c *Collector) RecordAccountCreated(role string) {
	c.accounts.WithLabelValues(role).Inc()
}

func (c *Collector) RecordSignIn(ok bool) {
	c.signIns.WithLabelValues(result(ok)).Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

// Handler devuelve el handler de scrape para gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop descarta todas las mediciones. Útil en tests y cuando METRICS_ENABLED=false.
type Nop struct{}

func (Nop) RecordCodeSent()             {}
func (Nop) RecordCodeSendFailure()      {}
func (Nop) RecordVerification(bool)     {}
func (Nop) RecordAccountCreated(string) {}
func (Nop) RecordSignIn(bool)           {}
func (Nop) RecordHTTPStatus(int)        {}
