package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_scored_total",
			Help: "Total number of prospects scored, by priority tier",
		},
		[]string{"priority"},
	)

	approvalsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "approvals_registered_total",
			Help: "Total number of pending approvals registered",
		},
	)

	decisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_decisions_total",
			Help: "Total number of approval decisions received",
		},
		[]string{"decision"},
	)

	automationUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "automation_updates_total",
			Help: "Automation status updates received on the webhook",
		},
		[]string{"automation", "status"},
	)

	crmEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_events_total",
			Help: "CRM webhook events received, by subscription type",
		},
		[]string{"subscription_type"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadScored(priority string) {
	leadsScored.WithLabelValues(priority).Inc()
}

func RecordApprovalRegistered() {
	approvalsRegistered.Inc()
}

func RecordDecision(decision string) {
	decisionsTotal.WithLabelValues(decision).Inc()
}

func RecordAutomationUpdate(automation, status string) {
	automationUpdates.WithLabelValues(automation, status).Inc()
}

func RecordCRMEvent(subscriptionType string) {
	crmEvents.WithLabelValues(subscriptionType).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
