// Package metrics colectores Prometheus de la consola. Se registran una sola vez
// en el registry por defecto, que es el que expone /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stock_console"

var (
	// BackendRequests llamadas al backend por recurso y resultado (ok, unauthorized, network, server, rejected).
	BackendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Llamadas al backend de almacén.",
	}, []string{"resource", "method", "outcome"})

	BackendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duración de las llamadas al backend.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"resource"})

	// Submissions envíos del formulario de operación (ok, invalid, failed, busy).
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_submissions_total",
		Help:      "Envíos del formulario de operación.",
	}, []string{"operation_type", "outcome"})

	// Searches búsquedas del selector (skipped, issued, applied, stale).
	Searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_searches_total",
		Help:      "Búsquedas del selector de productos.",
	}, []string{"outcome"})

	ViewRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_refreshes_total",
		Help:      "Recargas de vistas dependientes tras una operación.",
	}, []string{"view", "outcome"})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Notificaciones emitidas al operador.",
	}, []string{"level"})

	SessionEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Eventos de sesión (login, login_failed, logout, teardown, restore).",
	}, []string{"event"})
)
