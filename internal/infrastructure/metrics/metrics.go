package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas Prometheus de la API. Se registran en el registry por defecto y se
// exponen en /metrics.
var (
	// HTTPRequests total de peticiones por método, ruta y status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ofertas",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total de peticiones HTTP procesadas.",
	}, []string{"method", "path", "status"})

	// HTTPDuration latencia por ruta.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ofertas",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duración de las peticiones HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	// QuotaDenials rechazos por cuota, etiquetados por tipo de cuota y plan.
	QuotaDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ofertas",
		Subsystem: "quota",
		Name:      "denials_total",
		Help:      "Total de operaciones rechazadas por tope de plan.",
	}, []string{"kind", "plan"})
)
