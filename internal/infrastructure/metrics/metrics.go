// Package metrics expone las métricas Prometheus del servicio: peticiones HTTP,
// operaciones del panel de administración y borrados en cascada.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/catalogo-servicios/internal/application/admin"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "catalogo_http_requests_total", Help: "Peticiones HTTP por ruta, método y estado"},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "catalogo_http_request_duration_seconds", Help: "Duración de las peticiones HTTP", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
	AdminOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "catalogo_admin_operations_total", Help: "Confirmaciones del panel por tipo y resultado"},
		[]string{"kind", "outcome"},
	)
	AdminOperationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "catalogo_admin_operation_duration_seconds", Help: "Duración de las confirmaciones del panel", Buckets: prometheus.DefBuckets},
		[]string{"kind"},
	)
	CascadeServicios = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "catalogo_cascade_servicios_deleted_total", Help: "Servicios borrados por cascadas de categoría"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, AdminOperations, AdminOperationLatency, CascadeServicios)
}

// Recorder implementa admin.Recorder sobre los contadores globales.
type Recorder struct{}

var _ admin.Recorder = Recorder{}

func (Recorder) ObserveOperation(kind, outcome string, elapsed time.Duration) {
	AdminOperations.WithLabelValues(kind, outcome).Inc()
	AdminOperationLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (Recorder) AddCascadeServicios(n int) {
	if n > 0 {
		CascadeServicios.Add(float64(n))
	}
}

// Handler middleware que registra conteo y latencia por ruta.
func Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		path := c.Route().Path
		if path == "" {
			path = "sin_ruta"
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		HTTPLatency.WithLabelValues(path, c.Method()).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(path, c.Method(), strconv.Itoa(status)).Inc()
		return err
	}
}

// Exposer sirve /metrics con el handler estándar de Prometheus.
func Exposer() fiber.Handler { return adaptor.HTTPHandler(promhttp.Handler()) }
