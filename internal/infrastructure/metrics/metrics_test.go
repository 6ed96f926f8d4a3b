package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-servicios/internal/infrastructure/metrics"
)

func TestRecorder(t *testing.T) {
	before := testutil.ToFloat64(metrics.AdminOperations.WithLabelValues("delete_servicio", "backend"))
	cascade := testutil.ToFloat64(metrics.CascadeServicios)

	r := metrics.Recorder{}
	r.ObserveOperation("delete_servicio", "backend", 20*time.Millisecond)
	r.AddCascadeServicios(3)
	r.AddCascadeServicios(0)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AdminOperations.WithLabelValues("delete_servicio", "backend")))
	assert.Equal(t, cascade+3, testutil.ToFloat64(metrics.CascadeServicios))
}

func TestHandlerYExposer(t *testing.T) {
	app := fiber.New()
	app.Use(metrics.Handler())
	app.Get("/ping/:id", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", metrics.Exposer())

	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("/ping/:id", "GET", "200"))
	resp, err := app.Test(httptest.NewRequest("GET", "/ping/7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("/ping/:id", "GET", "200")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "catalogo_http_requests_total")
}
