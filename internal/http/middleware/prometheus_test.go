package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMetricsApp wires the middleware on a fresh registry so tests do not
// collide on registration.
func newMetricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	return app, m, reg
}

func TestPrometheusMiddleware(t *testing.T) {
	app, m, _ := newMetricsApp(t)

	app.Get("/api/templates", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Delete("/api/templates/:name", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Post("/api/generate", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad request")
	})

	for _, r := range []struct{ method, path string }{
		{"GET", "/api/templates"},
		{"GET", "/api/templates"},
		{"DELETE", "/api/templates/co_form.xlsx"},
		{"POST", "/api/generate"},
	} {
		_, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
		require.NoError(t, err)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/api/templates", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("DELETE", "/api/templates/:name", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("POST", "/api/generate", "400")))
}

func TestPrometheusMiddleware_ExcludeMetrics(t *testing.T) {
	app, _, reg := newMetricsApp(t)
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		assert.Empty(t, mf.GetMetric(), mf.GetName())
	}
}

func TestPrometheusMiddleware_PathPattern(t *testing.T) {
	app, m, _ := newMetricsApp(t)
	app.Get("/api/invoices/:number", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, n := range []string{"0098765432", "A1234567"} {
		_, err := app.Test(httptest.NewRequest("GET", "/api/invoices/"+n, nil))
		require.NoError(t, err)
	}

	// one series per route, not per invoice number
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/api/invoices/:number", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
