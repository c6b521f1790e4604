package metrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/goldfolio-api/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ReceiptCreated("ARS")
	m.ReceiptCreated("ARS")
	m.DuplicateRejected("Banco Nación")
	m.LoginFailed()
	m.ClientCreated()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReceiptsCreated.WithLabelValues("ARS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DuplicatesRejected.WithLabelValues("Banco Nación")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClientsCreated))
}

func TestMiddleware_CountsByRoute(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/clients/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/clients/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/clients/:id", "200")))
}
