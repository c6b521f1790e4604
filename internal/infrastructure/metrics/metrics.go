// Package metrics expone contadores Prometheus del negocio y de la capa HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/goldfolio-api/internal/application/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var _ ports.Recorder = (*Metrics)(nil)

// Metrics contadores del dominio y del servidor HTTP.
type Metrics struct {
	ReceiptsCreated     *prometheus.CounterVec
	DuplicatesRejected  *prometheus.CounterVec
	LoginFailures       prometheus.Counter
	ClientsCreated      prometheus.Counter
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registra las métricas en reg (nil = registry por defecto).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		ReceiptsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "goldfolio_deposit_receipts_created_total",
			Help: "Boletas de depósito registradas por moneda",
		}, []string{"currency"}),
		DuplicatesRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "goldfolio_duplicate_operations_rejected_total",
			Help: "Altas rechazadas por número de operación repetido",
		}, []string{"bank"}),
		LoginFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "goldfolio_login_failures_total",
			Help: "Intentos de login fallidos",
		}),
		ClientsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "goldfolio_clients_created_total",
			Help: "Clientes dados de alta",
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "goldfolio_http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "goldfolio_http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) ReceiptCreated(currency string) { m.ReceiptsCreated.WithLabelValues(currency).Inc() }
func (m *Metrics) DuplicateRejected(bank string)  { m.DuplicatesRejected.WithLabelValues(bank).Inc() }
func (m *Metrics) LoginFailed()                   { m.LoginFailures.Inc() }
func (m *Metrics) ClientCreated()                 { m.ClientsCreated.Inc() }

// Middleware cuenta requests por ruta registrada (no por path crudo, para acotar la cardinalidad).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
