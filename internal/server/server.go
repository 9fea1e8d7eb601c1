// Package server is the HTTP presentation layer. It translates fiber
// requests into service calls and service errors into status codes; no
// business rules live here.
package server

import (
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leadgen-backend/internal/common/logger"
	"leadgen-backend/internal/common/metrics"
	"leadgen-backend/internal/common/observability"
	"leadgen-backend/internal/emi"
	"leadgen-backend/internal/lead"
	"leadgen-backend/internal/notify"
	"leadgen-backend/internal/offers"
)

// Server wires the services into an HTTP surface.
type Server struct {
	leads   *lead.Service
	catalog offers.Catalog
	emi     *emi.Service
	sharer  notify.WhatsAppSharer
	obs     *observability.Observability
	log     logger.Logger
}

func New(leads *lead.Service, catalog offers.Catalog, emiSvc *emi.Service, sharer notify.WhatsAppSharer, obs *observability.Observability, log logger.Logger) *Server {
	return &Server{
		leads:   leads,
		catalog: catalog,
		emi:     emiSvc,
		sharer:  sharer,
		obs:     obs,
		log:     log.WithFields(map[string]interface{}{"component": "http-server"}),
	}
}

// Router builds the fiber application with all routes registered.
func (s *Server) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(s.instrument)

	app.Get("/health", s.handleHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Post("/leads", s.handleCreateLead)
	api.Post("/leads/verify-otp", s.handleVerifyOTP)
	api.Post("/leads/:leadId/resend-otp", s.handleResendOTP)
	api.Get("/leads/:leadId", s.handleGetLead)
	api.Get("/leads/:leadId/emi-history", s.handleEMIHistory)
	api.Get("/bank-offers/:loanType", s.handleBankOffers)
	api.Post("/calculate-emi", s.handleCalculateEMI)
	api.Post("/emi-schedule", s.handleEMISchedule)
	api.Post("/share-whatsapp", s.handleShareWhatsApp)

	return app
}

// instrument records per-route latency for Prometheus and OTel.
func (s *Server) instrument(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	route := c.Route().Path
	status := statusLabel(c, err)
	elapsed := time.Since(start)

	metrics.RequestDuration.WithLabelValues(route, status).Observe(elapsed.Seconds())
	if s.obs != nil {
		s.obs.RecordOperation(c.UserContext(), route, status)
		s.obs.RecordDuration(c.UserContext(), route, elapsed, status)
	}
	return err
}

func statusLabel(c *fiber.Ctx, err error) string {
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return statusText(fe.Code)
		}
		return "5xx"
	}
	return statusText(c.Response().StatusCode())
}

func statusText(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}
