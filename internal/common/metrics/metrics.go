// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LeadsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leadgen_leads_created_total",
			Help: "Total number of leads created",
		},
	)

	OTPIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgen_otp_issued_total",
			Help: "Total number of OTP codes issued",
		},
		[]string{"reason"}, // "create" or "resend"
	)

	OTPVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgen_otp_verifications_total",
			Help: "Total number of OTP verification attempts",
		},
		[]string{"result"}, // "verified", "invalid", "expired", "not_found", "rate_limited"
	)

	EMICalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgen_emi_calculations_total",
			Help: "Total number of EMI calculations",
		},
		[]string{"persisted"}, // "yes" when recorded against a lead
	)

	OfferQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgen_offer_queries_total",
			Help: "Total number of bank offer catalog queries",
		},
		[]string{"loan_type"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "leadgen_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route", "status"},
	)
)
