// Package emi exposes the EMI calculator with optional per-lead history.
package emi

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	stderrors "leadgen-backend/internal/common/errors"
	"leadgen-backend/internal/common/logger"
	"leadgen-backend/internal/common/metrics"
	"leadgen-backend/internal/finmath"
)

// Calculator input bounds. These mirror the limits enforced on the loan
// application form.
const (
	MinLoanAmount = 50000
	MaxLoanAmount = 50000000
	MaxRate       = 50.0
	MaxTenure     = 360
)

// Input is one calculation request. LeadID is optional; when present the
// result is recorded against that lead.
type Input struct {
	LeadID       string  `json:"leadId,omitempty"`
	LoanAmount   float64 `json:"loanAmount"`
	InterestRate float64 `json:"interestRate"`
	TenureMonths int     `json:"tenure"`
}

// Calculation is one immutable history record.
type Calculation struct {
	ID            string    `json:"id"`
	LeadID        string    `json:"leadId"`
	LoanAmount    float64   `json:"loanAmount"`
	InterestRate  float64   `json:"interestRate"`
	TenureMonths  int       `json:"tenure"`
	MonthlyEMI    int64     `json:"monthlyEmi"`
	TotalAmount   int64     `json:"totalAmount"`
	TotalInterest int64     `json:"totalInterest"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Service validates calculator inputs, delegates the arithmetic to finmath
// and keeps a per-lead history of what was computed.
type Service struct {
	store Store
	log   logger.Logger

	now func() time.Time
}

func NewService(store Store, log logger.Logger) *Service {
	return &Service{
		store: store,
		log:   log.WithFields(map[string]interface{}{"component": "emi-service"}),
		now:   time.Now,
	}
}

// Compute bounds-checks the input, runs the calculation and, when the input
// names a lead, appends a history record. The returned Calculation carries an
// ID and CreatedAt only when it was persisted.
func (s *Service) Compute(ctx context.Context, input Input) (Calculation, error) {
	if err := validateInput(input); err != nil {
		return Calculation{}, err
	}

	breakdown, err := finmath.ComputeEMI(input.LoanAmount, input.InterestRate, input.TenureMonths)
	if err != nil {
		return Calculation{}, err
	}

	calc := Calculation{
		LeadID:        input.LeadID,
		LoanAmount:    input.LoanAmount,
		InterestRate:  input.InterestRate,
		TenureMonths:  input.TenureMonths,
		MonthlyEMI:    breakdown.MonthlyEMI,
		TotalAmount:   breakdown.TotalAmount,
		TotalInterest: breakdown.TotalInterest,
	}

	persisted := "no"
	if input.LeadID != "" {
		calc.ID = uuid.NewString()
		calc.CreatedAt = s.now().UTC()
		if err := s.store.Append(ctx, calc); err != nil {
			s.log.WithError(err).Warn("failed to record EMI calculation", map[string]interface{}{
				"lead_id": input.LeadID,
			})
			return Calculation{}, err
		}
		persisted = "yes"
	}
	metrics.EMICalculations.WithLabelValues(persisted).Inc()

	return calc, nil
}

// Schedule returns the month-by-month amortization table for the input.
func (s *Service) Schedule(ctx context.Context, input Input) ([]finmath.Installment, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return finmath.Schedule(input.LoanAmount, input.InterestRate, input.TenureMonths)
}

// History returns the lead's past calculations, newest first.
func (s *Service) History(ctx context.Context, leadID string) ([]Calculation, error) {
	return s.store.ByLead(ctx, leadID)
}

func validateInput(input Input) error {
	if input.LoanAmount < MinLoanAmount || input.LoanAmount > MaxLoanAmount {
		return stderrors.NewInvalidEMIInputError(fmt.Sprintf(
			"loan amount must be between %d and %d, got %v", MinLoanAmount, MaxLoanAmount, input.LoanAmount))
	}
	if input.InterestRate <= 0 || input.InterestRate > MaxRate {
		return stderrors.NewInvalidEMIInputError(fmt.Sprintf(
			"interest rate must be above 0 and at most %v, got %v", MaxRate, input.InterestRate))
	}
	if input.TenureMonths < 1 || input.TenureMonths > MaxTenure {
		return stderrors.NewInvalidEMIInputError(fmt.Sprintf(
			"tenure must be between 1 and %d months, got %d", MaxTenure, input.TenureMonths))
	}
	return nil
}
