// Package finmath holds the pure loan arithmetic. Everything here is a
// function of its inputs and safe for concurrent use.
package finmath

import (
	"fmt"
	"math"

	stderrors "leadgen-backend/internal/common/errors"
)

// Breakdown is the aggregate result of an EMI computation. Amounts are in
// whole currency units.
type Breakdown struct {
	MonthlyEMI    int64 `json:"monthlyEmi"`
	TotalAmount   int64 `json:"totalAmount"`
	TotalInterest int64 `json:"totalInterest"`
}

// ComputeEMI computes the equated monthly installment for a loan of the given
// principal at an annual percentage rate over tenureMonths.
//
//	r   = annualRatePercent / 1200
//	emi = P * r * (1+r)^n / ((1+r)^n - 1)
//
// MonthlyEMI and TotalAmount are rounded half away from zero; the caller is
// expected to bound the inputs (rate in (0,50], tenure in [1,360]) upstream,
// this function only rejects the degenerate cases that would divide by zero.
func ComputeEMI(principal, annualRatePercent float64, tenureMonths int) (Breakdown, error) {
	if principal <= 0 {
		return Breakdown{}, stderrors.NewInvalidEMIInputError(fmt.Sprintf("principal must be positive, got %v", principal))
	}
	if annualRatePercent <= 0 {
		return Breakdown{}, stderrors.NewInvalidEMIInputError(fmt.Sprintf("annual rate must be positive, got %v", annualRatePercent))
	}
	if tenureMonths <= 0 {
		return Breakdown{}, stderrors.NewInvalidEMIInputError(fmt.Sprintf("tenure must be at least one month, got %d", tenureMonths))
	}

	monthlyRate := annualRatePercent / 1200
	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	emi := principal * monthlyRate * factor / (factor - 1)

	totalAmount := int64(math.Round(emi * float64(tenureMonths)))
	return Breakdown{
		MonthlyEMI:    int64(math.Round(emi)),
		TotalAmount:   totalAmount,
		TotalInterest: totalAmount - int64(math.Round(principal)),
	}, nil
}

// Installment is one row of an amortization schedule.
type Installment struct {
	Month            int     `json:"month"`
	Payment          int64   `json:"payment"`
	PrincipalPaid    float64 `json:"principalPaid"`
	InterestPaid     float64 `json:"interestPaid"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// Schedule expands the EMI into a month-by-month amortization table. The
// final row absorbs rounding drift so the remaining balance lands on zero.
func Schedule(principal, annualRatePercent float64, tenureMonths int) ([]Installment, error) {
	breakdown, err := ComputeEMI(principal, annualRatePercent, tenureMonths)
	if err != nil {
		return nil, err
	}

	monthlyRate := annualRatePercent / 1200
	emi := float64(breakdown.MonthlyEMI)
	balance := principal

	rows := make([]Installment, 0, tenureMonths)
	for month := 1; month <= tenureMonths; month++ {
		interest := balance * monthlyRate
		principalPart := emi - interest
		if month == tenureMonths {
			principalPart = balance
		}
		balance -= principalPart
		if balance < 0 {
			balance = 0
		}
		rows = append(rows, Installment{
			Month:            month,
			Payment:          breakdown.MonthlyEMI,
			PrincipalPaid:    principalPart,
			InterestPaid:     interest,
			RemainingBalance: balance,
		})
	}
	return rows, nil
}
