// internal/lead/validation.go
package lead

import (
	"regexp"
	"strings"

	stderrors "leadgen-backend/internal/common/errors"
)

// MinMonthlyIncome is the qualifying floor in currency units.
const MinMonthlyIncome = 25000

// Predefined patterns
var (
	panRegex    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]{1}$`)
	mobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// NewLead carries the raw submission fields.
type NewLead struct {
	PANNumber     string  `json:"panNumber"`
	MobileNumber  string  `json:"mobileNumber"`
	MonthlyIncome float64 `json:"monthlyIncome"`
	LoanType      string  `json:"loanType"`
	ConsentGiven  bool    `json:"consentGiven"`
}

// Normalize trims whitespace and uppercases the PAN.
func (n *NewLead) Normalize() {
	n.PANNumber = strings.ToUpper(strings.TrimSpace(n.PANNumber))
	n.MobileNumber = strings.TrimSpace(n.MobileNumber)
	n.LoanType = strings.ToLower(strings.TrimSpace(n.LoanType))
}

// Validate checks every field and returns the full list of violations.
func (n *NewLead) Validate() []stderrors.FieldError {
	var fieldErrors []stderrors.FieldError

	if n.PANNumber == "" {
		fieldErrors = append(fieldErrors, stderrors.FieldError{
			Field:   "panNumber",
			Code:    "MISSING_REQUIRED",
			Message: "PAN number is required",
		})
	} else if !panRegex.MatchString(n.PANNumber) {
		fieldErrors = append(fieldErrors, stderrors.FieldError{
			Field:   "panNumber",
			Code:    "INVALID_FORMAT",
			Message: "PAN must be 5 letters, 4 digits and 1 letter",
		})
	}

	if n.MobileNumber == "" {
		fieldErrors = append(fieldErrors, stderrors.FieldError{
			Field:   "mobileNumber",
			Code:    "MISSING_REQUIRED",
			Message: "Mobile number is required",
		})
	} else if !mobileRegex.MatchString(n.MobileNumber) {
		fieldErrors = append(fieldErrors, stderrors.FieldError{
			Field:   "mobileNumber",
			Code:    "INVALID_FORMAT",
			Message: "Mobile number must be 10 digits starting with 6-9",
		})
	}

	if n.MonthlyIncome < MinMonthlyIncome {
		fieldErrors = append(fieldErrors, stderrors.FieldError{
			Field:   "monthlyIncome",
			Code:    "BELOW_MINIMUM",
			Message: "Monthly income must be at least 25,000",
		})
	}

	if _, ok := ParseLoanType(n.LoanType); !ok {
		fieldErrors = append(fieldErrors, stderrors.FieldError{
			Field:   "loanType",
			Code:    "INVALID_VALUE",
			Message: "Loan type must be one of personal, home, car, business, creditcard",
		})
	}

	if !n.ConsentGiven {
		fieldErrors = append(fieldErrors, stderrors.FieldError{
			Field:   "consentGiven",
			Code:    "CONSENT_REQUIRED",
			Message: "Consent is required to create a lead",
		})
	}

	return fieldErrors
}
