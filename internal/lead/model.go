// Package lead implements the lead lifecycle: submission, OTP issuance, OTP
// verification and credit scoring. A lead is owned exclusively by this
// package; callers only ever see the public projection.
package lead

import "time"

// LoanType enumerates the products a lead can apply for.
type LoanType string

const (
	LoanTypePersonal   LoanType = "personal"
	LoanTypeHome       LoanType = "home"
	LoanTypeCar        LoanType = "car"
	LoanTypeBusiness   LoanType = "business"
	LoanTypeCreditCard LoanType = "creditcard"
)

// ParseLoanType maps a raw string onto the enumeration.
func ParseLoanType(raw string) (LoanType, bool) {
	switch LoanType(raw) {
	case LoanTypePersonal, LoanTypeHome, LoanTypeCar, LoanTypeBusiness, LoanTypeCreditCard:
		return LoanType(raw), true
	default:
		return "", false
	}
}

// Lead is the full record, including the OTP fields. OTPCode and OTPExpiry
// are always both nil or both set; CreditScore is set exactly when
// IsOTPVerified is true, and once verified a lead never reverts.
type Lead struct {
	ID            string     `json:"id"`
	PANNumber     string     `json:"panNumber"`
	MobileNumber  string     `json:"mobileNumber"`
	MonthlyIncome float64    `json:"monthlyIncome"`
	LoanType      LoanType   `json:"loanType"`
	ConsentGiven  bool       `json:"consentGiven"`
	OTPCode       *string    `json:"otpCode,omitempty"`
	OTPExpiry     *time.Time `json:"otpExpiry,omitempty"`
	IsOTPVerified bool       `json:"isOtpVerified"`
	CreditScore   *int       `json:"creditScore,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Public is the projection handed to callers outside this package. It never
// carries the OTP code or its expiry.
type Public struct {
	ID            string    `json:"id"`
	PANNumber     string    `json:"panNumber"`
	MobileNumber  string    `json:"mobileNumber"`
	MonthlyIncome float64   `json:"monthlyIncome"`
	LoanType      LoanType  `json:"loanType"`
	ConsentGiven  bool      `json:"consentGiven"`
	IsOTPVerified bool      `json:"isOtpVerified"`
	CreditScore   *int      `json:"creditScore,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Public returns the safe projection of the lead.
func (l *Lead) Public() *Public {
	var score *int
	if l.CreditScore != nil {
		v := *l.CreditScore
		score = &v
	}
	return &Public{
		ID:            l.ID,
		PANNumber:     l.PANNumber,
		MobileNumber:  l.MobileNumber,
		MonthlyIncome: l.MonthlyIncome,
		LoanType:      l.LoanType,
		ConsentGiven:  l.ConsentGiven,
		IsOTPVerified: l.IsOTPVerified,
		CreditScore:   score,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// clone deep-copies a lead so store callers never share pointers.
func (l *Lead) clone() *Lead {
	out := *l
	if l.OTPCode != nil {
		code := *l.OTPCode
		out.OTPCode = &code
	}
	if l.OTPExpiry != nil {
		expiry := *l.OTPExpiry
		out.OTPExpiry = &expiry
	}
	if l.CreditScore != nil {
		score := *l.CreditScore
		out.CreditScore = &score
	}
	return &out
}
