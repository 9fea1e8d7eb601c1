// Package offers holds the bank offer reference catalog. Offers are seeded at
// process start and only grow; there is no delete path.
package offers

import "time"

// BankOffer is one bank's terms for one loan type.
type BankOffer struct {
	ID              string    `json:"id"`
	BankName        string    `json:"bankName"`
	BankCode        string    `json:"bankCode"`
	LoanType        string    `json:"loanType"`
	InterestRate    float64   `json:"interestRate"` // annual percentage
	ProcessingFee   int64     `json:"processingFee"`
	MaxLoanAmount   int64     `json:"maxLoanAmount"`
	MinCreditScore  int       `json:"minCreditScore"`
	TenureMinMonths int       `json:"tenureMin"`
	TenureMaxMonths int       `json:"tenureMax"`
	IsActive        bool      `json:"isActive"`
	LastUpdated     time.Time `json:"lastUpdated"`
}
