// internal/offers/seed.go
package offers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	stderrors "leadgen-backend/internal/common/errors"
)

// seedSchema validates operator supplied seed files before anything reaches
// the catalog. A bad file is rejected as a whole so the catalog is never
// partially loaded.
const seedSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["bankName", "bankCode", "loanType", "interestRate"],
    "properties": {
      "id":            {"type": "string", "minLength": 1},
      "bankName":      {"type": "string", "minLength": 1},
      "bankCode":      {"type": "string", "minLength": 1},
      "loanType":      {"type": "string", "enum": ["personal", "home", "car", "business", "creditcard"]},
      "interestRate":  {"type": "number", "exclusiveMinimum": 0, "maximum": 100},
      "processingFee": {"type": "integer", "minimum": 0},
      "maxLoanAmount": {"type": "integer", "minimum": 0},
      "minCreditScore": {"type": "integer", "minimum": 300, "maximum": 900},
      "tenureMin":     {"type": "integer", "minimum": 1},
      "tenureMax":     {"type": "integer", "minimum": 1},
      "isActive":      {"type": "boolean"}
    }
  }
}`

// seedOfferID gives a seed row a stable identity. Reloading the seed on a
// process restart must not duplicate rows in a persistent catalog, so the id
// is a function of the row, never a fresh UUID.
func seedOfferID(bankCode, loanType string) string {
	return fmt.Sprintf("seed-%s-%s", strings.ToLower(bankCode), loanType)
}

// DefaultOffers returns the built-in offer table. Interest rates are the
// banks' advertised annual percentages for salaried applicants.
func DefaultOffers() []BankOffer {
	table := []BankOffer{
		// Personal loans.
		{BankName: "HDFC Bank", BankCode: "HDFC", LoanType: "personal", InterestRate: 10.50, ProcessingFee: 0, MaxLoanAmount: 4000000, MinCreditScore: 700, TenureMinMonths: 12, TenureMaxMonths: 60, IsActive: true},
		{BankName: "ICICI Bank", BankCode: "ICICI", LoanType: "personal", InterestRate: 10.75, ProcessingFee: 0, MaxLoanAmount: 5000000, MinCreditScore: 650, TenureMinMonths: 12, TenureMaxMonths: 60, IsActive: true},
		{BankName: "State Bank of India", BankCode: "SBI", LoanType: "personal", InterestRate: 9.95, ProcessingFee: 999, MaxLoanAmount: 3000000, MinCreditScore: 700, TenureMinMonths: 12, TenureMaxMonths: 84, IsActive: true},
		{BankName: "Axis Bank", BankCode: "AXIS", LoanType: "personal", InterestRate: 11.25, ProcessingFee: 0, MaxLoanAmount: 4000000, MinCreditScore: 650, TenureMinMonths: 12, TenureMaxMonths: 60, IsActive: true},
		{BankName: "Kotak Mahindra Bank", BankCode: "KOTAK", LoanType: "personal", InterestRate: 10.99, ProcessingFee: 999, MaxLoanAmount: 3000000, MinCreditScore: 700, TenureMinMonths: 12, TenureMaxMonths: 60, IsActive: true},
		{BankName: "Yes Bank", BankCode: "YES", LoanType: "personal", InterestRate: 11.50, ProcessingFee: 2999, MaxLoanAmount: 2500000, MinCreditScore: 650, TenureMinMonths: 12, TenureMaxMonths: 60, IsActive: true},
		{BankName: "IDBI Bank", BankCode: "IDBI", LoanType: "personal", InterestRate: 10.25, ProcessingFee: 1499, MaxLoanAmount: 2000000, MinCreditScore: 700, TenureMinMonths: 12, TenureMaxMonths: 60, IsActive: true},
		{BankName: "Union Bank of India", BankCode: "UNION", LoanType: "personal", InterestRate: 9.75, ProcessingFee: 1999, MaxLoanAmount: 2500000, MinCreditScore: 650, TenureMinMonths: 12, TenureMaxMonths: 72, IsActive: true},
		{BankName: "Bank of Baroda", BankCode: "BOB", LoanType: "personal", InterestRate: 9.85, ProcessingFee: 1499, MaxLoanAmount: 3000000, MinCreditScore: 700, TenureMinMonths: 12, TenureMaxMonths: 60, IsActive: true},
		{BankName: "Punjab National Bank", BankCode: "PNB", LoanType: "personal", InterestRate: 9.50, ProcessingFee: 999, MaxLoanAmount: 2000000, MinCreditScore: 700, TenureMinMonths: 12, TenureMaxMonths: 72, IsActive: true},

		// Home loans.
		{BankName: "HDFC Bank", BankCode: "HDFC", LoanType: "home", InterestRate: 8.50, ProcessingFee: 0, MaxLoanAmount: 50000000, MinCreditScore: 700, TenureMinMonths: 60, TenureMaxMonths: 360, IsActive: true},
		{BankName: "ICICI Bank", BankCode: "ICICI", LoanType: "home", InterestRate: 8.75, ProcessingFee: 0, MaxLoanAmount: 75000000, MinCreditScore: 650, TenureMinMonths: 60, TenureMaxMonths: 360, IsActive: true},
		{BankName: "State Bank of India", BankCode: "SBI", LoanType: "home", InterestRate: 8.25, ProcessingFee: 10000, MaxLoanAmount: 100000000, MinCreditScore: 700, TenureMinMonths: 60, TenureMaxMonths: 360, IsActive: true},
		{BankName: "Axis Bank", BankCode: "AXIS", LoanType: "home", InterestRate: 8.95, ProcessingFee: 0, MaxLoanAmount: 50000000, MinCreditScore: 650, TenureMinMonths: 60, TenureMaxMonths: 360, IsActive: true},
		{BankName: "Kotak Mahindra Bank", BankCode: "KOTAK", LoanType: "home", InterestRate: 8.65, ProcessingFee: 5000, MaxLoanAmount: 30000000, MinCreditScore: 700, TenureMinMonths: 60, TenureMaxMonths: 360, IsActive: true},

		// Car loans.
		{BankName: "HDFC Bank", BankCode: "HDFC", LoanType: "car", InterestRate: 8.75, ProcessingFee: 0, MaxLoanAmount: 2000000, MinCreditScore: 650, TenureMinMonths: 12, TenureMaxMonths: 84, IsActive: true},
		{BankName: "ICICI Bank", BankCode: "ICICI", LoanType: "car", InterestRate: 9.00, ProcessingFee: 0, MaxLoanAmount: 2500000, MinCreditScore: 600, TenureMinMonths: 12, TenureMaxMonths: 84, IsActive: true},
		{BankName: "State Bank of India", BankCode: "SBI", LoanType: "car", InterestRate: 8.50, ProcessingFee: 2999, MaxLoanAmount: 1500000, MinCreditScore: 650, TenureMinMonths: 12, TenureMaxMonths: 84, IsActive: true},
		{BankName: "Axis Bank", BankCode: "AXIS", LoanType: "car", InterestRate: 9.25, ProcessingFee: 0, MaxLoanAmount: 2000000, MinCreditScore: 600, TenureMinMonths: 12, TenureMaxMonths: 84, IsActive: true},

		// Business loans.
		{BankName: "HDFC Bank", BankCode: "HDFC", LoanType: "business", InterestRate: 11.50, ProcessingFee: 0, MaxLoanAmount: 10000000, MinCreditScore: 700, TenureMinMonths: 12, TenureMaxMonths: 84, IsActive: true},
		{BankName: "ICICI Bank", BankCode: "ICICI", LoanType: "business", InterestRate: 12.00, ProcessingFee: 0, MaxLoanAmount: 15000000, MinCreditScore: 650, TenureMinMonths: 12, TenureMaxMonths: 84, IsActive: true},
		{BankName: "State Bank of India", BankCode: "SBI", LoanType: "business", InterestRate: 10.75, ProcessingFee: 5000, MaxLoanAmount: 20000000, MinCreditScore: 700, TenureMinMonths: 12, TenureMaxMonths: 120, IsActive: true},
	}
	for i := range table {
		table[i].ID = seedOfferID(table[i].BankCode, table[i].LoanType)
	}
	return table
}

// Seed loads the built-in offers into the catalog.
func Seed(ctx context.Context, catalog Catalog) error {
	return catalog.BulkLoad(ctx, DefaultOffers())
}

// LoadSeedFile reads an operator supplied JSON seed file, validates it and
// loads it into the catalog. The file either loads completely or not at all.
func LoadSeedFile(ctx context.Context, catalog Catalog, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return stderrors.NewOfferSeedInvalidError(fmt.Sprintf("read seed file %s: %v", path, err))
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(seedSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return stderrors.NewOfferSeedInvalidError(fmt.Sprintf("seed file %s is not valid JSON: %v", path, err))
	}
	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return stderrors.NewOfferSeedInvalidError(fmt.Sprintf("seed file %s rejected: %s", path, strings.Join(reasons, "; ")))
	}

	var loaded []BankOffer
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return stderrors.NewOfferSeedInvalidError(fmt.Sprintf("decode seed file %s: %v", path, err))
	}
	// Rows without an explicit id get one derived from their position, so
	// loading the same file on every start stays idempotent.
	for i := range loaded {
		if loaded[i].ID == "" {
			loaded[i].ID = fmt.Sprintf("%s-%03d", seedOfferID(loaded[i].BankCode, loaded[i].LoanType), i)
		}
	}
	return catalog.BulkLoad(ctx, loaded)
}
