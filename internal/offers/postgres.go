// internal/offers/postgres.go
package offers

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	stderrors "leadgen-backend/internal/common/errors"
)

const offersDDL = `
CREATE TABLE IF NOT EXISTS bank_offers (
	seq               BIGSERIAL,
	id                TEXT PRIMARY KEY,
	bank_name         TEXT NOT NULL,
	bank_code         TEXT NOT NULL,
	loan_type         TEXT NOT NULL,
	interest_rate     DOUBLE PRECISION NOT NULL,
	processing_fee    BIGINT NOT NULL DEFAULT 0,
	max_loan_amount   BIGINT NOT NULL DEFAULT 0,
	min_credit_score  INT NOT NULL DEFAULT 0,
	tenure_min_months INT NOT NULL DEFAULT 0,
	tenure_max_months INT NOT NULL DEFAULT 0,
	is_active         BOOLEAN NOT NULL DEFAULT TRUE,
	last_updated      TIMESTAMPTZ NOT NULL
)`

// PostgresCatalog persists the offer table in Postgres. Queries sort in SQL;
// the seq sequence records insertion order so equal rates keep it, matching
// the memory catalog's stable sort.
type PostgresCatalog struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresCatalog(db *sql.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db, now: time.Now}
}

// EnsureSchema creates the offers table when it does not exist.
func (c *PostgresCatalog) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, offersDDL); err != nil {
		return stderrors.NewStorageFailureError("offers.schema", err)
	}
	return nil
}

func (c *PostgresCatalog) Query(ctx context.Context, loanType string) ([]BankOffer, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, bank_name, bank_code, loan_type, interest_rate, processing_fee,
		       max_loan_amount, min_credit_score, tenure_min_months, tenure_max_months,
		       is_active, last_updated
		FROM bank_offers
		WHERE loan_type = $1 AND is_active = TRUE
		ORDER BY interest_rate ASC, seq ASC`, loanType)
	if err != nil {
		return nil, stderrors.NewStorageFailureError("offers.query", err)
	}
	defer rows.Close()

	matched := make([]BankOffer, 0)
	for rows.Next() {
		var offer BankOffer
		if err := rows.Scan(
			&offer.ID, &offer.BankName, &offer.BankCode, &offer.LoanType,
			&offer.InterestRate, &offer.ProcessingFee, &offer.MaxLoanAmount,
			&offer.MinCreditScore, &offer.TenureMinMonths, &offer.TenureMaxMonths,
			&offer.IsActive, &offer.LastUpdated,
		); err != nil {
			return nil, stderrors.NewStorageFailureError("offers.scan", err)
		}
		matched = append(matched, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewStorageFailureError("offers.query", err)
	}
	return matched, nil
}

// BulkLoad inserts every offer, assigning ids and timestamps where missing.
// Rows already present keep their values.
func (c *PostgresCatalog) BulkLoad(ctx context.Context, offers []BankOffer) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return stderrors.NewStorageFailureError("offers.bulkload", err)
	}
	for _, offer := range offers {
		if offer.ID == "" {
			offer.ID = uuid.NewString()
		}
		if offer.LastUpdated.IsZero() {
			offer.LastUpdated = c.now().UTC()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bank_offers (id, bank_name, bank_code, loan_type, interest_rate,
				processing_fee, max_loan_amount, min_credit_score, tenure_min_months,
				tenure_max_months, is_active, last_updated)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO NOTHING`,
			offer.ID, offer.BankName, offer.BankCode, offer.LoanType, offer.InterestRate,
			offer.ProcessingFee, offer.MaxLoanAmount, offer.MinCreditScore,
			offer.TenureMinMonths, offer.TenureMaxMonths, offer.IsActive, offer.LastUpdated,
		); err != nil {
			tx.Rollback()
			return stderrors.NewStorageFailureError("offers.bulkload", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return stderrors.NewStorageFailureError("offers.bulkload", err)
	}
	return nil
}

// Append adds one offer under a fresh identifier and current timestamp.
func (c *PostgresCatalog) Append(ctx context.Context, offer BankOffer) (BankOffer, error) {
	offer.ID = uuid.NewString()
	offer.LastUpdated = c.now().UTC()
	if _, err := c.db.ExecContext(ctx, `
		INSERT INTO bank_offers (id, bank_name, bank_code, loan_type, interest_rate,
			processing_fee, max_loan_amount, min_credit_score, tenure_min_months,
			tenure_max_months, is_active, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		offer.ID, offer.BankName, offer.BankCode, offer.LoanType, offer.InterestRate,
		offer.ProcessingFee, offer.MaxLoanAmount, offer.MinCreditScore,
		offer.TenureMinMonths, offer.TenureMaxMonths, offer.IsActive, offer.LastUpdated,
	); err != nil {
		return BankOffer{}, stderrors.NewStorageFailureError("offers.append", err)
	}
	return offer, nil
}
