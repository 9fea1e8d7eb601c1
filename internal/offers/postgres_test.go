// internal/offers/postgres_test.go
package offers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "leadgen-backend/internal/common/errors"
)

func newCatalogMock(t *testing.T) (*PostgresCatalog, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresCatalog(db), mock
}

func TestPostgresCatalogQuery(t *testing.T) {
	catalog, mock := newCatalogMock(t)

	updated := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "bank_name", "bank_code", "loan_type", "interest_rate", "processing_fee",
		"max_loan_amount", "min_credit_score", "tenure_min_months", "tenure_max_months",
		"is_active", "last_updated",
	}).
		AddRow("id-1", "Punjab National Bank", "PNB", "personal", 9.50, int64(999), int64(2000000), 700, 12, 72, true, updated).
		AddRow("id-2", "HDFC Bank", "HDFC", "personal", 10.50, int64(0), int64(4000000), 700, 12, 60, true, updated)

	// Ties on interest_rate must fall back to insertion order, not id order.
	mock.ExpectQuery(`(?s)SELECT .* FROM bank_offers.*ORDER BY interest_rate ASC, seq ASC`).
		WithArgs("personal").
		WillReturnRows(rows)

	got, err := catalog.Query(context.Background(), "personal")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "PNB", got[0].BankCode)
	assert.Equal(t, 9.50, got[0].InterestRate)
	assert.Equal(t, int64(4000000), got[1].MaxLoanAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalogQueryFailure(t *testing.T) {
	catalog, mock := newCatalogMock(t)

	mock.ExpectQuery(`SELECT .* FROM bank_offers`).
		WithArgs("personal").
		WillReturnError(errors.New("connection reset"))

	_, err := catalog.Query(context.Background(), "personal")
	require.Error(t, err)
	assert.True(t, stderrors.HasCode(err, stderrors.ErrCodeStorageFailure))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalogBulkLoad(t *testing.T) {
	catalog, mock := newCatalogMock(t)
	catalog.now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bank_offers`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO bank_offers`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := catalog.BulkLoad(context.Background(), []BankOffer{
		{BankName: "HDFC Bank", BankCode: "HDFC", LoanType: "personal", InterestRate: 10.50, IsActive: true},
		{BankName: "ICICI Bank", BankCode: "ICICI", LoanType: "personal", InterestRate: 10.75, IsActive: true},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalogBulkLoadKeepsSeedIdentity(t *testing.T) {
	catalog, mock := newCatalogMock(t)

	seed := DefaultOffers()[:1]
	require.Equal(t, "seed-hdfc-personal", seed[0].ID)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bank_offers`).
		WithArgs(seed[0].ID, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, catalog.BulkLoad(context.Background(), seed))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalogBulkLoadRollsBackOnFailure(t *testing.T) {
	catalog, mock := newCatalogMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bank_offers`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := catalog.BulkLoad(context.Background(), []BankOffer{
		{BankName: "HDFC Bank", BankCode: "HDFC", LoanType: "personal", InterestRate: 10.50, IsActive: true},
	})
	require.Error(t, err)
	assert.True(t, stderrors.HasCode(err, stderrors.ErrCodeStorageFailure))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalogAppend(t *testing.T) {
	catalog, mock := newCatalogMock(t)
	fixed := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	catalog.now = func() time.Time { return fixed }

	mock.ExpectExec(`INSERT INTO bank_offers`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	stamped, err := catalog.Append(context.Background(), BankOffer{
		BankName:     "Canara Bank",
		BankCode:     "CANARA",
		LoanType:     "personal",
		InterestRate: 10.40,
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, stamped.ID)
	assert.Equal(t, fixed, stamped.LastUpdated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalogEnsureSchema(t *testing.T) {
	catalog, mock := newCatalogMock(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS bank_offers`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, catalog.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
