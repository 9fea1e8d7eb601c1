// internal/offers/catalog_test.go
package offers

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "leadgen-backend/internal/common/errors"
)

func TestMemoryCatalogQuerySortsByRate(t *testing.T) {
	catalog := NewMemoryCatalog()
	require.NoError(t, Seed(context.Background(), catalog))

	got, err := catalog.Query(context.Background(), "personal")
	require.NoError(t, err)
	require.Len(t, got, 10)

	assert.Equal(t, "PNB", got[0].BankCode)
	assert.Equal(t, 9.50, got[0].InterestRate)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].InterestRate, got[i].InterestRate)
	}
}

func TestMemoryCatalogQueryFilters(t *testing.T) {
	catalog := NewMemoryCatalog()
	require.NoError(t, catalog.BulkLoad(context.Background(), []BankOffer{
		{BankName: "HDFC Bank", BankCode: "HDFC", LoanType: "personal", InterestRate: 10.50, IsActive: true},
		{BankName: "Dormant Bank", BankCode: "DORM", LoanType: "personal", InterestRate: 8.00, IsActive: false},
		{BankName: "ICICI Bank", BankCode: "ICICI", LoanType: "home", InterestRate: 8.75, IsActive: true},
	}))

	got, err := catalog.Query(context.Background(), "personal")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "HDFC", got[0].BankCode)
}

func TestMemoryCatalogQueryUnknownTypeEmpty(t *testing.T) {
	catalog := NewMemoryCatalog()
	require.NoError(t, Seed(context.Background(), catalog))

	got, err := catalog.Query(context.Background(), "yacht")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemoryCatalogStableOrderOnEqualRates(t *testing.T) {
	catalog := NewMemoryCatalog()
	require.NoError(t, catalog.BulkLoad(context.Background(), []BankOffer{
		{BankName: "First Bank", BankCode: "FIRST", LoanType: "car", InterestRate: 9.00, IsActive: true},
		{BankName: "Second Bank", BankCode: "SECOND", LoanType: "car", InterestRate: 9.00, IsActive: true},
	}))

	got, err := catalog.Query(context.Background(), "car")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "FIRST", got[0].BankCode)
	assert.Equal(t, "SECOND", got[1].BankCode)
}

func TestMemoryCatalogBulkLoadNeverRemoves(t *testing.T) {
	catalog := NewMemoryCatalog()
	require.NoError(t, Seed(context.Background(), catalog))
	before, err := catalog.Query(context.Background(), "business")
	require.NoError(t, err)

	require.NoError(t, catalog.BulkLoad(context.Background(), []BankOffer{
		{BankName: "New Entrant", BankCode: "NEW", LoanType: "business", InterestRate: 10.00, IsActive: true},
	}))

	after, err := catalog.Query(context.Background(), "business")
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
}

func TestMemoryCatalogAppendStampsFreshIdentity(t *testing.T) {
	catalog := NewMemoryCatalog()
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	catalog.now = func() time.Time { return fixed }

	stamped, err := catalog.Append(context.Background(), BankOffer{
		ID:           "caller-picked",
		BankName:     "Canara Bank",
		BankCode:     "CANARA",
		LoanType:     "personal",
		InterestRate: 10.40,
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "caller-picked", stamped.ID)
	assert.NotEmpty(t, stamped.ID)
	assert.Equal(t, fixed, stamped.LastUpdated)

	got, err := catalog.Query(context.Background(), "personal")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, stamped.ID, got[0].ID)
}

func TestSeedReloadDoesNotDuplicate(t *testing.T) {
	catalog := NewMemoryCatalog()
	require.NoError(t, Seed(context.Background(), catalog))
	require.NoError(t, Seed(context.Background(), catalog))

	for loanType, want := range map[string]int{"personal": 10, "home": 5, "car": 4, "business": 3} {
		got, err := catalog.Query(context.Background(), loanType)
		require.NoError(t, err)
		assert.Len(t, got, want, "loan type %s after reseeding", loanType)
	}
}

func TestDefaultOffersHaveStableIdentity(t *testing.T) {
	first := DefaultOffers()
	second := DefaultOffers()

	seen := make(map[string]struct{}, len(first))
	for i, offer := range first {
		require.NotEmpty(t, offer.ID)
		assert.Equal(t, offer.ID, second[i].ID, "id must not change between runs")

		_, dup := seen[offer.ID]
		assert.False(t, dup, "duplicate seed id %s", offer.ID)
		seen[offer.ID] = struct{}{}
	}
}

func TestDefaultOffersCoverAllLoanTypes(t *testing.T) {
	byType := map[string]int{}
	for _, offer := range DefaultOffers() {
		byType[offer.LoanType]++
		assert.True(t, offer.IsActive)
		assert.Greater(t, offer.InterestRate, 0.0)
	}
	assert.Equal(t, 10, byType["personal"])
	assert.Equal(t, 5, byType["home"])
	assert.Equal(t, 4, byType["car"])
	assert.Equal(t, 3, byType["business"])
}

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()

	writeFile := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	t.Run("valid file loads", func(t *testing.T) {
		path := writeFile("good.json", `[
			{"bankName": "Federal Bank", "bankCode": "FED", "loanType": "personal",
			 "interestRate": 10.49, "processingFee": 499, "maxLoanAmount": 2500000,
			 "minCreditScore": 680, "tenureMin": 12, "tenureMax": 60, "isActive": true}
		]`)

		catalog := NewMemoryCatalog()
		require.NoError(t, LoadSeedFile(context.Background(), catalog, path))

		got, err := catalog.Query(context.Background(), "personal")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "FED", got[0].BankCode)
		assert.NotEmpty(t, got[0].ID)
	})

	t.Run("reloading the same file is idempotent", func(t *testing.T) {
		path := writeFile("repeat.json", `[
			{"bankName": "Federal Bank", "bankCode": "FED", "loanType": "personal", "interestRate": 10.49},
			{"bankName": "Federal Bank", "bankCode": "FED", "loanType": "personal", "interestRate": 11.99}
		]`)

		catalog := NewMemoryCatalog()
		require.NoError(t, LoadSeedFile(context.Background(), catalog, path))
		require.NoError(t, LoadSeedFile(context.Background(), catalog, path))

		got, err := catalog.Query(context.Background(), "personal")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("schema violation rejects whole file", func(t *testing.T) {
		path := writeFile("bad.json", `[
			{"bankName": "Federal Bank", "bankCode": "FED", "loanType": "personal", "interestRate": 10.49},
			{"bankName": "No Rate Bank", "bankCode": "NR", "loanType": "personal"}
		]`)

		catalog := NewMemoryCatalog()
		err := LoadSeedFile(context.Background(), catalog, path)
		require.Error(t, err)
		assert.True(t, stderrors.HasCode(err, stderrors.ErrCodeOfferSeedInvalid))

		got, qerr := catalog.Query(context.Background(), "personal")
		require.NoError(t, qerr)
		assert.Empty(t, got)
	})

	t.Run("unknown loan type rejected", func(t *testing.T) {
		path := writeFile("type.json", `[
			{"bankName": "Federal Bank", "bankCode": "FED", "loanType": "yacht", "interestRate": 10.49}
		]`)

		err := LoadSeedFile(context.Background(), NewMemoryCatalog(), path)
		require.Error(t, err)
		assert.True(t, stderrors.HasCode(err, stderrors.ErrCodeOfferSeedInvalid))
	})

	t.Run("malformed JSON rejected", func(t *testing.T) {
		path := writeFile("broken.json", `[{`)

		err := LoadSeedFile(context.Background(), NewMemoryCatalog(), path)
		require.Error(t, err)
		assert.True(t, stderrors.HasCode(err, stderrors.ErrCodeOfferSeedInvalid))
	})

	t.Run("missing file rejected", func(t *testing.T) {
		err := LoadSeedFile(context.Background(), NewMemoryCatalog(), filepath.Join(dir, "absent.json"))
		require.Error(t, err)
		assert.True(t, stderrors.HasCode(err, stderrors.ErrCodeOfferSeedInvalid))
	})
}
