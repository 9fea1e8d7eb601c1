package lead

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "leadgen-backend/internal/common/errors"
)

func seedLead(id string) *Lead {
	now := time.Now().UTC()
	return &Lead{
		ID:            id,
		PANNumber:     "ABCDE1234F",
		MobileNumber:  "9876543210",
		MonthlyIncome: 50000,
		LoanType:      LoanTypePersonal,
		ConsentGiven:  true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestMemoryStore_CreateGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, seedLead("l1")))

	got, err := store.Get(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "ABCDE1234F", got.PANNumber)

	// Mutating the returned copy must not affect the stored record.
	got.PANNumber = "XXXXX0000X"
	again, err := store.Get(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "ABCDE1234F", again.PANNumber)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, stderrors.HasCode(err, stderrors.ErrCodeLeadNotFound))
}

func TestMemoryStore_UpdateFailureLeavesRecordUntouched(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, seedLead("l1")))

	before, err := store.Get(ctx, "l1")
	require.NoError(t, err)

	_, err = store.Update(ctx, "l1", func(l *Lead) error {
		l.IsOTPVerified = true
		return stderrors.NewOTPInvalidError("l1")
	})
	require.Error(t, err)

	after, err := store.Get(ctx, "l1")
	require.NoError(t, err)
	assert.False(t, after.IsOTPVerified)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestMemoryStore_UpdateBumpsUpdatedAt(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	l := seedLead("l1")
	l.UpdatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, store.Create(ctx, l))

	updated, err := store.Update(ctx, "l1", func(l *Lead) error {
		code := "123456"
		expiry := time.Now().UTC().Add(5 * time.Minute)
		l.OTPCode = &code
		l.OTPExpiry = &expiry
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(l.UpdatedAt))
}

func TestMemoryStore_UpdateSerializesPerLead(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, seedLead("l1")))

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, _ = store.Update(ctx, "l1", func(l *Lead) error {
				l.MonthlyIncome++
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, float64(50000+writers), got.MonthlyIncome)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, seedLead("l1")))

	require.NoError(t, store.Delete(ctx, "l1"))
	_, err := store.Get(ctx, "l1")
	assert.True(t, stderrors.HasCode(err, stderrors.ErrCodeLeadNotFound))

	err = store.Delete(ctx, "l1")
	assert.True(t, stderrors.HasCode(err, stderrors.ErrCodeLeadNotFound))
}
