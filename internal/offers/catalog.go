// internal/offers/catalog.go
package offers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Catalog is the query/load capability for bank offers. Query returns active
// offers for the loan type sorted ascending by interest rate; the sort is
// stable so near-equal rates keep insertion order. Unknown loan types yield
// an empty slice, not an error.
type Catalog interface {
	Query(ctx context.Context, loanType string) ([]BankOffer, error)
	BulkLoad(ctx context.Context, offers []BankOffer) error
	Append(ctx context.Context, offer BankOffer) (BankOffer, error)
}

// MemoryCatalog keeps the offer table in process memory.
type MemoryCatalog struct {
	mu     sync.RWMutex
	offers []BankOffer

	now func() time.Time
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{now: time.Now}
}

func (c *MemoryCatalog) Query(_ context.Context, loanType string) ([]BankOffer, error) {
	c.mu.RLock()
	matched := make([]BankOffer, 0)
	for _, offer := range c.offers {
		if offer.IsActive && offer.LoanType == loanType {
			matched = append(matched, offer)
		}
	}
	c.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].InterestRate < matched[j].InterestRate
	})
	return matched, nil
}

// BulkLoad appends every offer, assigning ids and timestamps where missing.
// Offers whose id is already in the catalog are skipped, so reloading a seed
// set is idempotent. Existing offers are never removed.
func (c *MemoryCatalog) BulkLoad(_ context.Context, offers []BankOffer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	present := make(map[string]struct{}, len(c.offers))
	for _, existing := range c.offers {
		present[existing.ID] = struct{}{}
	}
	for _, offer := range offers {
		stamped := c.stamp(offer)
		if _, ok := present[stamped.ID]; ok {
			continue
		}
		present[stamped.ID] = struct{}{}
		c.offers = append(c.offers, stamped)
	}
	return nil
}

// Append adds one offer under a fresh identifier and current timestamp.
func (c *MemoryCatalog) Append(_ context.Context, offer BankOffer) (BankOffer, error) {
	offer.ID = ""
	offer.LastUpdated = time.Time{}
	stamped := c.stamp(offer)
	c.mu.Lock()
	c.offers = append(c.offers, stamped)
	c.mu.Unlock()
	return stamped, nil
}

func (c *MemoryCatalog) stamp(offer BankOffer) BankOffer {
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	if offer.LastUpdated.IsZero() {
		offer.LastUpdated = c.now().UTC()
	}
	return offer
}
