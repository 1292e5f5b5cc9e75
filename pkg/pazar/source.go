package pazar

import (
	"context"
	"time"
)

// Listing is the slice of a marketplace listing the aggregator needs. All
// sources are expected to pre-filter to active, positively priced,
// open-market listings.
type Listing struct {
	SubCategory string
	Title       string
	Unit        string
	Price       float64
	CreatedAt   time.Time
}

// Source provides read-only access to the listings store.
type Source interface {
	// ActivePriced returns every active priced listing regardless of age.
	ActivePriced(ctx context.Context) ([]Listing, error)
	// ActivePricedSince returns active priced listings created at or after
	// the given instant.
	ActivePricedSince(ctx context.Context, since time.Time) ([]Listing, error)
}
