package model

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ ListingsModel = (*customListingsModel)(nil)

type (
	// ListingsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customListingsModel.
	ListingsModel interface {
		listingsModel
		ActivePriced(ctx context.Context) ([]Listings, error)
		ActivePricedSince(ctx context.Context, since time.Time) ([]Listings, error)
	}

	customListingsModel struct {
		*defaultListingsModel
	}
)

// NewListingsModel returns a model for the database table.
func NewListingsModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) ListingsModel {
	return &customListingsModel{
		defaultListingsModel: newListingsModel(conn, c, opts...),
	}
}

// ActivePriced returns every active marketplace listing that carries a
// positive price, newest first.
func (m *customListingsModel) ActivePriced(ctx context.Context) ([]Listings, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE product_type = 'pazar'
  AND status = 'active'
  AND price > 0
ORDER BY created_at DESC`, listingsRows, m.table)

	var rows []Listings
	if err := m.QueryRowsNoCacheCtx(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("listings.ActivePriced query: %w", err)
	}
	return rows, nil
}

// ActivePricedSince returns active priced listings created at or after the
// given instant, newest first.
func (m *customListingsModel) ActivePricedSince(ctx context.Context, since time.Time) ([]Listings, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE product_type = 'pazar'
  AND status = 'active'
  AND price > 0
  AND created_at >= $1
ORDER BY created_at DESC`, listingsRows, m.table)

	var rows []Listings
	if err := m.QueryRowsNoCacheCtx(ctx, &rows, query, since); err != nil {
		return nil, fmt.Errorf("listings.ActivePricedSince query: %w", err)
	}
	return rows, nil
}
