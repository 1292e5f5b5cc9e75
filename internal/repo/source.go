package repo

import (
	"context"
	"fmt"
	"time"

	"agropazar-api/internal/model"
	"agropazar-api/pkg/pazar"
)

var _ pazar.Source = (*ListingSource)(nil)

// ListingSource adapts the listings table to the aggregator's input shape.
type ListingSource struct {
	listings model.ListingsModel
}

func NewListingSource(listings model.ListingsModel) *ListingSource {
	return &ListingSource{listings: listings}
}

// ActivePriced returns every active listing carrying a positive price.
func (s *ListingSource) ActivePriced(ctx context.Context) ([]pazar.Listing, error) {
	rows, err := s.listings.ActivePriced(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo: active listings: %w", err)
	}
	return buildListings(rows), nil
}

// ActivePricedSince returns active priced listings created at or after since.
func (s *ListingSource) ActivePricedSince(ctx context.Context, since time.Time) ([]pazar.Listing, error) {
	rows, err := s.listings.ActivePricedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("repo: active listings since %s: %w", since.Format(time.RFC3339), err)
	}
	return buildListings(rows), nil
}

func buildListings(rows []model.Listings) []pazar.Listing {
	result := make([]pazar.Listing, 0, len(rows))
	for i := range rows {
		result = append(result, buildListing(&rows[i]))
	}
	return result
}

func buildListing(row *model.Listings) pazar.Listing {
	listing := pazar.Listing{
		Title:     row.Title,
		CreatedAt: row.CreatedAt,
	}
	if row.SubCategory.Valid {
		listing.SubCategory = row.SubCategory.String
	}
	if row.Unit.Valid {
		listing.Unit = row.Unit.String
	}
	if row.Price.Valid {
		listing.Price = row.Price.Float64
	}
	return listing
}
