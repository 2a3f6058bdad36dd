package identity

import (
	"context"

	"github.com/xl-idp/unzipping/internal/registry"
	"github.com/xl-idp/unzipping/internal/search"
)

// SearchCache adapts a Store to the search package's cache interface.
type SearchCache struct {
	store Store
}

// NewSearchCache wraps the store for use by the search client.
func NewSearchCache(store Store) *SearchCache {
	return &SearchCache{store: store}
}

func (c *SearchCache) Get(ctx context.Context, query string) (*search.Result, bool, error) {
	rec, ok, err := c.store.GetSearch(ctx, query)
	if err != nil || !ok {
		return nil, ok, err
	}
	if rec.TaxpayerID == "" {
		// Cached negative outcome.
		return nil, true, nil
	}
	return &search.Result{
		TaxpayerID: rec.TaxpayerID,
		Country:    registry.Country(rec.Country),
		Title:      rec.CompanyName,
	}, true, nil
}

func (c *SearchCache) Put(ctx context.Context, query string, res *search.Result) error {
	if res == nil {
		return c.store.PutSearch(ctx, query, Record{})
	}
	return c.store.PutSearch(ctx, query, Record{
		TaxpayerID:  res.TaxpayerID,
		CompanyName: res.Title,
		Country:     string(res.Country),
	})
}
