package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xl-idp/unzipping/internal/catalog"
	"github.com/xl-idp/unzipping/internal/registry"
	"github.com/xl-idp/unzipping/internal/search"
)

type fakeResolver struct {
	country registry.Country
	ident   registry.Identity
	err     error
	calls   int
}

func (f *fakeResolver) Country() registry.Country { return f.country }

func (f *fakeResolver) Resolve(context.Context, string) (registry.Identity, error) {
	f.calls++
	return f.ident, f.err
}

type fakeSearcher struct {
	res   *search.Result
	err   error
	calls int
}

func (f *fakeSearcher) Find(context.Context, string, string) (*search.Result, error) {
	f.calls++
	return f.res, f.err
}

func TestEnricher_ResolvesEmbeddedID(t *testing.T) {
	store := newSQLiteStore(t)
	resolver := &fakeResolver{
		country: registry.CountryRussia,
		ident: registry.Identity{
			Name:  "ПАО СБЕРБАНК",
			Phone: "+7 495 500-55-50",
			Email: "sberbank@sberbank.ru",
		},
	}
	e := NewEnricher(catalog.Default(), store, []registry.Resolver{resolver}, nil, nil)

	header := map[string]string{
		catalog.RoleSeller: "ПАО СБЕРБАНК ИНН 7707083893 г. Москва",
	}
	e.Enrich(context.Background(), header, "")

	assert.Equal(t, "7707083893", header[catalog.RoleSeller+SuffixTaxpayerID])
	assert.Equal(t, "ПАО СБЕРБАНК", header[catalog.RoleSeller+SuffixUnified])
	assert.Equal(t, "+7 495 500-55-50", header[KeyPhoneNumber])
	assert.Equal(t, "sberbank@sberbank.ru", header[KeyEmail])
	assert.Equal(t, 1, resolver.calls)
}

func TestEnricher_CacheHitSkipsRegistry(t *testing.T) {
	store := newSQLiteStore(t)
	resolver := &fakeResolver{
		country: registry.CountryRussia,
		ident:   registry.Identity{Name: "ПАО СБЕРБАНК"},
	}
	e := NewEnricher(catalog.Default(), store, []registry.Resolver{resolver}, nil, nil)

	first := map[string]string{catalog.RoleSeller: "ИНН 7707083893"}
	e.Enrich(context.Background(), first, "")
	require.Equal(t, 1, resolver.calls)

	second := map[string]string{catalog.RoleSeller: "ИНН 7707083893"}
	e.Enrich(context.Background(), second, "")

	assert.Equal(t, 1, resolver.calls, "second workbook must be served from the cache")
	assert.Equal(t, "ПАО СБЕРБАНК", second[catalog.RoleSeller+SuffixUnified])
}

func TestEnricher_RegistryOutageIsNotCached(t *testing.T) {
	store := newSQLiteStore(t)
	resolver := &fakeResolver{
		country: registry.CountryRussia,
		err:     registry.ErrUnavailable,
	}
	e := NewEnricher(catalog.Default(), store, []registry.Resolver{resolver}, nil, nil)

	header := map[string]string{catalog.RoleSeller: "ИНН 7707083893"}
	e.Enrich(context.Background(), header, "")

	assert.Equal(t, "7707083893", header[catalog.RoleSeller+SuffixTaxpayerID])
	assert.Empty(t, header[catalog.RoleSeller+SuffixUnified])

	e.Enrich(context.Background(), map[string]string{catalog.RoleSeller: "ИНН 7707083893"}, "")
	assert.Equal(t, 2, resolver.calls, "outages must be retried on the next workbook")
}

func TestEnricher_NotFoundIsCached(t *testing.T) {
	store := newSQLiteStore(t)
	resolver := &fakeResolver{
		country: registry.CountryRussia,
		err:     registry.ErrNotFound,
	}
	e := NewEnricher(catalog.Default(), store, []registry.Resolver{resolver}, nil, nil)

	e.Enrich(context.Background(), map[string]string{catalog.RoleSeller: "ИНН 7707083893"}, "")
	e.Enrich(context.Background(), map[string]string{catalog.RoleSeller: "ИНН 7707083893"}, "")

	assert.Equal(t, 1, resolver.calls)
}

func TestEnricher_SearchFallback(t *testing.T) {
	store := newSQLiteStore(t)
	resolver := &fakeResolver{
		country: registry.CountryRussia,
		ident:   registry.Identity{Name: "ООО РОМАШКА"},
	}
	searcher := &fakeSearcher{res: &search.Result{
		TaxpayerID:  "7707083893",
		Country:     registry.CountryRussia,
		Title:       "ООО РОМАШКА ИНН 7707083893",
		FoundInText: true,
	}}
	e := NewEnricher(catalog.Default(), store, []registry.Resolver{resolver}, searcher, nil)

	header := map[string]string{catalog.RoleBuyer: "ООО РОМАШКА"}
	e.Enrich(context.Background(), header, "спецификация ООО РОМАШКА")

	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, "7707083893", header[catalog.RoleBuyer+SuffixTaxpayerID])
	assert.Equal(t, "ООО РОМАШКА", header[catalog.RoleBuyer+SuffixUnified])
	assert.Equal(t, "true", header[catalog.RoleBuyer+SuffixFoundInInvoice])
}

func TestEnricher_QuotaStopsFurtherSearches(t *testing.T) {
	store := newSQLiteStore(t)
	searcher := &fakeSearcher{err: search.ErrQuotaExhausted}
	e := NewEnricher(catalog.Default(), store, nil, searcher, nil)

	header := map[string]string{
		catalog.RoleSeller: "SHANGHAI TRADING",
		catalog.RoleBuyer:  "ООО ЛЮТИК",
	}
	e.Enrich(context.Background(), header, "")

	assert.Equal(t, 1, searcher.calls, "quota exhaustion must stop the remaining roles")
}

func TestEnricher_UnifiesDestinationStation(t *testing.T) {
	e := NewEnricher(catalog.Default(), nil, nil, nil, nil)

	header := map[string]string{
		catalog.RoleDestinationStation: "ст. НАХОДКА (эксп.)",
	}
	e.Enrich(context.Background(), header, "")

	assert.Equal(t, "Находка-Восточная", header[catalog.RoleDestinationStation])
}

func TestEnricher_UnknownStationKept(t *testing.T) {
	e := NewEnricher(catalog.Default(), nil, nil, nil, nil)

	header := map[string]string{catalog.RoleDestinationStation: "Селятино"}
	e.Enrich(context.Background(), header, "")

	assert.Equal(t, "Селятино", header[catalog.RoleDestinationStation])
}
