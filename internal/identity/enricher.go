package identity

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/xl-idp/unzipping/internal/catalog"
	"github.com/xl-idp/unzipping/internal/observability"
	"github.com/xl-idp/unzipping/internal/registry"
	"github.com/xl-idp/unzipping/internal/search"
)

// Keys appended to the decoded header by enrichment.
const (
	SuffixTaxpayerID     = "_taxpayer_id"
	SuffixUnified        = "_unified"
	SuffixFoundInInvoice = "_is_found_in_invoice"
	KeyPhoneNumber       = "phone_number"
	KeyEmail             = "email"
)

var digitRunRe = regexp.MustCompile(`\d+`)

// Searcher is the fallback channel for parties without a valid embedded id.
type Searcher interface {
	Find(ctx context.Context, raw, sheetText string) (*search.Result, error)
}

// Enricher resolves the party blocks of a decoded header into unified
// company identities: checksum-validated ids go to the national registries,
// everything else falls back to the search engine.
type Enricher struct {
	cat        *catalog.Catalog
	store      Store
	resolvers  map[registry.Country]registry.Resolver
	validators []registry.Validator
	searcher   Searcher
	log        *observability.Logger
}

// NewEnricher wires the enrichment pipeline. store and searcher may be nil;
// the corresponding stage is skipped.
func NewEnricher(cat *catalog.Catalog, store Store, resolvers []registry.Resolver, searcher Searcher, log *observability.Logger) *Enricher {
	if log == nil {
		log = observability.Nop()
	}
	byCountry := make(map[registry.Country]registry.Resolver, len(resolvers))
	for _, r := range resolvers {
		byCountry[r.Country()] = r
	}
	return &Enricher{
		cat:        cat,
		store:      store,
		resolvers:  byCountry,
		validators: registry.Validators(),
		searcher:   searcher,
		log:        log,
	}
}

// Enrich mutates the header in place: the destination station is unified
// first, then every party role is resolved. Called once per sheet, when the
// table header is detected.
func (e *Enricher) Enrich(ctx context.Context, header map[string]string, sheetText string) {
	e.unifyStation(header)

	searchDown := false
	for _, role := range e.cat.PartyRoles() {
		value := header[role]
		if value == "" {
			continue
		}

		if id, country, ok := e.firstValidID(value); ok {
			e.apply(ctx, header, role, id, country)
			continue
		}

		if e.searcher == nil || searchDown {
			continue
		}
		res, err := e.searcher.Find(ctx, value, sheetText)
		switch {
		case errors.Is(err, search.ErrQuotaExhausted), errors.Is(err, search.ErrOverloaded):
			searchDown = true
			e.log.Warn().Str("role", role).Err(err).Msg("search disabled for the rest of the workbook")
			continue
		case err != nil:
			e.log.Warn().Str("role", role).Err(err).Msg("search lookup failed")
			continue
		case res == nil:
			continue
		}
		header[role+SuffixFoundInInvoice] = strconv.FormatBool(res.FoundInText)
		e.apply(ctx, header, role, res.TaxpayerID, res.Country)
	}
}

// unifyStation rewrites the destination station to its canonical name when
// it contains a known alias substring. First alias wins.
func (e *Enricher) unifyStation(header map[string]string) {
	dest := header[catalog.RoleDestinationStation]
	if dest == "" {
		return
	}
	upper := strings.ToUpper(dest)
	for _, alias := range e.cat.StationAliases() {
		if strings.Contains(upper, alias.Substr) {
			header[catalog.RoleDestinationStation] = alias.Unified
			return
		}
	}
}

// firstValidID scans the digit runs embedded in a party value and returns
// the first one that passes a country checksum.
func (e *Enricher) firstValidID(value string) (string, registry.Country, bool) {
	for _, run := range digitRunRe.FindAllString(value, -1) {
		for _, v := range e.validators {
			if v.Valid(run) {
				return run, v.Country(), true
			}
		}
	}
	return "", "", false
}

// apply fills the role's enrichment keys from the cache or, on a miss, from
// the country's registry. Registry outages produce an uncached null record
// so the next run can try again; definitive not-found answers are cached.
func (e *Enricher) apply(ctx context.Context, header map[string]string, role, id string, country registry.Country) {
	rec := e.lookup(ctx, id, country)

	header[role+SuffixTaxpayerID] = id
	header[role+SuffixUnified] = rec.CompanyName
	if header[KeyPhoneNumber] == "" && rec.Phone != "" {
		header[KeyPhoneNumber] = rec.Phone
	}
	if header[KeyEmail] == "" && rec.Email != "" {
		header[KeyEmail] = rec.Email
	}
}

func (e *Enricher) lookup(ctx context.Context, id string, country registry.Country) Record {
	if e.store != nil {
		rec, hit, err := e.store.GetTaxpayer(ctx, id)
		if err != nil {
			e.log.Warn().Str("taxpayer_id", id).Err(err).Msg("identity cache read failed")
		} else if hit {
			return *rec
		}
	}

	null := Record{TaxpayerID: id, Country: string(country)}
	resolver := e.resolvers[country]
	if resolver == nil {
		return null
	}

	ident, err := resolver.Resolve(ctx, id)
	switch {
	case err == nil:
		rec := Record{
			TaxpayerID:  id,
			CompanyName: ident.Name,
			Phone:       ident.Phone,
			Email:       ident.Email,
			Country:     string(country),
		}
		e.put(ctx, rec)
		return rec
	case errors.Is(err, registry.ErrNotFound):
		e.put(ctx, null)
		return null
	default:
		e.log.Warn().
			Str("taxpayer_id", id).
			Str("country", string(country)).
			Err(err).
			Msg("registry lookup failed, not caching")
		return null
	}
}

func (e *Enricher) put(ctx context.Context, rec Record) {
	if e.store == nil {
		return
	}
	if err := e.store.PutTaxpayer(ctx, rec); err != nil {
		e.log.Warn().Str("taxpayer_id", rec.TaxpayerID).Err(err).Msg("identity cache write failed")
	}
}
