// Package search is the fallback identity channel: when a party block
// carries no checksum-valid taxpayer id, the cleaned company name is sent to
// an XML search API and candidate ids are mined from each result's title and
// first passage.
package search

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/xl-idp/unzipping/internal/observability"
	"github.com/xl-idp/unzipping/internal/registry"
)

var (
	// ErrQuotaExhausted means the API key's daily quota is spent. The caller
	// should stop searching for the rest of the workbook.
	ErrQuotaExhausted = errors.New("search: api quota exhausted")

	// ErrOverloaded means the API is rejecting on capacity. Also terminal
	// for the current workbook.
	ErrOverloaded = errors.New("search: api over capacity")

	// ErrUnavailable means the API kept failing after retries.
	ErrUnavailable = errors.New("search: api unavailable")
)

// API error codes. 15 is the documented "no results" answer and is not an
// error at all.
const (
	codeNoResults      = 15
	codeQuotaExhausted = 200
	codeOverloadedA    = 110
	codeOverloadedB    = 111
)

const (
	defaultBaseURL  = "https://yandex.com/search/xml"
	defaultAttempts = 3
	defaultRetryGap = 60 * time.Second
)

var (
	cleanSymbolsRe = regexp.MustCompile("[<>«»'\"‘’“”.,!@#$%^&*()\\[\\]{};?\\\\|~=_+]")
	digitRunRe     = regexp.MustCompile(`\d+`)
)

// Clean normalizes a company string into a search query: punctuation is
// stripped and whitespace collapsed.
func Clean(raw string) string {
	cleaned := cleanSymbolsRe.ReplaceAllString(raw, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

// Result is a mined taxpayer id with its provenance.
type Result struct {
	TaxpayerID string
	Country    registry.Country
	Title      string
	// FoundInText reports whether the winning document's title occurs in the
	// workbook itself. Recomputed on cache hits, never stored.
	FoundInText bool
}

// Cache stores search outcomes keyed by the cleaned query. Negative
// outcomes (nil result) are stored too, so hopeless names are not re-sent.
type Cache interface {
	Get(ctx context.Context, query string) (*Result, bool, error)
	Put(ctx context.Context, query string, res *Result) error
}

// Config wires a Client.
type Config struct {
	BaseURL  string
	User     string
	Key      string
	Attempts int
	RetryGap time.Duration
}

// Client queries the XML search API with retry, candidate mining and
// caching.
type Client struct {
	cfg        Config
	httpClient registry.Doer
	validators []registry.Validator
	cache      Cache
	sleep      func(time.Duration)
	log        *observability.Logger
}

// NewClient creates a search client. A nil cache disables caching; a nil
// sleep uses time.Sleep.
func NewClient(cfg Config, httpClient registry.Doer, cache Cache, sleep func(time.Duration), log *observability.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaultAttempts
	}
	if cfg.RetryGap <= 0 {
		cfg.RetryGap = defaultRetryGap
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: registry.DefaultTimeout}
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	if log == nil {
		log = observability.Nop()
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		validators: registry.Validators(),
		cache:      cache,
		sleep:      sleep,
		log:        log,
	}
}

type xmlDoc struct {
	URL      string   `xml:"url"`
	Title    string   `xml:"title"`
	Passages []string `xml:"passages>passage"`
}

type xmlError struct {
	Code int    `xml:"code,attr"`
	Text string `xml:",chardata"`
}

type xmlResponse struct {
	Error *xmlError `xml:"response>error"`
	Docs  []xmlDoc  `xml:"response>results>grouping>group>doc"`
}

// Find resolves a company string to a candidate taxpayer id, or nil when
// the search yields nothing usable. sheetText is the workbook's full text,
// used to prefer candidates the workbook itself mentions.
func (c *Client) Find(ctx context.Context, raw, sheetText string) (*Result, error) {
	query := Clean(raw)
	if query == "" {
		return nil, nil
	}

	if c.cache != nil {
		if res, ok, err := c.cache.Get(ctx, query); err != nil {
			c.log.Warn().Str("query", query).Err(err).Msg("search cache read failed")
		} else if ok {
			if res != nil {
				res.FoundInText = titleInText(res.Title, sheetText)
			}
			return res, nil
		}
	}

	docs, err := c.request(ctx, query)
	if err != nil {
		return nil, err
	}

	res := c.pick(docs, sheetText)
	if c.cache != nil {
		if err := c.cache.Put(ctx, query, res); err != nil {
			c.log.Warn().Str("query", query).Err(err).Msg("search cache write failed")
		}
	}
	return res, nil
}

// request performs the API call with bounded retries on transient failures.
func (c *Client) request(ctx context.Context, query string) ([]xmlDoc, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.Attempts; attempt++ {
		if attempt > 1 {
			c.log.Warn().
				Str("query", query).
				Int("attempt", attempt).
				Err(lastErr).
				Msg("retrying search request")
			c.sleep(c.cfg.RetryGap)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		docs, retryable, err := c.requestOnce(ctx, query)
		if err == nil {
			return docs, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *Client) requestOnce(ctx context.Context, query string) (docs []xmlDoc, retryable bool, err error) {
	// The suffix steers the engine towards taxpayer-id pages; without it the
	// results are generic company cards with nothing to mine.
	u := fmt.Sprintf("%s?user=%s&key=%s&query=%s",
		c.cfg.BaseURL, url.QueryEscape(c.cfg.User), url.QueryEscape(c.cfg.Key), url.QueryEscape(query+" ИНН"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, true, fmt.Errorf("search api status %d", resp.StatusCode)
	}

	var parsed xmlResponse
	if err := xml.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, true, fmt.Errorf("decode search response: %w", err)
	}

	if parsed.Error != nil {
		switch parsed.Error.Code {
		case codeNoResults:
			return nil, false, nil
		case codeQuotaExhausted:
			return nil, false, ErrQuotaExhausted
		case codeOverloadedA, codeOverloadedB:
			return nil, false, ErrOverloaded
		default:
			return nil, true, fmt.Errorf("search api error %d: %s",
				parsed.Error.Code, strings.TrimSpace(parsed.Error.Text))
		}
	}
	return parsed.Docs, false, nil
}

type candidate struct {
	count   int
	country registry.Country
	title   string
	order   int
}

// pick mines digit runs from each doc's title and first passage, keeps the
// checksum-valid ones and chooses a winner: a candidate mentioned by the
// workbook beats everything, then the highest occurrence count, then
// discovery order.
func (c *Client) pick(docs []xmlDoc, sheetText string) *Result {
	candidates := make(map[string]*candidate)
	for _, doc := range docs {
		texts := []string{doc.Title}
		if len(doc.Passages) > 0 {
			texts = append(texts, doc.Passages[0])
		}
		for _, text := range texts {
			for _, run := range digitRunRe.FindAllString(text, -1) {
				country, ok := c.validate(run)
				if !ok {
					continue
				}
				if cand, seen := candidates[run]; seen {
					cand.count++
				} else {
					candidates[run] = &candidate{
						count:   1,
						country: country,
						title:   strings.TrimSpace(doc.Title),
						order:   len(candidates),
					}
				}
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	var bestID string
	var best *candidate
	for id, cand := range candidates {
		if best == nil || better(cand, best, sheetText) {
			bestID, best = id, cand
		}
	}
	return &Result{
		TaxpayerID:  bestID,
		Country:     best.country,
		Title:       best.title,
		FoundInText: titleInText(best.title, sheetText),
	}
}

func better(a, b *candidate, sheetText string) bool {
	aFound, bFound := titleInText(a.title, sheetText), titleInText(b.title, sheetText)
	if aFound != bFound {
		return aFound
	}
	if a.count != b.count {
		return a.count > b.count
	}
	return a.order < b.order
}

func (c *Client) validate(run string) (registry.Country, bool) {
	for _, v := range c.validators {
		if v.Valid(run) {
			return v.Country(), true
		}
	}
	return "", false
}

// titleInText checks whether any meaningful word of the document title
// occurs in the workbook text, case-insensitively.
func titleInText(title, text string) bool {
	if title == "" || text == "" {
		return false
	}
	upperText := strings.ToUpper(text)
	for _, word := range strings.Fields(Clean(title)) {
		if len([]rune(word)) < 4 {
			continue
		}
		if strings.Contains(upperText, strings.ToUpper(word)) {
			return true
		}
	}
	return false
}
