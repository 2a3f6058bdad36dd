package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xl-idp/unzipping/internal/observability"
)

// Public registry pages scraped for Russia and Belarus. Both expose the
// company card at a predictable URL keyed by the taxpayer id.
const (
	defaultRussiaURLFormat  = "https://www.list-org.com/search?type=inn&val=%s"
	defaultBelarusURLFormat = "http://grp.nalog.gov.by/search?unp=%s"
)

// Registry sites reject the default Go user agent.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"

// scrapeResolver serves the countries whose registry is only reachable as an
// HTML page: the company name is the page's first h1, phones and emails are
// tel:/mailto: anchors.
type scrapeResolver struct {
	country Country
	urlFmt  string
	client  Doer
	log     *observability.Logger
}

// NewRussiaResolver resolves INN via the Russian registry mirror. An empty
// urlFormat uses the default endpoint; tests point it at a local server.
func NewRussiaResolver(urlFormat string, client Doer, log *observability.Logger) Resolver {
	if urlFormat == "" {
		urlFormat = defaultRussiaURLFormat
	}
	return newScrapeResolver(CountryRussia, urlFormat, client, log)
}

// NewBelarusResolver resolves UNP via the Belarusian registry portal. The
// portal serves windows-1251; parseHTML handles the transcoding.
func NewBelarusResolver(urlFormat string, client Doer, log *observability.Logger) Resolver {
	if urlFormat == "" {
		urlFormat = defaultBelarusURLFormat
	}
	return newScrapeResolver(CountryBelarus, urlFormat, client, log)
}

func newScrapeResolver(country Country, urlFmt string, client Doer, log *observability.Logger) *scrapeResolver {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if log == nil {
		log = observability.Nop()
	}
	return &scrapeResolver{country: country, urlFmt: urlFmt, client: client, log: log}
}

func (r *scrapeResolver) Country() Country { return r.country }

func (r *scrapeResolver) Resolve(ctx context.Context, taxpayerID string) (Identity, error) {
	url := fmt.Sprintf(r.urlFmt, taxpayerID)
	resp, err := doGet(ctx, r.client, url)
	if err != nil {
		return Identity{}, err
	}
	defer drainClose(resp.Body)

	doc, err := parseHTML(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: parse %s: %v", ErrUnavailable, url, err)
	}

	name := nodeText(findElement(doc, "h1"))
	if name == "" {
		r.log.Info().
			Str("country", string(r.country)).
			Str("taxpayer_id", taxpayerID).
			Msg("registry page has no company card")
		return Identity{}, ErrNotFound
	}

	return Identity{
		Name:  name,
		Phone: strings.Join(anchorTexts(doc, "tel:"), "\n"),
		Email: strings.Join(anchorTexts(doc, "mailto:"), "\n"),
	}, nil
}

// doGet issues a GET and maps transport failures and non-2xx statuses to
// ErrUnavailable.
func doGet(ctx context.Context, client Doer, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drainClose(resp.Body)
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnavailable, url, resp.StatusCode)
	}
	return resp, nil
}

func drainClose(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}
