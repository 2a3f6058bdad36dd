package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/xl-idp/unzipping/internal/observability"
	"github.com/xl-idp/unzipping/internal/translate"
)

const defaultUzbekistanBaseURL = "https://orginfo.uz"

// UzbekistanResolver resolves INN via the Uzbek company directory: a search
// page links to the organization card, whose name is published in Uzbek and
// whose email hides behind Cloudflare obfuscation.
type UzbekistanResolver struct {
	baseURL    string
	client     Doer
	translator translate.Translator
	log        *observability.Logger
}

// NewUzbekistanResolver creates the resolver. A nil translator keeps names
// in Uzbek.
func NewUzbekistanResolver(baseURL string, client Doer, translator translate.Translator, log *observability.Logger) *UzbekistanResolver {
	if baseURL == "" {
		baseURL = defaultUzbekistanBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if translator == nil {
		translator = translate.Noop{}
	}
	if log == nil {
		log = observability.Nop()
	}
	return &UzbekistanResolver{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     client,
		translator: translator,
		log:        log,
	}
}

func (r *UzbekistanResolver) Country() Country { return CountryUzbekistan }

func (r *UzbekistanResolver) Resolve(ctx context.Context, taxpayerID string) (Identity, error) {
	searchURL := r.baseURL + "/search?q=" + url.QueryEscape(taxpayerID)
	resp, err := doGet(ctx, r.client, searchURL)
	if err != nil {
		return Identity{}, err
	}
	doc, err := parseHTML(resp.Body, resp.Header.Get("Content-Type"))
	drainClose(resp.Body)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: parse search page: %v", ErrUnavailable, err)
	}

	href := anchorHrefContaining(doc, "/organization/")
	if href == "" {
		return Identity{}, ErrNotFound
	}
	cardURL, err := r.resolveURL(href)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: organization link %q: %v", ErrUnavailable, href, err)
	}

	resp, err = doGet(ctx, r.client, cardURL)
	if err != nil {
		return Identity{}, err
	}
	card, err := parseHTML(resp.Body, resp.Header.Get("Content-Type"))
	drainClose(resp.Body)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: parse organization page: %v", ErrUnavailable, err)
	}

	name := nodeText(findElementWithClass(card, "h1", "h1-seo"))
	if name == "" {
		return Identity{}, ErrNotFound
	}
	if translated, terr := r.translator.Translate(ctx, name, "uz", "ru"); terr != nil {
		r.log.Warn().Str("name", name).Err(terr).Msg("name translation failed, keeping original")
	} else if translated != "" {
		name = translated
	}

	return Identity{
		Name:  name,
		Phone: strings.Join(anchorTexts(card, "tel:"), "\n"),
		Email: findCFEmail(card),
	}, nil
}

// resolveURL makes a card link absolute against the directory base.
func (r *UzbekistanResolver) resolveURL(href string) (string, error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	base, err := url.Parse(r.baseURL)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}
