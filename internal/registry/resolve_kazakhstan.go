package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/xl-idp/unzipping/internal/observability"
)

const defaultKazakhstanBaseURL = "https://apiba.prgapp.kz"

// KazakhstanResolver resolves BIN/IIN against the Kazakh registry API: a
// company card endpoint, a separate contacts endpoint, and a POST search as
// fallback for records the card endpoint does not serve.
type KazakhstanResolver struct {
	baseURL string
	client  Doer
	log     *observability.Logger
}

// NewKazakhstanResolver creates the resolver. An empty baseURL uses the
// public API.
func NewKazakhstanResolver(baseURL string, client Doer, log *observability.Logger) *KazakhstanResolver {
	if baseURL == "" {
		baseURL = defaultKazakhstanBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if log == nil {
		log = observability.Nop()
	}
	return &KazakhstanResolver{baseURL: strings.TrimRight(baseURL, "/"), client: client, log: log}
}

func (r *KazakhstanResolver) Country() Country { return CountryKazakhstan }

type kzCompany struct {
	Name string `json:"name"`
}

type kzContacts struct {
	Phones []string `json:"phones"`
	Emails []string `json:"emails"`
}

type kzSearchRequest struct {
	Page  string `json:"page"`
	Size  int    `json:"size"`
	Value string `json:"value"`
}

type kzSearchResponse struct {
	Items []struct {
		Name string `json:"name"`
		BIN  string `json:"bin"`
	} `json:"items"`
}

func (r *KazakhstanResolver) Resolve(ctx context.Context, taxpayerID string) (Identity, error) {
	var id Identity

	var company kzCompany
	err := r.getJSON(ctx, r.baseURL+"/company/"+taxpayerID, &company)
	switch {
	case err == nil && company.Name != "":
		id.Name = company.Name
	case err == nil || errors.Is(err, ErrUnavailable):
		// Card endpoint empty or refusing; the search index may still know
		// the record.
		name, searchErr := r.search(ctx, taxpayerID)
		if searchErr != nil {
			return Identity{}, searchErr
		}
		id.Name = name
	default:
		return Identity{}, err
	}

	var contacts kzContacts
	if err := r.getJSON(ctx, r.baseURL+"/contacts/"+taxpayerID, &contacts); err != nil {
		// Contacts are best effort; the name alone is a useful result.
		r.log.Warn().Str("taxpayer_id", taxpayerID).Err(err).Msg("contacts lookup failed")
	} else {
		id.Phone = strings.Join(contacts.Phones, "\n")
		id.Email = strings.Join(contacts.Emails, "\n")
	}

	return id, nil
}

func (r *KazakhstanResolver) search(ctx context.Context, taxpayerID string) (string, error) {
	payload, err := json.Marshal(kzSearchRequest{Page: "1", Size: 10, Value: taxpayerID})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer drainClose(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: search returned %d", ErrUnavailable, resp.StatusCode)
	}

	var result kzSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decode search response: %v", ErrUnavailable, err)
	}
	for _, item := range result.Items {
		if item.BIN == taxpayerID && item.Name != "" {
			return item.Name, nil
		}
	}
	if len(result.Items) > 0 && result.Items[0].Name != "" {
		return result.Items[0].Name, nil
	}
	return "", ErrNotFound
}

func (r *KazakhstanResolver) getJSON(ctx context.Context, url string, out any) error {
	resp, err := doGet(ctx, r.client, url)
	if err != nil {
		return err
	}
	defer drainClose(resp.Body)
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUnavailable, url, err)
	}
	return nil
}
