package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xl-idp/unzipping/internal/registry"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`ООО "РОМАШКА"`, "ООО РОМАШКА"},
		{"«SHANGHAI   TRADING», LTD.", "SHANGHAI TRADING LTD"},
		{"A_B+C=D", "A B C D"},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), "input %q", tt.in)
	}
}

const resultsXML = `<?xml version="1.0" encoding="utf-8"?>
<yandexsearch>
 <response>
  <results><grouping>
   <group><doc>
    <url>https://example.ru/romashka</url>
    <title>ООО РОМАШКА ИНН 7707083893</title>
    <passages><passage>ИНН 7707083893 КПП 770701001</passage></passages>
   </doc></group>
   <group><doc>
    <url>https://example.ru/other</url>
    <title>ИП Иванов ИНН 500100732259</title>
   </doc></group>
  </grouping></results>
 </response>
</yandexsearch>`

func newTestClient(t *testing.T, handler http.HandlerFunc, cache Cache) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := Config{BaseURL: srv.URL, User: "u", Key: "k", RetryGap: time.Millisecond}
	return NewClient(cfg, srv.Client(), cache, func(time.Duration) {}, nil), srv
}

func TestClient_Find_PicksMostFrequentCandidate(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ООО РОМАШКА ИНН", r.URL.Query().Get("query"))
		fmt.Fprint(w, resultsXML)
	}, nil)

	res, err := c.Find(context.Background(), `ООО "РОМАШКА"`, "")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "7707083893", res.TaxpayerID, "two mentions beat one")
	assert.Equal(t, registry.CountryRussia, res.Country)
	assert.False(t, res.FoundInText)
}

func TestClient_Find_PrefersCandidateMentionedInWorkbook(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultsXML)
	}, nil)

	sheetText := "Инвойс\nИП Иванов\nстанция Находка"
	res, err := c.Find(context.Background(), "поставщик", sheetText)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "500100732259", res.TaxpayerID)
	assert.True(t, res.FoundInText)
}

func TestClient_Find_MinesOnlyFirstPassagePerDoc(t *testing.T) {
	body := `<?xml version="1.0" encoding="utf-8"?>
<yandexsearch>
 <response>
  <results><grouping>
   <group><doc>
    <url>https://example.ru/card</url>
    <title>Карточка компании</title>
    <passages>
     <passage>ИНН 7707083893</passage>
     <passage>ИНН 500100732259, повторно ИНН 500100732259</passage>
    </passages>
   </doc></group>
  </grouping></results>
 </response>
</yandexsearch>`
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}, nil)

	res, err := c.Find(context.Background(), "ООО РОМАШКА", "")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "7707083893", res.TaxpayerID, "passages after the first are ignored")
}

func TestClient_Find_QuotaExhausted(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `<yandexsearch><response><error code="200">quota</error></response></yandexsearch>`)
	}, nil)

	_, err := c.Find(context.Background(), "ООО РОМАШКА", "")
	assert.ErrorIs(t, err, ErrQuotaExhausted)
	assert.Equal(t, 1, calls, "quota errors are not retried")
}

func TestClient_Find_Overloaded(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<yandexsearch><response><error code="110">later</error></response></yandexsearch>`)
	}, nil)

	_, err := c.Find(context.Background(), "ООО РОМАШКА", "")
	assert.ErrorIs(t, err, ErrOverloaded)
}

func TestClient_Find_RetriesTransientErrors(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, `<yandexsearch><response><error code="42">hiccup</error></response></yandexsearch>`)
			return
		}
		fmt.Fprint(w, resultsXML)
	}, nil)

	res, err := c.Find(context.Background(), "ООО РОМАШКА", "")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 2, calls)
}

func TestClient_Find_GivesUpAfterAttempts(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}, nil)

	_, err := c.Find(context.Background(), "ООО РОМАШКА", "")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, defaultAttempts, calls)
}

type mapCache struct {
	entries map[string]*Result
	puts    int
}

func newMapCache() *mapCache { return &mapCache{entries: make(map[string]*Result)} }

func (m *mapCache) Get(_ context.Context, query string) (*Result, bool, error) {
	res, ok := m.entries[query]
	return res, ok, nil
}

func (m *mapCache) Put(_ context.Context, query string, res *Result) error {
	m.entries[query] = res
	m.puts++
	return nil
}

func TestClient_Find_CachesNegativeResults(t *testing.T) {
	calls := 0
	cache := newMapCache()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `<yandexsearch><response><error code="15">nothing</error></response></yandexsearch>`)
	}, cache)

	res, err := c.Find(context.Background(), "ООО НЕИЗВЕСТНО", "")
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = c.Find(context.Background(), "ООО НЕИЗВЕСТНО", "")
	require.NoError(t, err)
	assert.Nil(t, res)

	assert.Equal(t, 1, calls, "negative outcome is served from cache")
	assert.Equal(t, 1, cache.puts)
}

func TestClient_Find_CacheHitRecomputesFoundInText(t *testing.T) {
	cache := newMapCache()
	cache.entries["ООО РОМАШКА"] = &Result{
		TaxpayerID: "7707083893",
		Country:    registry.CountryRussia,
		Title:      "ООО РОМАШКА ИНН 7707083893",
	}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("cache hit must not reach the api")
	}, cache)

	res, err := c.Find(context.Background(), "ООО РОМАШКА", "спецификация ООО РОМАШКА")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.FoundInText)
}
