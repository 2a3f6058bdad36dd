package registry

import (
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/xl-idp/unzipping/internal/observability"
)

// DefaultTimeout bounds a single registry request. Registry sites are slow
// and sit behind flaky proxies, so it is generous.
const DefaultTimeout = 120 * time.Second

// DefaultRetryDelay is the pause before retrying a failed connection.
const DefaultRetryDelay = 30 * time.Second

// Doer executes HTTP requests. *http.Client and *RetryDoer both satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ProxyPool hands out proxies round-robin across requests. An empty pool
// means direct connections.
type ProxyPool struct {
	proxies []*url.URL
	next    atomic.Uint64
}

// NewProxyPool parses proxy URLs into a pool. Invalid entries are skipped.
func NewProxyPool(proxies []string, log *observability.Logger) *ProxyPool {
	if log == nil {
		log = observability.Nop()
	}
	p := &ProxyPool{}
	for _, raw := range proxies {
		u, err := url.Parse(raw)
		if err != nil {
			log.Warn().Str("proxy", raw).Err(err).Msg("skipping unparsable proxy")
			continue
		}
		p.proxies = append(p.proxies, u)
	}
	return p
}

// Next returns the next proxy in rotation, or nil when the pool is empty.
func (p *ProxyPool) Next() *url.URL {
	if p == nil || len(p.proxies) == 0 {
		return nil
	}
	n := p.next.Add(1)
	return p.proxies[(n-1)%uint64(len(p.proxies))]
}

// Size returns the number of usable proxies.
func (p *ProxyPool) Size() int {
	if p == nil {
		return 0
	}
	return len(p.proxies)
}

// NewHTTPClient builds the shared registry HTTP client. Each new connection
// picks the pool's next proxy, so lookups spread across the pool.
func NewHTTPClient(pool *ProxyPool, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if pool.Size() > 0 {
		transport.Proxy = func(*http.Request) (*url.URL, error) {
			return pool.Next(), nil
		}
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// RetryDoer retries connection failures once after a fixed delay. Registry
// sites drop connections under load; one spaced retry recovers most of them.
// HTTP error statuses are not retried, the caller maps those to
// ErrUnavailable.
type RetryDoer struct {
	client Doer
	delay  time.Duration
	sleep  func(time.Duration)
	log    *observability.Logger
}

// NewRetryDoer wraps a Doer with single-retry behavior. A nil sleep uses
// time.Sleep; tests inject a no-op.
func NewRetryDoer(client Doer, delay time.Duration, sleep func(time.Duration), log *observability.Logger) *RetryDoer {
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	if log == nil {
		log = observability.Nop()
	}
	return &RetryDoer{client: client, delay: delay, sleep: sleep, log: log}
}

func (r *RetryDoer) Do(req *http.Request) (*http.Response, error) {
	resp, err := r.client.Do(req)
	if err == nil {
		return resp, nil
	}
	if req.Context().Err() != nil {
		return nil, err
	}
	r.log.Warn().
		Str("url", req.URL.String()).
		Err(err).
		Dur("delay", r.delay).
		Msg("connection failed, retrying once")
	r.sleep(r.delay)

	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, bodyErr
		}
		req.Body = body
	}
	return r.client.Do(req)
}
