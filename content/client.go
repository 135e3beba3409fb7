package content

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/sony/gobreaker"
)

const maxAttempts = 3

// Client fetches content-hash-addressed assets from a realm's content
// server, with a disk cache write-through, a short-TTL failure map for
// fast-failing known-bad hashes, a semaphore bounding in-flight request
// concurrency, and a circuit breaker per realm that trips after
// repeated failures.
type Client struct {
	http  *http.Client
	cache *DiskCache
	fail  *failureMap
	sem   *semaphore.Weighted
	log   *zap.Logger

	breakers map[string]*gobreaker.CircuitBreaker

	// Preview disables the failure-map fast-fail short-circuit: every
	// Fetch retries the network regardless of recent failures. Intended
	// for a scene author actively iterating on content, where a stale
	// fast-fail would otherwise hide a fix that just landed on the
	// content server.
	Preview bool
}

// NewClient returns a Client backed by cache, allowing at most
// maxInFlight concurrent network fetches.
func NewClient(cache *DiskCache, maxInFlight int64, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http:     &http.Client{},
		cache:    cache,
		fail:     newFailureMap(),
		sem:      semaphore.NewWeighted(maxInFlight),
		log:      log,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (c *Client) breakerFor(baseURL string) *gobreaker.CircuitBreaker {
	if b, ok := c.breakers[baseURL]; ok {
		return b
	}
	b := newRealmBreaker(baseURL)
	c.breakers[baseURL] = b
	return b
}

// Fetch resolves hash against baseURL's content endpoint, serving from
// the disk cache when warm. A "b64-" prefixed hash is decoded inline and
// never touches the network or the failure map.
func (c *Client) Fetch(ctx context.Context, baseURL, hash string) ([]byte, error) {
	if strings.HasPrefix(hash, "b64-") {
		data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(hash, "b64-"))
		if err != nil {
			fetchTotal.WithLabelValues("decode_error").Inc()
			return nil, fmt.Errorf("decode inline hash: %w", err)
		}
		fetchTotal.WithLabelValues("inline").Inc()
		return data, nil
	}

	if c.cache.Has(hash) {
		cacheHits.Inc()
		return c.cache.Read(hash)
	}

	if !c.Preview && c.fail.Check(hash) {
		fetchTotal.WithLabelValues("fast_fail").Inc()
		return nil, fmt.Errorf("hash %s: recently failed, not retrying yet", hash)
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.sem.Release(1)

	start := time.Now()
	data, err := c.fetchWithRetry(ctx, baseURL, hash)
	fetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.fail.Record(hash)
		fetchTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	fetchTotal.WithLabelValues("fetched").Inc()
	if err := c.cache.Write(hash, data); err != nil {
		c.log.Warn("content cache write failed", zap.String("hash", hash), zap.Error(err))
	}
	c.fail.Clear(hash)
	return data, nil
}

// permanentClientError marks a 4xx response other than 404 as not worth
// retrying: the server has told us the request itself is bad, and
// sending the same request again won't change that.
type permanentClientError struct {
	status int
}

func (e *permanentClientError) Error() string {
	return fmt.Sprintf("client error %d", e.status)
}

// fetchWithRetry attempts the HTTP GET up to maxAttempts times, widening
// the request timeout each attempt to 5+30*n seconds total, guarding
// against a realm that accepts TCP connections but never responds. There
// is no separate connect timeout; connecting counts against that total. A 4xx response other than 404 fails on the first
// attempt instead of burning the remaining retries: no amount of
// resending fixes a bad request.
func (c *Client) fetchWithRetry(ctx context.Context, baseURL, hash string) ([]byte, error) {
	breaker := c.breakerFor(baseURL)
	url := strings.TrimRight(baseURL, "/") + "/contents/" + hash

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		timeout := time.Duration(5+30*attempt) * time.Second
		result, err := breaker.Execute(func() (interface{}, error) {
			reqCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
			if err != nil {
				return nil, err
			}
			resp, err := c.http.Do(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusNotFound {
				return nil, errHashMissing
			}
			if resp.StatusCode >= 500 {
				return nil, fmt.Errorf("server error %d", resp.StatusCode)
			}
			if resp.StatusCode >= 400 {
				return nil, &permanentClientError{status: resp.StatusCode}
			}
			return io.ReadAll(resp.Body)
		})
		if err == nil {
			return result.([]byte), nil
		}
		if err == errHashMissing {
			return nil, fmt.Errorf("hash %s: %w", hash, err)
		}
		var permanent *permanentClientError
		if errors.As(err, &permanent) {
			return nil, fmt.Errorf("hash %s: %w", hash, permanent)
		}
		lastErr = err
		c.log.Debug("content fetch attempt failed", zap.String("hash", hash), zap.Int("attempt", attempt), zap.Error(err))
	}
	return nil, fmt.Errorf("hash %s: all %d attempts failed: %w", hash, maxAttempts, lastErr)
}

var errHashMissing = fmt.Errorf("content not found")
