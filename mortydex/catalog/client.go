// Package catalog talks to the external character catalog (the Rick and
// Morty REST API) and tracks the catalog-wide character count.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://rickandmortyapi.com/api"
	defaultCacheSize = 1024
	defaultRateLimit = 5 // requests per second
	defaultBurst     = 5
)

// Character is the subset of a catalog record the album cares about. Status
// drives rarity assignment and is compared case-insensitively.
type Character struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Client is the catalog boundary consumed by the services. Implementations
// must be safe for concurrent use.
type Client interface {
	GetCharacter(ctx context.Context, id int64) (*Character, error)
	GetTotalCount(ctx context.Context) (int, error)
}

// HTTPClient is the production Client backed by the public REST API.
// Character records never change, so lookups go through an LRU cache, and
// outbound calls are rate limited to stay friendly to the upstream.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *lru.Cache
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	cache, _ := lru.New(defaultCacheSize)
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		cache:      cache,
	}
}

func (c *HTTPClient) GetCharacter(ctx context.Context, id int64) (*Character, error) {
	if cached, ok := c.cache.Get(id); ok {
		return cached.(*Character), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	var character Character
	if err := c.getJSON(ctx, fmt.Sprintf("/character/%d", id), &character); err != nil {
		return nil, fmt.Errorf("failed to fetch character %d: %w", id, err)
	}

	c.cache.Add(id, &character)
	return &character, nil
}

func (c *HTTPClient) GetTotalCount(ctx context.Context) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter wait: %w", err)
	}

	var root struct {
		Info struct {
			Count int `json:"count"`
		} `json:"info"`
	}
	if err := c.getJSON(ctx, "/character", &root); err != nil {
		return 0, fmt.Errorf("failed to fetch catalog info: %w", err)
	}
	return root.Info.Count, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
