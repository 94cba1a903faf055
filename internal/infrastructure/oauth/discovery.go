// Package oauth resolves and caches OIDC discovery documents. The provider
// itself is an opaque claims source; only discovery plumbing lives here.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

const discoveryPath = "/.well-known/openid-configuration"

// DiscoveryDocument is the subset of the OIDC discovery response this
// service consumes.
type DiscoveryDocument struct {
	Issuer                string   `json:"issuer"`
	AuthorizationEndpoint string   `json:"authorization_endpoint"`
	TokenEndpoint         string   `json:"token_endpoint"`
	UserinfoEndpoint      string   `json:"userinfo_endpoint"`
	JWKSURI               string   `json:"jwks_uri"`
	ScopesSupported       []string `json:"scopes_supported"`
}

// DiscoveryCache fetches a provider's discovery document and memoizes it for
// a fixed TTL. It is constructed once and injected wherever discovery is
// needed — never reached for as a package global — so tests can swap the
// HTTP client and the clock.
type DiscoveryCache struct {
	issuerURL string
	ttl       time.Duration
	client    *http.Client
	now       func() time.Time

	mu        sync.RWMutex
	doc       *DiscoveryDocument
	fetchedAt time.Time
}

func NewDiscoveryCache(issuerURL string, ttl time.Duration, client *http.Client) *DiscoveryCache {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &DiscoveryCache{
		issuerURL: strings.TrimRight(issuerURL, "/"),
		ttl:       ttl,
		client:    client,
		now:       time.Now,
	}
}

// Document returns the cached discovery document, refreshing it when the TTL
// has lapsed. A refresh failure with a previously cached document serves the
// stale copy rather than failing the caller.
func (c *DiscoveryCache) Document(ctx context.Context) (*DiscoveryDocument, error) {
	c.mu.RLock()
	doc, fresh := c.doc, c.doc != nil && c.now().Sub(c.fetchedAt) < c.ttl
	c.mu.RUnlock()
	if fresh {
		return doc, nil
	}

	fetched, err := c.fetch(ctx)
	if err != nil {
		if doc != nil {
			return doc, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.doc = fetched
	c.fetchedAt = c.now()
	c.mu.Unlock()
	return fetched, nil
}

// Refresh discards the cached document and fetches a fresh one.
func (c *DiscoveryCache) Refresh(ctx context.Context) (*DiscoveryDocument, error) {
	c.mu.Lock()
	c.doc = nil
	c.mu.Unlock()
	return c.Document(ctx)
}

func (c *DiscoveryCache) fetch(ctx context.Context) (*DiscoveryDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.issuerURL+discoveryPath, nil)
	if err != nil {
		return nil, fmt.Errorf("discovery request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discovery fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discovery fetch: unexpected status %d", resp.StatusCode)
	}

	var doc DiscoveryDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("discovery decode: %w", err)
	}
	if doc.Issuer == "" {
		return nil, fmt.Errorf("discovery decode: missing issuer")
	}
	return &doc, nil
}
