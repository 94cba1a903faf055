package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

const tenantCacheTTL = 30 * time.Second

// TenantCache is a read-through cache in front of the photographer
// repository. Feature gates hit it on every gated request, so a short TTL
// keeps Mongo off the hot path while bounding how long a billing change takes
// to become visible.
//
// Negative results are not cached: a missing tenant is a data anomaly, not a
// steady state worth remembering.
type TenantCache struct {
	client *redis.Client
	next   ports.PhotographerRepository
	ttl    time.Duration
	log    zerolog.Logger
}

func NewTenantCache(client *redis.Client, next ports.PhotographerRepository, log zerolog.Logger) *TenantCache {
	return &TenantCache{client: client, next: next, ttl: tenantCacheTTL, log: log}
}

// FindByID returns the cached tenant record, falling back to the underlying
// repository on miss or cache failure. Cache errors never fail the request.
func (c *TenantCache) FindByID(ctx context.Context, id string) (*domain.Photographer, error) {
	key := c.key(id)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var p domain.Photographer
		if err := json.Unmarshal(raw, &p); err == nil {
			return &p, nil
		}
		// Corrupt entry: drop it and fall through to the source of truth.
		_ = c.client.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("photographer_id", id).Msg("tenant cache read failed")
	}

	p, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(p); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("photographer_id", id).Msg("tenant cache write failed")
		}
	}
	return p, nil
}

// Create passes through to the underlying repository. Nothing to cache: the
// record only becomes interesting once a gate reads it.
func (c *TenantCache) Create(ctx context.Context, p *domain.Photographer) error {
	return c.next.Create(ctx, p)
}

func (c *TenantCache) key(id string) string {
	return fmt.Sprintf("tenant:%s", id)
}
