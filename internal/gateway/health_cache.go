package gateway

import (
	"context"
	"time"

	"github.com/vendasul/sugestao-vendedor/pkg/cache"
)

const healthCacheKey = "health"

type healthCached struct {
	DataGateway
	probes *cache.TTL[bool]
}

// WithHealthCache caches CheckHealth results for the given TTL so UI
// refreshes do not hammer the backend.
func WithHealthCache(gw DataGateway, ttl time.Duration) DataGateway {
	return &healthCached{
		DataGateway: gw,
		probes:      cache.New[bool](ttl),
	}
}

func (g *healthCached) CheckHealth(ctx context.Context) bool {
	if ok, cached := g.probes.Get(healthCacheKey); cached {
		return ok
	}
	ok := g.DataGateway.CheckHealth(ctx)
	g.probes.Set(healthCacheKey, ok)
	return ok
}
