package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ansh808s/cause-drop/internal/model"
)

// CampaignCache keeps hot campaign rows (keyed by slug) in front of the
// repo for the public detail and donation-action endpoints. Writers must
// invalidate the slug after any mutation.
type CampaignCache struct {
	cache *expirable.LRU[string, model.Campaign]
}

func NewCampaignCache(size int, ttl time.Duration) *CampaignCache {
	if size <= 0 {
		size = 512
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CampaignCache{
		cache: expirable.NewLRU[string, model.Campaign](size, nil, ttl),
	}
}

func (c *CampaignCache) Get(slug string) (*model.Campaign, bool) {
	cached, ok := c.cache.Get(slug)
	if !ok {
		return nil, false
	}
	clone := cached
	return &clone, true
}

func (c *CampaignCache) Set(cp *model.Campaign) {
	if cp == nil || cp.Slug == "" {
		return
	}
	c.cache.Add(cp.Slug, *cp)
}

func (c *CampaignCache) Invalidate(slug string) {
	c.cache.Remove(slug)
}
