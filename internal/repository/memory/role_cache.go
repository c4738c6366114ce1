package memory

import (
	"time"

	"ops-collab-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// RoleCache keeps recently resolved user roles so permission checks do not
// hit the database on every request. Entries expire on their own; a role
// change is also invalidated explicitly by the admin service.
type RoleCache struct {
	cache *cache.Cache
}

func NewRoleCache(ttl time.Duration) *RoleCache {
	return &RoleCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (c *RoleCache) Set(userId string, role entity.Role) {
	c.cache.Set(userId, role, cache.DefaultExpiration)
}

func (c *RoleCache) Get(userId string) (entity.Role, bool) {
	if x, found := c.cache.Get(userId); found {
		return x.(entity.Role), true
	}
	return "", false
}

func (c *RoleCache) Invalidate(userId string) {
	c.cache.Delete(userId)
}
