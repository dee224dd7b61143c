package token

import (
	"errors"
	"sync"
	"time"
)

// RevokedTokenCache remembers the ids of tokens that were logged out before
// they expired.
type RevokedTokenCache interface {
	Add(jti string, expiresAt time.Time) error
	IsRevoked(jti string) bool
	Cleanup() int
}

var _ RevokedTokenCache = (*InMemoryRevokedTokenCache)(nil)

// InMemoryRevokedTokenCache keeps a revoked id only until its token would
// have expired; after that the expiry check rejects the token by itself.
type InMemoryRevokedTokenCache struct {
	expiries map[string]time.Time
	lock     sync.RWMutex
}

func NewInMemoryRevokedTokenCache() *InMemoryRevokedTokenCache {
	return &InMemoryRevokedTokenCache{
		expiries: make(map[string]time.Time),
	}
}

// Add revokes jti. A token that has already expired is not recorded.
func (c *InMemoryRevokedTokenCache) Add(jti string, expiresAt time.Time) error {
	if jti == "" {
		return errors.New("token has no id to revoke")
	}
	if !NowTimeFunc().Before(expiresAt) {
		return nil
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	c.expiries[jti] = expiresAt
	return nil
}

func (c *InMemoryRevokedTokenCache) IsRevoked(jti string) bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	_, ok := c.expiries[jti]
	return ok
}

func (c *InMemoryRevokedTokenCache) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return len(c.expiries)
}

// Cleanup drops the ids of tokens that have expired and returns how many went.
func (c *InMemoryRevokedTokenCache) Cleanup() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	now := NowTimeFunc()
	removed := 0
	for jti, expiresAt := range c.expiries {
		if !now.Before(expiresAt) {
			delete(c.expiries, jti)
			removed++
		}
	}
	return removed
}
