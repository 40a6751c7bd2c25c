package utils

import (
	"context"
	"sync"
	"time"
)

// Logout must invalidate the session server-side, not just clear the cookie,
// so a copied session token stops working. Revoked token ids are held until
// the token would have expired anyway: in Redis when configured, otherwise in
// process memory.

type revokedEntry struct {
	expiresAt time.Time
}

var (
	revoked   = map[string]revokedEntry{}
	revokedMu sync.RWMutex
)

// RevokeSession marks a session token id as logged out until its natural expiry.
func RevokeSession(tokenID string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, "session:revoked:"+tokenID, "1", ttl).Err(); err == nil {
			return
		}
		// fall through to memory on Redis failure
	}
	revokedMu.Lock()
	revoked[tokenID] = revokedEntry{expiresAt: expiresAt}
	revokedMu.Unlock()
}

// IsSessionRevoked reports whether a session token id was logged out early.
func IsSessionRevoked(tokenID string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := rc.Exists(ctx, "session:revoked:"+tokenID).Result(); err == nil && n > 0 {
			return true
		}
	}

	revokedMu.RLock()
	entry, ok := revoked[tokenID]
	revokedMu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(entry.expiresAt) {
		revokedMu.Lock()
		delete(revoked, tokenID)
		revokedMu.Unlock()
		return false
	}
	return true
}
