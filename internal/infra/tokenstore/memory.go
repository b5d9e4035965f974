package tokenstore

import (
	"context"
	"sync"
	"time"

	"dorm-services/internal/pkg/clock"
)

// MemoryDenylist is used when no redis is configured. Revocations do not survive a restart.
type MemoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	clock   clock.Clock
}

func NewMemoryDenylist(clk clock.Clock) *MemoryDenylist {
	return &MemoryDenylist{
		revoked: make(map[string]time.Time),
		clock:   clk,
	}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	for id, exp := range d.revoked {
		if !exp.After(now) {
			delete(d.revoked, id)
		}
	}
	if until.After(now) {
		d.revoked[jti] = until
	}
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.revoked[jti]
	return ok && exp.After(d.clock.Now()), nil
}
