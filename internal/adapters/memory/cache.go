package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/govind-tiwari/review-extractor/internal/adapters/observability"
)

type entry struct {
	b   []byte
	exp time.Time // zero means no expiry
}

// Cache is the single-process stand-in for the redis cache. Values are kept
// as JSON so callers get the same copy semantics as with redis.
type Cache struct {
	mu  sync.Mutex
	m   map[string]entry
	now func() time.Time
}

func New() *Cache {
	return &Cache{m: make(map[string]entry), now: time.Now}
}

func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	e, ok := c.m[key]
	if ok && !e.exp.IsZero() && !c.now().Before(e.exp) {
		delete(c.m, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(e.b, dst)
}

func (c *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	e := entry{b: b}
	if ttlSec > 0 {
		e.exp = c.now().Add(time.Duration(ttlSec) * time.Second)
	}
	c.mu.Lock()
	c.m[key] = e
	c.mu.Unlock()
	observability.ObserveCache("memory", "set")
	return nil
}

func (c *Cache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
	observability.ObserveCache("memory", "del")
	return nil
}
