// Package cache, süreli kayıt tutan generic in-memory cache'i barındırır.
//
// Auth servisi bunu doğrulama emaili tekrar gönderim cooldown'u için
// kullanır: anahtar "tür:hesapID", değer son gönderim zamanıdır. Cooldown
// kararı yalnızca Remaining ile verilir; hesap doğrulanınca kayıt silinir.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache, thread-safe generic TTL cache.
// Süresi dolan kayıtlar okunamaz; map'ten fiziksel silme periyodik yapılır.
type TTLCache[K comparable, V any] struct {
	mu       sync.RWMutex
	entries  map[K]entry[V]
	ttl      time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// New, cache'i oluşturur ve cleanupInterval'de bir çalışan temizleyiciyi başlatır.
func New[K comparable, V any](ttl, cleanupInterval time.Duration) *TTLCache[K, V] {
	c := newCache[K, V](ttl, time.Now)

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.evictExpired()
			case <-c.stop:
				return
			}
		}
	}()

	return c
}

func newCache[K comparable, V any](ttl time.Duration, now func() time.Time) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		now:     now,
		stop:    make(chan struct{}),
	}
}

// Set, değeri TTL ile yazar.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Remaining, kaydın süresinin dolmasına kalan süreyi döner; kayıt yoksa 0.
func (c *TTLCache[K, V]) Remaining(key K) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return 0
	}
	if d := e.expiresAt.Sub(c.now()); d > 0 {
		return d
	}
	return 0
}

// Delete, kaydı siler.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Close, temizleyici goroutine'i durdurur.
func (c *TTLCache[K, V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *TTLCache[K, V]) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
