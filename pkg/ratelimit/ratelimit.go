// Package ratelimit, login uç noktalarını brute-force denemelerine karşı
// koruyan IP bazlı sabit pencere sayacını barındırır.
//
// Sayaçlar bellekte tutulur; tek instance deploy için yeterli. Süresi
// dolmuş pencereler arka plan goroutine'i ile temizlenir.
//
// Paket proje içi hiçbir pakete bağımlı değildir, handlers ve middleware
// ikisi de import edebilir.
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"
)

type window struct {
	count int
	start time.Time
}

// LoginLimiter, anahtar (genelde client IP) başına pencere içi deneme sayısını sınırlar.
//
//	limiter := ratelimit.NewLoginLimiter(5, 2*time.Minute)
//	defer limiter.Close()
//	if !limiter.Allow(ip) { ... 429 ... }
//	limiter.Reset(ip) // başarılı login
type LoginLimiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	maxAttempts int
	period      time.Duration
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewLoginLimiter, limiter'ı oluşturur ve dakikada bir çalışan temizleyiciyi başlatır.
func NewLoginLimiter(maxAttempts int, period time.Duration) *LoginLimiter {
	l := newLoginLimiter(maxAttempts, period, time.Now)
	go l.cleanupLoop(time.Minute)
	return l
}

func newLoginLimiter(maxAttempts int, period time.Duration, now func() time.Time) *LoginLimiter {
	return &LoginLimiter{
		windows:     make(map[string]*window),
		maxAttempts: maxAttempts,
		period:      period,
		now:         now,
		stop:        make(chan struct{}),
	}
}

// Allow, denemeyi sayar ve limit aşılmadıysa true döner.
func (l *LoginLimiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.period {
		l.windows[key] = &window{count: 1, start: now}
		return true
	}

	w.count++
	return w.count <= l.maxAttempts
}

// Reset, başarılı login sonrası anahtarın sayacını siler.
func (l *LoginLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// RetryAfter, pencerenin kapanmasına kalan süreyi saniye olarak döner
// (Retry-After header değeri). Yukarı yuvarlanır.
func (l *LoginLimiter) RetryAfter(key string) int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok {
		return 0
	}

	remaining := l.period - now.Sub(w.start)
	if remaining <= 0 {
		return 0
	}
	secs := int(remaining / time.Second)
	if remaining%time.Second != 0 {
		secs++
	}
	return secs
}

// Close, temizleyici goroutine'i durdurur. Birden fazla çağrı güvenlidir.
func (l *LoginLimiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *LoginLimiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictExpired()
		case <-l.stop:
			return
		}
	}
}

func (l *LoginLimiter) evictExpired() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, w := range l.windows {
		if now.Sub(w.start) >= l.period {
			delete(l.windows, key)
		}
	}
}

// ProxyResolver, rate limit anahtarı olarak kullanılacak client IP'sini bulur.
//
// Forwarded header'lar (X-Forwarded-For, X-Real-IP) client tarafından
// serbestçe yazılabilir. Bu yüzden sadece bağlantı güvenilir bir reverse
// proxy'den geliyorsa okunur:
//  1. RemoteAddr güvenilir listede değil → RemoteAddr kullanılır, header'lar yok sayılır
//  2. Güvenilir proxy → X-Forwarded-For sağdan sola taranır, güvenilir olmayan
//     ilk adres client'tır (proxy zinciri kendi adreslerini sona ekler)
//  3. XFF yoksa veya tamamı güvenilirse X-Real-IP, o da yoksa RemoteAddr
//
// Nil *ProxyResolver geçerlidir ve hiçbir proxy'ye güvenmez.
type ProxyResolver struct {
	trusted []netip.Prefix
}

// NewProxyResolver, "10.0.0.1" veya "10.0.0.0/8" biçimindeki girdilerden resolver oluşturur.
func NewProxyResolver(trusted []string) (*ProxyResolver, error) {
	p := &ProxyResolver{}
	for _, entry := range trusted {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
			}
			p.trusted = append(p.trusted, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		p.trusted = append(p.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return p, nil
}

func (p *ProxyResolver) isTrusted(addr netip.Addr) bool {
	if p == nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP, request'in client IP'sini döner.
func (p *ProxyResolver) ClientIP(r *http.Request) string {
	remote := remoteHost(r.RemoteAddr)
	remoteAddr, err := netip.ParseAddr(remote)
	if err != nil || !p.isTrusted(remoteAddr) {
		return remote
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			addr, err := netip.ParseAddr(hop)
			if err != nil {
				// Bozuk bir hop'tan ötesine güvenilmez.
				return remote
			}
			if !p.isTrusted(addr) {
				return addr.Unmap().String()
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if addr, err := netip.ParseAddr(xri); err == nil {
			return addr.Unmap().String()
		}
	}

	return remote
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// FormatRetry, Retry-After saniyesini mesaj için okunur hale getirir.
func FormatRetry(seconds int) string {
	if seconds >= 60 {
		return fmt.Sprintf("%d minute(s)", (seconds+59)/60)
	}
	return fmt.Sprintf("%d second(s)", seconds)
}
