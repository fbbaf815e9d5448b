// Package services: TokenCleaner, süresi dolmuş email doğrulama token'larını
// periyodik olarak silen arka plan servisi.
//
// Goroutine pattern: time.NewTicker + select + stopCh.
// Graceful shutdown: serve komutunda cleaner.Stop() çağrılır.
package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/akinalp/sigma/repository"
)

// TokenCleaner, periyodik temizlik interface'i.
type TokenCleaner interface {
	Start()
	Stop()
}

type tokenCleaner struct {
	tokenRepo repository.VerificationTokenRepository
	interval  time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewTokenCleaner, constructor. interval production'da saatliktir.
func NewTokenCleaner(tokenRepo repository.VerificationTokenRepository, interval time.Duration) TokenCleaner {
	return &tokenCleaner{
		tokenRepo: tokenRepo,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start, ilk temizliği hemen yapar, sonra interval aralığında tekrarlar.
func (c *tokenCleaner) Start() {
	log.Printf("[token-cleaner] starting (interval=%s)", c.interval)

	go func() {
		c.purge()

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.purge()
			case <-c.stopCh:
				log.Println("[token-cleaner] stopped")
				return
			}
		}
	}()
}

func (c *tokenCleaner) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *tokenCleaner) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := c.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("[token-cleaner] purge error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[token-cleaner] purged %d expired verification tokens", n)
	}
}
