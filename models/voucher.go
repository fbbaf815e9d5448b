package models

import (
	"fmt"
	"strings"
	"time"
)

// Voucher, kayıt sırasında uygulanabilen indirim kodu.
type Voucher struct {
	Code            string     `json:"code" yaml:"code"`
	DiscountPercent int        `json:"discount_percent" yaml:"discount_percent"`
	ExpiresAt       *time.Time `json:"expires_at" yaml:"expires_at"`
	MaxUses         *int       `json:"max_uses" yaml:"max_uses"`
	UsedCount       int        `json:"used_count" yaml:"-"`
}

// NormalizeVoucherCode, kodu karşılaştırma için tek biçime getirir.
func NormalizeVoucherCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Usable, kuponun verilen anda kullanılıp kullanılamayacağını kontrol eder.
func (v *Voucher) Usable(now time.Time) error {
	if v.ExpiresAt != nil && !now.Before(*v.ExpiresAt) {
		return fmt.Errorf("voucher has expired")
	}
	if v.MaxUses != nil && v.UsedCount >= *v.MaxUses {
		return fmt.Errorf("voucher has no uses left")
	}
	return nil
}

// Apply, indirimli fiyatı döner. Sonuç aşağı yuvarlanır.
func (v *Voucher) Apply(price int64) int64 {
	return price * int64(100-v.DiscountPercent) / 100
}

// Validate, seed veya admin girişinde kupon alanlarını kontrol eder.
func (v *Voucher) Validate() error {
	v.Code = NormalizeVoucherCode(v.Code)
	if v.Code == "" {
		return fmt.Errorf("voucher code is required")
	}
	if v.DiscountPercent < 1 || v.DiscountPercent > 100 {
		return fmt.Errorf("discount_percent must be between 1 and 100")
	}
	if v.MaxUses != nil && *v.MaxUses < 1 {
		return fmt.Errorf("max_uses must be positive")
	}
	return nil
}
