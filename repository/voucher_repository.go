package repository

import (
	"context"

	"github.com/akinalp/sigma/models"
)

// VoucherRepository, indirim kuponu işlemleri için interface.
type VoucherRepository interface {
	// Upsert, seed komutu için: kod varsa indirim/limit alanlarını günceller,
	// used_count'a dokunmaz.
	Upsert(ctx context.Context, v *models.Voucher) error
	GetByCode(ctx context.Context, code string) (*models.Voucher, error)
	// IncrementUse, kullanım hakkı kalmışsa used_count'u bir artırır.
	// Kontrol ve artırma tek UPDATE'tir; eşzamanlı kayıtlar limiti aşamaz.
	IncrementUse(ctx context.Context, code string) error
}
