// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı SQL yazmaz; repository interface'leri üzerinden çalışır.
// Her interface'in SQLite implementasyonu database.TxQuerier alır, böylece
// aynı repository hem *sql.DB hem *sql.Tx ile kullanılabilir.
package repository

import (
	"context"
	"time"

	"github.com/akinalp/sigma/models"
)

// AccountRepository, users ve instructors tablolarının ortak işlemleri.
// İki tablo aynı şemayı paylaştığı için tek interface yeterli.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// UpdatePasswordHash, login sırasında eski parametreli hash yenilendiğinde çağrılır.
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	UpdateAvatar(ctx context.Context, id string, avatarURL *string) error
	MarkVerified(ctx context.Context, id string, at time.Time) error
}
