package repository

import (
	"context"

	"github.com/akinalp/sigma/models"
)

// VerificationTokenRepository, email doğrulama token'ları için interface.
type VerificationTokenRepository interface {
	Create(ctx context.Context, token *models.VerificationToken) error
	GetByHash(ctx context.Context, tokenHash string) (*models.VerificationToken, error)
	// DeleteByAccount, hesabın tüm token'larını siler. Yeni token üretilmeden
	// ve doğrulama başarılı olduktan sonra çağrılır.
	DeleteByAccount(ctx context.Context, accountID string, kind models.Role) error
	DeleteExpired(ctx context.Context) (int64, error)
}
