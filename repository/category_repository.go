package repository

import (
	"context"

	"github.com/akinalp/sigma/models"
)

// CategoryRepository, kategori veritabanı işlemleri için interface.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	// GetAll, tüm kategorileri isme göre sıralı döner. Ağaç kurucu bu sırayı korur.
	GetAll(ctx context.Context) ([]models.Category, error)
	// Delete, kategoriyi siler; alt kategoriler ON DELETE CASCADE ile gider.
	Delete(ctx context.Context, id string) error
}
