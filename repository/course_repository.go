package repository

import (
	"context"

	"github.com/akinalp/sigma/models"
)

// CourseRepository, kurs veritabanı işlemleri için interface.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	// ListPublished, yayında olan kursları en yeniden eskiye döner.
	// categoryID boş değilse o kategori ve doğrudan alt kategorileriyle sınırlar.
	ListPublished(ctx context.Context, categoryID string) ([]models.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error)
}
