package repository

import (
	"context"
	"time"

	"github.com/akinalp/sigma/models"
)

// EnrollmentRepository, kurs kayıtları için interface.
type EnrollmentRepository interface {
	// Create, (user, course) çifti zaten varsa ErrAlreadyExists döner.
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id string) (*models.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Enrollment, error)
	// MarkCompleted, sadece henüz tamamlanmamış kaydı günceller;
	// zaten tamamlanmışsa ErrAlreadyExists döner.
	MarkCompleted(ctx context.Context, id string, at time.Time) error
}

// CertificateRepository, sertifika işlemleri için interface.
type CertificateRepository interface {
	Create(ctx context.Context, cert *models.Certificate) error
	GetByEnrollment(ctx context.Context, enrollmentID string) (*models.Certificate, error)
	// Verify, public doğrulama görünümünü (sahip adı, kurs başlığı) döner.
	Verify(ctx context.Context, number string) (*models.CertificateVerification, error)
}
