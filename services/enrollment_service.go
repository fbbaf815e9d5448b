package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/sigma/database"
	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/repository"
	"github.com/akinalp/sigma/ws"
)

// EnrollmentService, kurs kaydı, tamamlama ve sertifika işlemleri.
type EnrollmentService interface {
	Enroll(ctx context.Context, userID, courseID string, req *models.EnrollRequest) (*models.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Enrollment, error)
	// Complete, kaydı tamamlar ve sertifika düzenler. Sadece kursun eğitmeni çağırabilir.
	// Zaten tamamlanmış bir kayıt için mevcut sertifika döner (idempotent).
	Complete(ctx context.Context, instructorID, enrollmentID string) (*models.Certificate, error)
	VerifyCertificate(ctx context.Context, number string) (*models.CertificateVerification, error)
}

type enrollmentService struct {
	db             *sql.DB // Enroll ve Complete tek transaction'da çalışır
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	voucherRepo    repository.VoucherRepository
	certRepo       repository.CertificateRepository
	hub            ws.EventPublisher
	now            func() time.Time
}

// NewEnrollmentService, constructor.
//
// db: transaction içinde tx-bound repo'lar oluşturmak için gerekir;
// verilen repo'lar transaction dışı okumalarda kullanılır.
func NewEnrollmentService(
	db *sql.DB,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	voucherRepo repository.VoucherRepository,
	certRepo repository.CertificateRepository,
	hub ws.EventPublisher,
) EnrollmentService {
	return &enrollmentService{
		db:             db,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		voucherRepo:    voucherRepo,
		certRepo:       certRepo,
		hub:            hub,
		now:            time.Now,
	}
}

// Enroll, kurs yayındaysa kaydı oluşturur.
//
// Kupon verilmişse fiyat indirimli hesaplanır ve kuponun kullanım sayısı
// kayıtla aynı transaction'da artırılır: kayıt başarısız olursa (ör. tekrar
// kayıt) kupon hakkı harcanmaz.
func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID string, req *models.EnrollRequest) (*models.Enrollment, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.Published {
		return nil, fmt.Errorf("%w: course not found", pkg.ErrNotFound)
	}

	enrollment := &models.Enrollment{
		UserID:    userID,
		CourseID:  course.ID,
		PricePaid: course.Price,
	}

	if code := strings.TrimSpace(req.VoucherCode); code != "" {
		voucher, err := usableVoucher(ctx, s.voucherRepo, code, s.now())
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				return nil, fmt.Errorf("%w: voucher not found", pkg.ErrBadRequest)
			}
			return nil, err
		}
		enrollment.PricePaid = voucher.Apply(course.Price)
		enrollment.VoucherCode = &voucher.Code
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := repository.NewSQLiteEnrollmentRepo(tx).Create(ctx, enrollment); err != nil {
			return err
		}
		if enrollment.VoucherCode != nil {
			return repository.NewSQLiteVoucherRepo(tx).IncrementUse(ctx, *enrollment.VoucherCode)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToUser(course.InstructorID, ws.Event{
		Op: ws.OpEnrollmentCreate,
		Data: ws.EnrollmentCreateData{
			EnrollmentID: enrollment.ID,
			CourseID:     course.ID,
			CourseTitle:  course.Title,
			PricePaid:    enrollment.PricePaid,
		},
	})

	return enrollment, nil
}

func (s *enrollmentService) ListByUser(ctx context.Context, userID string) ([]models.Enrollment, error) {
	return s.enrollmentRepo.ListByUser(ctx, userID)
}

func (s *enrollmentService) Complete(ctx context.Context, instructorID, enrollmentID string) (*models.Certificate, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, enrollment.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, fmt.Errorf("%w: not the owner of this course", pkg.ErrForbidden)
	}

	if enrollment.CompletedAt != nil {
		return s.certRepo.GetByEnrollment(ctx, enrollment.ID)
	}

	now := s.now()
	cert := &models.Certificate{
		Number:       newCertificateNumber(),
		EnrollmentID: enrollment.ID,
		UserID:       enrollment.UserID,
		CourseID:     enrollment.CourseID,
		IssuedAt:     now,
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := repository.NewSQLiteEnrollmentRepo(tx).MarkCompleted(ctx, enrollment.ID, now); err != nil {
			return err
		}
		return repository.NewSQLiteCertificateRepo(tx).Create(ctx, cert)
	})
	if errors.Is(err, pkg.ErrAlreadyExists) {
		// Eşzamanlı bir Complete bizden önce commit etti.
		return s.certRepo.GetByEnrollment(ctx, enrollment.ID)
	}
	if err != nil {
		return nil, err
	}

	return cert, nil
}

func (s *enrollmentService) VerifyCertificate(ctx context.Context, number string) (*models.CertificateVerification, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return nil, fmt.Errorf("%w: certificate number is required", pkg.ErrBadRequest)
	}
	return s.certRepo.Verify(ctx, number)
}

// newCertificateNumber, "SGM-" önekli, büyük harfli UUIDv4.
func newCertificateNumber() string {
	return "SGM-" + strings.ToUpper(uuid.NewString())
}
